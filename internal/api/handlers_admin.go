package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// AdminHealth handles GET /admin/health.
func (h *Handler) AdminHealth(w http.ResponseWriter, r *http.Request) {
	httpd.JSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"account_sid": h.client.AccountSID(),
		"requests":    len(h.client.Requests()),
	})
}

// AdminListRequests handles GET /admin/requests.
// Supports ?key={resource method} for filtering.
func (h *Handler) AdminListRequests(w http.ResponseWriter, r *http.Request) {
	var records []twindial.Record
	if key := r.URL.Query().Get("key"); key != "" {
		records = h.client.RequestsFor(key)
	} else {
		records = h.client.Requests()
	}

	out := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		out = append(out, map[string]any{
			"key":      rec.Key,
			"params":   rec.Params,
			"sequence": rec.Sequence,
			"time":     rec.Time,
		})
	}

	httpd.JSON(w, http.StatusOK, map[string]any{
		"requests": out,
		"total":    len(out),
	})
}

// AdminRequestLog handles GET /admin/log: the recent HTTP requests seen by
// the server itself, as opposed to the fake client's call ledger.
func (h *Handler) AdminRequestLog(w http.ResponseWriter, r *http.Request) {
	var entries []httpd.RequestLogEntry
	if h.reqLog != nil {
		entries = h.reqLog.Entries()
	}
	httpd.JSON(w, http.StatusOK, map[string]any{
		"log":   entries,
		"total": len(entries),
	})
}

// AdminReset handles POST /admin/reset. It clears the call ledger, all
// configured responses, any pending or completed callbacks, and the HTTP
// request log.
func (h *Handler) AdminReset(w http.ResponseWriter, r *http.Request) {
	h.client.ClearRequests()
	h.client.ClearResponses()
	h.callbacks.Reset()
	if h.reqLog != nil {
		h.reqLog.Clear()
	}
	h.logger.Info("state reset via admin API")
	httpd.JSON(w, http.StatusOK, map[string]any{"status": "reset"})
}

// AdminConfigureResponse handles POST /admin/responses/{key}. The JSON body
// becomes the configured response payload for that resource method.
func (h *Handler) AdminConfigureResponse(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	var payload twindial.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		httpd.Error(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	h.client.ConfigureResponse(key, payload)
	h.logger.Info("response configured via admin API", "key", key)
	httpd.JSON(w, http.StatusOK, map[string]any{"status": "configured", "key": key})
}

// AdminListCallbacks handles GET /admin/callbacks.
func (h *Handler) AdminListCallbacks(w http.ResponseWriter, r *http.Request) {
	httpd.JSON(w, http.StatusOK, map[string]any{
		"pending":   h.callbacks.Pending(),
		"delivered": h.callbacks.Deliveries(),
	})
}

// AdminFlushCallbacks handles POST /admin/callbacks/flush. Deliveries are
// synchronous so the response reflects the final outcome.
func (h *Handler) AdminFlushCallbacks(w http.ResponseWriter, r *http.Request) {
	delivered := h.callbacks.Flush()
	httpd.JSON(w, http.StatusOK, map[string]any{"delivered": delivered})
}
