package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// CreateCall handles POST /2010-04-01/Accounts/{AccountSid}/Calls.json.
func (h *Handler) CreateCall(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpd.TwilioError(w, http.StatusBadRequest, 21601, "Unable to parse form data: "+err.Error())
		return
	}

	call, err := h.client.Calls.Create(twindial.CallParams{
		To:             r.PostFormValue("To"),
		From:           r.PostFormValue("From"),
		URL:            r.PostFormValue("Url"),
		Twiml:          r.PostFormValue("Twiml"),
		ApplicationSID: r.PostFormValue("ApplicationSid"),
		StatusCallback: r.PostFormValue("StatusCallback"),
	})
	if err != nil {
		writeClientError(w, "calls", err)
		return
	}

	if cb := h.callbackTarget(r.PostFormValue("StatusCallback")); cb != "" {
		h.callbacks.Enqueue(cb, url.Values{
			"AccountSid": {call.AccountSID},
			"CallSid":    {call.SID},
			"CallStatus": {call.Status},
			"To":         {call.To},
			"From":       {call.From},
		})
	}

	httpd.JSON(w, http.StatusCreated, call.Payload())
}

// GetCall handles GET /2010-04-01/Accounts/{AccountSid}/Calls/{CallSid}.json.
func (h *Handler) GetCall(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "CallSid")

	call, err := h.client.Calls.Fetch(sid)
	if err != nil {
		writeClientError(w, "calls", err)
		return
	}

	w.Header().Set("ETag", call.ETag)
	httpd.JSON(w, http.StatusOK, call.Payload())
}
