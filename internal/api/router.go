// Package api implements the Twilio-compatible HTTP surface over a fake
// client, plus admin extras for inspecting and configuring it.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twindial/internal/callback"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// Handler holds all API handler state.
type Handler struct {
	client             *twindial.Client
	callbacks          *callback.Dispatcher
	logger             *slog.Logger
	defaultCallbackURL string
	reqLog             *httpd.RequestLog
}

// NewHandler creates a new API handler over the given fake client.
func NewHandler(c *twindial.Client, cb *callback.Dispatcher, logger *slog.Logger) *Handler {
	return &Handler{client: c, callbacks: cb, logger: logger}
}

// SetDefaultCallbackURL sets the status-callback destination used when a
// create request carries no StatusCallback of its own.
func (h *Handler) SetDefaultCallbackURL(url string) {
	h.defaultCallbackURL = url
}

// SetRequestLog exposes the server's HTTP request log through the admin API.
func (h *Handler) SetRequestLog(rl *httpd.RequestLog) {
	h.reqLog = rl
}

// callbackTarget returns the status-callback destination for a request:
// the per-request StatusCallback when present, else the configured default.
func (h *Handler) callbackTarget(statusCallback string) string {
	if statusCallback != "" {
		return statusCallback
	}
	return h.defaultCallbackURL
}

// Routes mounts the Twilio API routes and admin extras.
func (h *Handler) Routes(r chi.Router) {
	// Twilio REST API routes (Basic Auth required)
	r.Route("/2010-04-01/Accounts/{AccountSid}", func(r chi.Router) {
		r.Use(h.basicAuthMiddleware)

		r.Post("/Messages.json", h.CreateMessage)
		r.Get("/Messages/{MessageSid}.json", h.GetMessage)

		r.Post("/Calls.json", h.CreateCall)
		r.Get("/Calls/{CallSid}.json", h.GetCall)
	})

	// Twilio Verify API (Basic Auth required)
	r.Route("/v2/Services/{ServiceSid}", func(r chi.Router) {
		r.Use(h.basicAuthMiddleware)

		r.Post("/Verifications", h.CreateVerification)
		r.Post("/VerificationCheck", h.CheckVerification)
	})

	// Admin extras (no auth required)
	r.Get("/admin/health", h.AdminHealth)
	r.Get("/admin/requests", h.AdminListRequests)
	r.Get("/admin/log", h.AdminRequestLog)
	r.Post("/admin/reset", h.AdminReset)
	r.Post("/admin/responses/{key}", h.AdminConfigureResponse)
	r.Get("/admin/callbacks", h.AdminListCallbacks)
	r.Post("/admin/callbacks/flush", h.AdminFlushCallbacks)
}

// basicAuthMiddleware validates Twilio-style HTTP Basic Auth
// (AccountSID:AuthToken). Any non-empty credentials are accepted.
func (h *Handler) basicAuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user == "" || pass == "" {
			w.Header().Set("WWW-Authenticate", `Basic realm="Twilio API"`)
			httpd.TwilioError(w, http.StatusUnauthorized, 20003, "Authenticate")
			return
		}
		next.ServeHTTP(w, r)
	})
}
