package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// CreateVerification handles POST /v2/Services/{ServiceSid}/Verifications.
func (h *Handler) CreateVerification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpd.TwilioError(w, http.StatusBadRequest, 60200, "Unable to parse form data: "+err.Error())
		return
	}

	v, err := h.client.Verify.CreateVerification(twindial.VerificationParams{
		To:         r.PostFormValue("To"),
		Channel:    r.PostFormValue("Channel"),
		ServiceSID: chi.URLParam(r, "ServiceSid"),
	})
	if err != nil {
		writeClientError(w, "verify", err)
		return
	}

	httpd.JSON(w, http.StatusCreated, v.Payload())
}

// CheckVerification handles POST /v2/Services/{ServiceSid}/VerificationCheck.
func (h *Handler) CheckVerification(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpd.TwilioError(w, http.StatusBadRequest, 60200, "Unable to parse form data: "+err.Error())
		return
	}

	v, err := h.client.Verify.CheckVerification(twindial.VerificationCheckParams{
		To:         r.PostFormValue("To"),
		Code:       r.PostFormValue("Code"),
		ServiceSID: chi.URLParam(r, "ServiceSid"),
	})
	if err != nil {
		writeClientError(w, "verify", err)
		return
	}

	httpd.JSON(w, http.StatusOK, v.Payload())
}
