package api

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/wondertwin-ai/twindial/internal/httpd"
	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// CreateMessage handles POST /2010-04-01/Accounts/{AccountSid}/Messages.json.
// Twilio sends form-encoded requests and returns JSON.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpd.TwilioError(w, http.StatusBadRequest, 21601, "Unable to parse form data: "+err.Error())
		return
	}

	msg, err := h.client.Messages.Create(twindial.MessageParams{
		To:                  r.PostFormValue("To"),
		From:                r.PostFormValue("From"),
		MessagingServiceSID: r.PostFormValue("MessagingServiceSid"),
		Body:                r.PostFormValue("Body"),
		MediaURL:            r.PostFormValue("MediaUrl"),
		ContentSID:          r.PostFormValue("ContentSid"),
		StatusCallback:      r.PostFormValue("StatusCallback"),
	})
	if err != nil {
		writeClientError(w, "messages", err)
		return
	}

	if cb := h.callbackTarget(r.PostFormValue("StatusCallback")); cb != "" {
		h.callbacks.Enqueue(cb, url.Values{
			"AccountSid":    {msg.AccountSID},
			"MessageSid":    {msg.SID},
			"MessageStatus": {msg.Status},
			"To":            {msg.To},
			"From":          {msg.From},
		})
	}

	httpd.JSON(w, http.StatusCreated, msg.Payload())
}

// GetMessage handles GET /2010-04-01/Accounts/{AccountSid}/Messages/{MessageSid}.json.
// There is no stored state behind the fake; this returns the generic default
// message for the SID, like a read-through on the real API would.
func (h *Handler) GetMessage(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "MessageSid")

	msg, err := h.client.Messages.Fetch(sid)
	if err != nil {
		writeClientError(w, "messages", err)
		return
	}

	w.Header().Set("ETag", msg.ETag)
	httpd.JSON(w, http.StatusOK, msg.Payload())
}
