package callback_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/wondertwin-ai/twindial/internal/callback"
	"github.com/wondertwin-ai/twindial/pkg/webhook"
)

const authToken = "callback_test_token"

func newDispatcher() *callback.Dispatcher {
	return callback.New(authToken, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFlushDeliversSignedCallback(t *testing.T) {
	validator := webhook.NewRequestValidator(authToken)

	var received atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parsing form: %v", err)
		}
		sig := r.Header.Get(webhook.SignatureHeader)
		uri := "http://" + r.Host + r.URL.RequestURI()
		if !validator.Validate(uri, r.PostForm, sig) {
			t.Errorf("signature did not validate for %s", uri)
		}
		if r.PostForm.Get("MessageStatus") != "delivered" {
			t.Errorf("unexpected form: %v", r.PostForm)
		}
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	d := newDispatcher()
	d.Enqueue(srv.URL+"/status", url.Values{
		"MessageSid":    {"SM123"},
		"MessageStatus": {"delivered"},
	})

	if len(d.Pending()) != 1 {
		t.Fatalf("expected 1 pending, got %d", len(d.Pending()))
	}
	if got := d.Flush(); got != 1 {
		t.Fatalf("expected 1 delivered, got %d", got)
	}
	if received.Load() != 1 {
		t.Fatalf("receiver saw %d requests", received.Load())
	}

	deliveries := d.Deliveries()
	if len(deliveries) != 1 || !deliveries[0].Delivered || deliveries[0].StatusCode != http.StatusOK {
		t.Errorf("unexpected delivery record: %+v", deliveries)
	}
	if len(d.Pending()) != 0 {
		t.Errorf("pending not drained")
	}
}

func TestFlushRetriesAndRecordsFailure(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := newDispatcher()
	d.Enqueue(srv.URL, url.Values{"CallSid": {"CA123"}, "CallStatus": {"completed"}})

	start := time.Now()
	if got := d.Flush(); got != 0 {
		t.Fatalf("expected 0 delivered, got %d", got)
	}
	// Three attempts wait only between attempts, not after the last one.
	if elapsed := time.Since(start); elapsed >= 300*time.Millisecond {
		t.Errorf("flush slept after the final attempt: took %v", elapsed)
	}
	if hits.Load() != 3 {
		t.Errorf("expected 3 attempts, got %d", hits.Load())
	}
	deliveries := d.Deliveries()
	if len(deliveries) != 1 || deliveries[0].Delivered || deliveries[0].Error == "" {
		t.Errorf("unexpected delivery record: %+v", deliveries)
	}
}

func TestReset(t *testing.T) {
	d := newDispatcher()
	d.Enqueue("http://localhost:1/unreachable", url.Values{"A": {"1"}})
	d.Reset()
	if len(d.Pending()) != 0 || len(d.Deliveries()) != 0 {
		t.Error("reset did not clear state")
	}
}
