// Package callback delivers status callbacks to caller-supplied URLs as the
// real provider would: form-encoded POSTs signed with X-Twilio-Signature.
package callback

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/wondertwin-ai/twindial/pkg/webhook"
)

const (
	maxAttempts   = 3
	retryInterval = 100 * time.Millisecond
)

// Delivery is one attempted (or pending) callback delivery.
type Delivery struct {
	URL        string     `json:"url"`
	Params     url.Values `json:"params"`
	Signature  string     `json:"signature"`
	StatusCode int        `json:"status_code,omitempty"`
	Error      string     `json:"error,omitempty"`
	Delivered  bool       `json:"delivered"`
	Attempts   int        `json:"attempts"`
	QueuedAt   time.Time  `json:"queued_at"`
}

// Dispatcher queues and delivers signed status callbacks. Deliveries happen
// on Flush, never implicitly, so tests stay deterministic.
type Dispatcher struct {
	validator *webhook.RequestValidator
	client    *http.Client
	logger    *slog.Logger

	mu      sync.Mutex
	pending []Delivery
	done    []Delivery
}

// New creates a Dispatcher that signs callbacks with authToken.
func New(authToken string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		validator: webhook.NewRequestValidator(authToken),
		client:    &http.Client{Timeout: 5 * time.Second},
		logger:    logger,
	}
}

// Enqueue records a callback for later delivery. The signature is computed
// at enqueue time over the target URL and the form parameters.
func (d *Dispatcher) Enqueue(targetURL string, params url.Values) {
	sig := d.validator.ComputeSignature(targetURL, params)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = append(d.pending, Delivery{
		URL:       targetURL,
		Params:    params,
		Signature: sig,
		QueuedAt:  time.Now(),
	})
	d.logger.Debug("callback enqueued", "url", targetURL, "pending", len(d.pending))
}

// Flush delivers every pending callback in order and returns the number
// delivered successfully. Failed deliveries are retried up to maxAttempts,
// then recorded with their error.
func (d *Dispatcher) Flush() int {
	d.mu.Lock()
	batch := d.pending
	d.pending = nil
	d.mu.Unlock()

	delivered := 0
	for _, dv := range batch {
		d.deliver(&dv)
		if dv.Delivered {
			delivered++
		}
		d.mu.Lock()
		d.done = append(d.done, dv)
		d.mu.Unlock()
	}
	return delivered
}

func (d *Dispatcher) deliver(dv *Delivery) {
	body := dv.Params.Encode()
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		dv.Attempts = attempt

		req, err := http.NewRequest(http.MethodPost, dv.URL, strings.NewReader(body))
		if err != nil {
			dv.Error = err.Error()
			return
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set(webhook.SignatureHeader, dv.Signature)

		resp, err := d.client.Do(req)
		if err != nil {
			dv.Error = err.Error()
			d.logger.Warn("callback delivery failed", "url", dv.URL, "attempt", attempt, "err", err)
			if attempt < maxAttempts {
				time.Sleep(retryInterval)
			}
			continue
		}
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()

		dv.StatusCode = resp.StatusCode
		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			dv.Delivered = true
			dv.Error = ""
			d.logger.Debug("callback delivered", "url", dv.URL, "status", resp.StatusCode)
			return
		}
		dv.Error = fmt.Sprintf("received status %d", resp.StatusCode)
		if attempt < maxAttempts {
			time.Sleep(retryInterval)
		}
	}
}

// Pending returns a copy of the queued, undelivered callbacks.
func (d *Dispatcher) Pending() []Delivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Delivery, len(d.pending))
	copy(out, d.pending)
	return out
}

// Deliveries returns a copy of all completed delivery attempts.
func (d *Dispatcher) Deliveries() []Delivery {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Delivery, len(d.done))
	copy(out, d.done)
	return out
}

// Reset drops all pending and completed deliveries.
func (d *Dispatcher) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pending = nil
	d.done = nil
}
