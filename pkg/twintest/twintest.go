// Package twintest provides testing.TB assertion helpers over a fake
// client's call ledger.
package twintest

import (
	"testing"

	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

// AssertCalledWith fails the test unless at least one recorded call for key
// matches every expected wire parameter exactly.
func AssertCalledWith(t testing.TB, c *twindial.Client, key string, expected map[string]string) {
	t.Helper()
	if err := c.AssertCalledWith(key, expected); err != nil {
		t.Fatalf("%v", err)
	}
}

// AssertCallCount fails the test unless exactly want calls were recorded for
// key.
func AssertCallCount(t testing.TB, c *twindial.Client, key string, want int) {
	t.Helper()
	if got := len(c.RequestsFor(key)); got != want {
		t.Fatalf("expected %d calls to %s, got %d", want, key, got)
	}
}

// AssertNothingRecorded fails the test if the ledger holds any record.
func AssertNothingRecorded(t testing.TB, c *twindial.Client) {
	t.Helper()
	if reqs := c.Requests(); len(reqs) != 0 {
		t.Fatalf("expected no recorded calls, got %d (first: %s %v)",
			len(reqs), reqs[0].Key, reqs[0].Params)
	}
}

// LastRequest returns the most recent record for key, failing the test when
// none exists.
func LastRequest(t testing.TB, c *twindial.Client, key string) twindial.Record {
	t.Helper()
	reqs := c.RequestsFor(key)
	if len(reqs) == 0 {
		t.Fatalf("no calls recorded for %s", key)
	}
	return reqs[len(reqs)-1]
}
