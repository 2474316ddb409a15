package twindial_test

import (
	"sync"
	"testing"

	"github.com/wondertwin-ai/twindial/pkg/twindial"
)

func TestLedgerAppendCopiesParams(t *testing.T) {
	l := twindial.NewLedger()
	wire := map[string]string{"To": "+1555"}
	l.Append("messages.create", wire)
	wire["To"] = "mutated"

	if got := l.All()[0].Params["To"]; got != "+1555" {
		t.Errorf("record shares caller map: %q", got)
	}
}

func TestLedgerByKeyPreservesRelativeOrder(t *testing.T) {
	l := twindial.NewLedger()
	l.Append("a.create", map[string]string{"N": "1"})
	l.Append("b.create", map[string]string{"N": "2"})
	l.Append("a.create", map[string]string{"N": "3"})

	got := l.ByKey("a.create")
	if len(got) != 2 || got[0].Params["N"] != "1" || got[1].Params["N"] != "3" {
		t.Errorf("unexpected filtered records: %v", got)
	}
	if got[0].Sequence != 1 || got[1].Sequence != 3 {
		t.Errorf("original sequence numbers not kept: %d, %d", got[0].Sequence, got[1].Sequence)
	}
}

func TestLedgerClearResetsSequence(t *testing.T) {
	l := twindial.NewLedger()
	l.Append("a.create", nil)
	l.Append("a.create", nil)
	l.Clear()

	if l.Len() != 0 {
		t.Fatalf("expected empty ledger, got %d", l.Len())
	}
	rec := l.Append("a.create", nil)
	if rec.Sequence != 1 {
		t.Errorf("expected sequence reset to 1, got %d", rec.Sequence)
	}
}

func TestLedgerConcurrentAppends(t *testing.T) {
	l := twindial.NewLedger()
	const n = 50

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			l.Append("a.create", map[string]string{"To": "+1555"})
		}()
	}
	wg.Wait()

	all := l.All()
	if len(all) != n {
		t.Fatalf("expected %d records, got %d", n, len(all))
	}
	seen := make(map[int]bool, n)
	for _, r := range all {
		if seen[r.Sequence] {
			t.Fatalf("sequence %d reused", r.Sequence)
		}
		seen[r.Sequence] = true
	}
	for i := 1; i <= n; i++ {
		if !seen[i] {
			t.Errorf("sequence %d missing", i)
		}
	}
}
