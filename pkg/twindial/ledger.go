package twindial

import (
	"sync"
	"time"
)

// Record captures one accepted call. Records are immutable once appended and
// hold the normalized wire-style parameter mapping; the caller-facing shape
// is derivable via CallerParams.
type Record struct {
	// Key is the resource method, e.g. "messages.create".
	Key string

	// Params holds the normalized wire parameters, e.g. {"To": "+1555..."}.
	Params map[string]string

	// Sequence is assigned at append time, starts at 1, and is never reused
	// or reordered within a ledger generation.
	Sequence int

	// Time is when the record was appended.
	Time time.Time
}

// CallerParams returns the parameters under their caller-facing snake_case
// names, derived from the recorded wire mapping.
func (r Record) CallerParams() map[string]string {
	out := make(map[string]string, len(r.Params))
	for k, v := range r.Params {
		out[callerName(k)] = v
	}
	return out
}

// Ledger is an append-only, ordered store of Records. Appends are serialized
// so record order is well defined even when a client is shared across
// goroutines within a test.
type Ledger struct {
	mu      sync.Mutex
	records []Record
	seq     int
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append stores a record for key with the next sequence number. The
// parameter map is copied so later mutation by the caller cannot alter the
// record.
func (l *Ledger) Append(key string, wire map[string]string) Record {
	params := make(map[string]string, len(wire))
	for k, v := range wire {
		params[k] = v
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	rec := Record{
		Key:      key,
		Params:   params,
		Sequence: l.seq,
		Time:     time.Now(),
	}
	l.records = append(l.records, rec)
	return rec
}

// All returns every record in append order, oldest first.
func (l *Ledger) All() []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// ByKey returns the records for one resource method, preserving their
// original relative order.
func (l *Ledger) ByKey(key string) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Record
	for _, r := range l.records {
		if r.Key == key {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Clear empties the ledger and resets the sequence counter, so a subsequent
// append starts at 1 again. Used between test cases to avoid leakage.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = l.records[:0]
	l.seq = 0
}
