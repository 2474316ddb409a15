package twindial

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrMissingArgument is returned when a required parameter is absent.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrMissingConfiguration is returned when none of a group of alternative
	// parameters is present.
	ErrMissingConfiguration = errors.New("missing required configuration")

	// ErrUnsupportedOperation is returned when a resource method is not
	// registered with the client.
	ErrUnsupportedOperation = errors.New("unsupported operation")

	// ErrAssertionFailed is returned by ledger assertions when no recorded
	// call matches the expected parameters.
	ErrAssertionFailed = errors.New("assertion failed")
)

// MissingArgumentError reports a single absent required parameter.
type MissingArgumentError struct {
	Key   string // resource method, e.g. "messages.create"
	Field string // wire parameter name, e.g. "To"
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf("%s: %s parameter is required", e.Key, e.Field)
}

func (e *MissingArgumentError) Unwrap() error { return ErrMissingArgument }

// MissingConfigurationError reports that an alternative parameter group went
// entirely unset, e.g. neither From nor MessagingServiceSid was provided.
type MissingConfigurationError struct {
	Key     string
	Purpose string   // what the group provides, e.g. "sender identity"
	Fields  []string // wire parameter names in the group
}

func (e *MissingConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s required, provide one of %s",
		e.Key, e.Purpose, strings.Join(e.Fields, ", "))
}

func (e *MissingConfigurationError) Unwrap() error { return ErrMissingConfiguration }

// UnsupportedOperationError reports a call to a resource method the client
// does not know about.
type UnsupportedOperationError struct {
	Key string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q", e.Key)
}

func (e *UnsupportedOperationError) Unwrap() error { return ErrUnsupportedOperation }

// AssertionError reports that no recorded call matched the expected wire
// parameters. Closest holds the recorded parameter set that matched the most
// expected entries, when any call for the key was recorded at all.
type AssertionError struct {
	Key      string
	Expected map[string]string
	Closest  map[string]string
}

func (e *AssertionError) Error() string {
	if e.Closest == nil {
		return fmt.Sprintf("no calls recorded for %s", e.Key)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "no call to %s matched", e.Key)
	for _, k := range sortedKeys(e.Expected) {
		want := e.Expected[k]
		got, ok := e.Closest[k]
		if ok && got == want {
			continue
		}
		if !ok {
			fmt.Fprintf(&b, "; %s: want %q, missing", k, want)
			continue
		}
		fmt.Fprintf(&b, "; %s: want %q, closest call had %q", k, want, got)
	}
	return b.String()
}

func (e *AssertionError) Unwrap() error { return ErrAssertionFailed }

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
