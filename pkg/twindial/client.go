package twindial

import (
	"sync"
	"time"
)

// Default credentials used when none are supplied. They exist for interface
// parity with the real client and are never validated.
const (
	DefaultAccountSID = "ACtwindial000000000000000000000000"
	DefaultAuthToken  = "twindial_auth_token"
)

// Config configures a fake client.
type Config struct {
	// AccountSID is echoed into synthesized responses. Optional.
	AccountSID string

	// AuthToken is accepted for shape compatibility. Optional.
	AuthToken string

	// Now overrides the time source for synthesized timestamps. Optional;
	// defaults to time.Now.
	Now func() time.Time
}

// Client is a fake Twilio client. It exposes the same resource surface as
// the real client, validates parameters with the same rules, records every
// accepted call, and resolves responses from configured overrides or
// synthesized defaults. All state is scoped to the instance.
type Client struct {
	Messages *MessageService
	Calls    *CallService
	Verify   *VerifyService

	accountSID string
	authToken  string
	now        func() time.Time

	rules  *RuleSet
	ledger *Ledger

	mu        sync.Mutex
	overrides map[string]Payload
}

// New creates a fake client with the built-in resource rules.
func New(cfg Config) *Client {
	if cfg.AccountSID == "" {
		cfg.AccountSID = DefaultAccountSID
	}
	if cfg.AuthToken == "" {
		cfg.AuthToken = DefaultAuthToken
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	c := &Client{
		accountSID: cfg.AccountSID,
		authToken:  cfg.AuthToken,
		now:        cfg.Now,
		rules:      defaultRules(),
		ledger:     NewLedger(),
		overrides:  make(map[string]Payload),
	}
	c.Messages = &MessageService{client: c}
	c.Calls = &CallService{client: c}
	c.Verify = &VerifyService{client: c}
	return c
}

// AccountSID returns the configured account identifier.
func (c *Client) AccountSID() string { return c.accountSID }

// AuthToken returns the configured auth token.
func (c *Client) AuthToken() string { return c.authToken }

// dispatch runs the core flow for one invocation: validate, resolve, record.
// Exactly one record is appended per successful call; none on failure.
func (c *Client) dispatch(key string, wire map[string]string) (Payload, error) {
	_, registered := c.rules.Lookup(key)
	_, fallback := fallbackDefaults[key]
	if !registered && !fallback {
		return nil, &UnsupportedOperationError{Key: key}
	}
	if registered {
		if err := c.rules.Validate(key, wire); err != nil {
			return nil, err
		}
	}
	payload := c.resolve(key, wire)
	c.ledger.Append(key, wire)
	return payload, nil
}

// Invoke calls a resource method by key with caller-facing snake_case
// parameter names. It is the escape hatch for resource methods registered at
// runtime via RegisterRule; the built-in services are the typed front end
// over the same dispatch.
func (c *Client) Invoke(key string, params map[string]string) (Payload, error) {
	wire := make(map[string]string, len(params))
	for k, v := range params {
		setIf(wire, wireName(k), v)
	}
	return c.dispatch(key, wire)
}

// RegisterRule installs a validation rule for a resource method, making it
// callable through Invoke. Field names are wire names.
func (c *Client) RegisterRule(key string, r Rule) {
	c.rules.Register(key, r)
}

// ConfigureResponse installs a response override for a resource method. The
// override is shallow-merged onto the synthesized default at resolve time
// and persists until overwritten or the client is discarded.
func (c *Client) ConfigureResponse(key string, payload Payload) {
	copied := make(Payload, len(payload))
	for k, v := range payload {
		copied[k] = v
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides[key] = copied
}

// ConfiguredResponse returns the override installed for a key, if any.
func (c *Client) ConfiguredResponse(key string) (Payload, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, ok := c.overrides[key]
	return p, ok
}

// ClearResponses removes all configured response overrides.
func (c *Client) ClearResponses() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.overrides = make(map[string]Payload)
}

// Requests returns every recorded call in invocation order.
func (c *Client) Requests() []Record {
	return c.ledger.All()
}

// RequestsFor returns the recorded calls for one resource method, in their
// original relative order.
func (c *Client) RequestsFor(key string) []Record {
	return c.ledger.ByKey(key)
}

// ClearRequests empties the call ledger and resets its sequence counter.
func (c *Client) ClearRequests() {
	c.ledger.Clear()
}

// Ledger exposes the underlying call ledger.
func (c *Client) Ledger() *Ledger {
	return c.ledger
}

// AssertCalledWith reports whether at least one recorded call for key
// carries every expected wire parameter with exactly the expected value.
// Extra recorded parameters are ignored. On failure the returned
// AssertionError describes the closest recorded call.
func (c *Client) AssertCalledWith(key string, expected map[string]string) error {
	records := c.ledger.ByKey(key)
	if len(records) == 0 {
		return &AssertionError{Key: key, Expected: expected}
	}

	var closest map[string]string
	best := -1
	for _, r := range records {
		matched := 0
		for k, v := range expected {
			if r.Params[k] == v {
				matched++
			}
		}
		if matched == len(expected) {
			return nil
		}
		if matched > best {
			best = matched
			closest = r.Params
		}
	}
	return &AssertionError{Key: key, Expected: expected, Closest: closest}
}
