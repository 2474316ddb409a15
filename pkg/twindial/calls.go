package twindial

// CallService is the resource proxy for the voice calls family.
type CallService struct {
	client *Client
}

// CallParams are the caller-facing parameters for creating an outbound call.
type CallParams struct {
	To             string
	From           string
	URL            string
	Twiml          string
	ApplicationSID string
	StatusCallback string
	Extra          map[string]string
}

func (p CallParams) wire() map[string]string {
	wire := make(map[string]string)
	setIf(wire, "To", p.To)
	setIf(wire, "From", p.From)
	setIf(wire, "Url", p.URL)
	setIf(wire, "Twiml", p.Twiml)
	setIf(wire, "ApplicationSid", p.ApplicationSID)
	setIf(wire, "StatusCallback", p.StatusCallback)
	mergeExtra(wire, p.Extra)
	return wire
}

// Call is the synthetic resource object returned for call operations.
type Call struct {
	SID          string
	AccountSID   string
	To           string
	From         string
	URL          string
	Status       string
	Direction    string
	PriceUnit    string
	ErrorCode    int
	ErrorMessage string
	DateCreated  string
	DateUpdated  string
	ETag         string
	URI          string

	payload Payload
}

// Payload returns a copy of the raw payload the call was built from.
func (c *Call) Payload() Payload { return copyPayload(c.payload) }

func newCall(p Payload) *Call {
	return &Call{
		SID:          getString(p, "sid"),
		AccountSID:   getString(p, "account_sid"),
		To:           getString(p, "to"),
		From:         getString(p, "from"),
		URL:          getString(p, "url"),
		Status:       getString(p, "status"),
		Direction:    getString(p, "direction"),
		PriceUnit:    getString(p, "price_unit"),
		ErrorCode:    getInt(p, "error_code"),
		ErrorMessage: getString(p, "error_message"),
		DateCreated:  getString(p, "date_created"),
		DateUpdated:  getString(p, "date_updated"),
		ETag:         getString(p, "etag"),
		URI:          getString(p, "uri"),
		payload:      p,
	}
}

// Create validates the parameters, records the call, and returns a synthetic
// call resource in "queued" status unless overridden.
func (s *CallService) Create(p CallParams) (*Call, error) {
	payload, err := s.client.dispatch("calls.create", p.wire())
	if err != nil {
		return nil, err
	}
	return newCall(payload), nil
}

// Fetch returns a generic default call resource for the given SID; the call
// is recorded like any other.
func (s *CallService) Fetch(sid string) (*Call, error) {
	payload, err := s.client.dispatch("calls.fetch", map[string]string{"Sid": sid})
	if err != nil {
		return nil, err
	}
	return newCall(payload), nil
}
