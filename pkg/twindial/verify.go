package twindial

// VerifyService is the resource proxy for the Verify v2 family.
type VerifyService struct {
	client *Client
}

// VerificationParams are the caller-facing parameters for starting a
// verification. Channel defaults to "sms" when empty, as the real API does.
type VerificationParams struct {
	To         string
	Channel    string
	ServiceSID string
	Extra      map[string]string
}

func (p VerificationParams) wire() map[string]string {
	wire := make(map[string]string)
	setIf(wire, "To", p.To)
	setIf(wire, "Channel", p.Channel)
	setIf(wire, "ServiceSid", p.ServiceSID)
	mergeExtra(wire, p.Extra)
	return wire
}

// VerificationCheckParams are the caller-facing parameters for checking a
// verification code.
type VerificationCheckParams struct {
	To         string
	Code       string
	ServiceSID string
	Extra      map[string]string
}

func (p VerificationCheckParams) wire() map[string]string {
	wire := make(map[string]string)
	setIf(wire, "To", p.To)
	setIf(wire, "Code", p.Code)
	setIf(wire, "ServiceSid", p.ServiceSID)
	mergeExtra(wire, p.Extra)
	return wire
}

// Verification is the synthetic resource object for Verify operations.
type Verification struct {
	SID         string
	AccountSID  string
	ServiceSID  string
	To          string
	Channel     string
	Status      string
	Valid       bool
	DateCreated string
	DateUpdated string

	payload Payload
}

// Payload returns a copy of the raw payload the verification was built from.
func (v *Verification) Payload() Payload { return copyPayload(v.payload) }

func newVerification(p Payload) *Verification {
	return &Verification{
		SID:         getString(p, "sid"),
		AccountSID:  getString(p, "account_sid"),
		ServiceSID:  getString(p, "service_sid"),
		To:          getString(p, "to"),
		Channel:     getString(p, "channel"),
		Status:      getString(p, "status"),
		Valid:       getBool(p, "valid"),
		DateCreated: getString(p, "date_created"),
		DateUpdated: getString(p, "date_updated"),
		payload:     p,
	}
}

// CreateVerification starts a fake verification in "pending" status.
func (s *VerifyService) CreateVerification(p VerificationParams) (*Verification, error) {
	payload, err := s.client.dispatch("verifications.create", p.wire())
	if err != nil {
		return nil, err
	}
	return newVerification(payload), nil
}

// CheckVerification checks a fake verification code. The default outcome is
// "approved" with valid=true; configure a response to simulate a mismatch.
func (s *VerifyService) CheckVerification(p VerificationCheckParams) (*Verification, error) {
	payload, err := s.client.dispatch("verification_checks.create", p.wire())
	if err != nil {
		return nil, err
	}
	return newVerification(payload), nil
}
