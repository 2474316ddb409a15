package twindial

// MessageService is the resource proxy for the messages family.
type MessageService struct {
	client *Client
}

// MessageParams are the caller-facing parameters for creating a message.
// Field names mirror the real client's snake_case parameters; Extra carries
// provider-specific extension fields by their snake_case names.
type MessageParams struct {
	To                  string
	From                string
	MessagingServiceSID string
	Body                string
	MediaURL            string
	ContentSID          string
	StatusCallback      string
	Extra               map[string]string
}

func (p MessageParams) wire() map[string]string {
	wire := make(map[string]string)
	setIf(wire, "To", p.To)
	setIf(wire, "From", p.From)
	setIf(wire, "MessagingServiceSid", p.MessagingServiceSID)
	setIf(wire, "Body", p.Body)
	setIf(wire, "MediaUrl", p.MediaURL)
	setIf(wire, "ContentSid", p.ContentSID)
	setIf(wire, "StatusCallback", p.StatusCallback)
	mergeExtra(wire, p.Extra)
	return wire
}

// Message is the synthetic resource object returned for message operations.
// Ownership transfers to the caller; the fake keeps no reference.
type Message struct {
	SID                 string
	AccountSID          string
	To                  string
	From                string
	Body                string
	MessagingServiceSID string
	Status              string
	Direction           string
	NumSegments         string
	NumMedia            string
	PriceUnit           string
	ErrorCode           int // 0 when no error was configured
	ErrorMessage        string
	DateCreated         string
	DateUpdated         string
	DateSent            string
	ETag                string
	URI                 string

	payload Payload
}

// Payload returns a copy of the raw payload the message was built from,
// including any fields a configured response added beyond the typed ones.
func (m *Message) Payload() Payload { return copyPayload(m.payload) }

func newMessage(p Payload) *Message {
	return &Message{
		SID:                 getString(p, "sid"),
		AccountSID:          getString(p, "account_sid"),
		To:                  getString(p, "to"),
		From:                getString(p, "from"),
		Body:                getString(p, "body"),
		MessagingServiceSID: getString(p, "messaging_service_sid"),
		Status:              getString(p, "status"),
		Direction:           getString(p, "direction"),
		NumSegments:         getString(p, "num_segments"),
		NumMedia:            getString(p, "num_media"),
		PriceUnit:           getString(p, "price_unit"),
		ErrorCode:           getInt(p, "error_code"),
		ErrorMessage:        getString(p, "error_message"),
		DateCreated:         getString(p, "date_created"),
		DateUpdated:         getString(p, "date_updated"),
		DateSent:            getString(p, "date_sent"),
		ETag:                getString(p, "etag"),
		URI:                 getString(p, "uri"),
		payload:             p,
	}
}

// Create validates the parameters, records the call, and returns a synthetic
// message. Validation failures leave the ledger untouched.
func (s *MessageService) Create(p MessageParams) (*Message, error) {
	payload, err := s.client.dispatch("messages.create", p.wire())
	if err != nil {
		return nil, err
	}
	return newMessage(payload), nil
}

// Fetch returns a generic default message for the given SID. There is no
// stored state behind the fake; fetch exists so code paths that read back a
// message keep working, and the call is still recorded.
func (s *MessageService) Fetch(sid string) (*Message, error) {
	payload, err := s.client.dispatch("messages.fetch", map[string]string{"Sid": sid})
	if err != nil {
		return nil, err
	}
	return newMessage(payload), nil
}
