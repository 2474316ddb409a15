package twindial

// Alternative is a group of wire parameters of which at least one must be
// present for a call to be accepted.
type Alternative struct {
	// Purpose names what the group provides, used in error messages,
	// e.g. "sender identity" or "message content".
	Purpose string

	// Fields are the wire parameter names in the group.
	Fields []string
}

// Rule is the parameter contract for one resource method. Rules are static
// data: adding a resource means registering a rule, not writing a new code
// path.
type Rule struct {
	// Required lists wire parameters that must each be present.
	Required []string

	// AnyOf lists alternative groups, checked in registration order after
	// all Required checks have passed.
	AnyOf []Alternative
}

// RuleSet maps resource method keys to their validation rules.
type RuleSet struct {
	rules map[string]Rule
}

// NewRuleSet creates an empty RuleSet.
func NewRuleSet() *RuleSet {
	return &RuleSet{rules: make(map[string]Rule)}
}

// Register installs the rule for a resource method key, replacing any
// existing rule for that key.
func (rs *RuleSet) Register(key string, r Rule) {
	rs.rules[key] = r
}

// Lookup returns the rule for a key, if registered.
func (rs *RuleSet) Lookup(key string) (Rule, bool) {
	r, ok := rs.rules[key]
	return r, ok
}

// Validate checks wire parameters against the rule registered for key.
// Required parameters are checked first so a caller always learns about a
// missing mandatory field before a missing alternative group. Validate is a
// pure function of its inputs.
func (rs *RuleSet) Validate(key string, wire map[string]string) error {
	r, ok := rs.rules[key]
	if !ok {
		return &UnsupportedOperationError{Key: key}
	}
	return r.validate(key, wire)
}

func (r Rule) validate(key string, wire map[string]string) error {
	for _, f := range r.Required {
		if wire[f] == "" {
			return &MissingArgumentError{Key: key, Field: f}
		}
	}
	for _, g := range r.AnyOf {
		present := false
		for _, f := range g.Fields {
			if wire[f] != "" {
				present = true
				break
			}
		}
		if !present {
			return &MissingConfigurationError{Key: key, Purpose: g.Purpose, Fields: g.Fields}
		}
	}
	return nil
}

// defaultRules returns the parameter contracts enforced by the real Twilio
// client for the resource methods the fake supports out of the box.
func defaultRules() *RuleSet {
	rs := NewRuleSet()

	rs.Register("messages.create", Rule{
		Required: []string{"To"},
		AnyOf: []Alternative{
			{Purpose: "sender identity", Fields: []string{"From", "MessagingServiceSid"}},
			{Purpose: "message content", Fields: []string{"Body", "MediaUrl", "ContentSid"}},
		},
	})

	rs.Register("calls.create", Rule{
		Required: []string{"To", "From"},
		AnyOf: []Alternative{
			{Purpose: "call instructions", Fields: []string{"Url", "Twiml", "ApplicationSid"}},
		},
	})

	rs.Register("verifications.create", Rule{
		Required: []string{"To"},
	})

	rs.Register("verification_checks.create", Rule{
		Required: []string{"To", "Code"},
	})

	return rs
}
