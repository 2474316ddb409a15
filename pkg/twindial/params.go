package twindial

import "strings"

// callerToWire maps caller-facing snake_case parameter names to the
// provider's wire field names. Names not listed here are converted
// mechanically by snakeToWire.
var callerToWire = map[string]string{
	"to":                    "To",
	"from":                  "From",
	"body":                  "Body",
	"media_url":             "MediaUrl",
	"content_sid":           "ContentSid",
	"messaging_service_sid": "MessagingServiceSid",
	"status_callback":       "StatusCallback",
	"url":                   "Url",
	"twiml":                 "Twiml",
	"application_sid":       "ApplicationSid",
	"channel":               "Channel",
	"code":                  "Code",
	"sid":                   "Sid",
	"service_sid":           "ServiceSid",
}

// wireToCaller is the inverse of callerToWire, built once at init.
var wireToCaller = func() map[string]string {
	m := make(map[string]string, len(callerToWire))
	for caller, wire := range callerToWire {
		m[wire] = caller
	}
	return m
}()

// wireName converts a caller-facing name to its wire field name.
func wireName(caller string) string {
	if w, ok := callerToWire[caller]; ok {
		return w
	}
	return snakeToWire(caller)
}

// callerName converts a wire field name back to the caller-facing name.
func callerName(wire string) string {
	if c, ok := wireToCaller[wire]; ok {
		return c
	}
	return wireToSnake(wire)
}

// snakeToWire turns "max_price" into "MaxPrice". Used for extension fields
// with no explicit mapping.
func snakeToWire(s string) string {
	parts := strings.Split(s, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(p[1:])
	}
	return b.String()
}

// wireToSnake turns "MaxPrice" into "max_price".
func wireToSnake(s string) string {
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// setIf adds a wire parameter only when the value is non-empty, matching the
// real client's treatment of unset optional fields.
func setIf(wire map[string]string, name, value string) {
	if value != "" {
		wire[name] = value
	}
}

// mergeExtra normalizes an extension-field bag into the wire map. Explicit
// struct fields win over Extra entries with the same name.
func mergeExtra(wire map[string]string, extra map[string]string) {
	for k, v := range extra {
		name := wireName(k)
		if _, taken := wire[name]; taken || v == "" {
			continue
		}
		wire[name] = v
	}
}
