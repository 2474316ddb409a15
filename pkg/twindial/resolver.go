package twindial

import (
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// Payload is the field mapping a resolved call produces. Synthetic resource
// objects are built from payloads; configured responses are payloads too.
type Payload map[string]any

// sidCounter makes generated SIDs unique within a process run, across all
// client instances.
var sidCounter atomic.Uint64

// nextSID generates a Twilio-shaped identifier: two-letter prefix plus 32 hex
// characters.
func nextSID(prefix string) string {
	n := sidCounter.Add(1)
	return fmt.Sprintf("%s%032x", prefix, n)
}

// etagFor derives a deterministic opaque version token from a SID, mirroring
// the ETag the real API attaches to fetched resources.
func etagFor(sid string) string {
	sum := sha1.Sum([]byte(sid))
	return fmt.Sprintf("%q", hex.EncodeToString(sum[:8]))
}

// echoFields maps wire parameter names to the response field they echo into,
// per resource family.
var messageEchoFields = map[string]string{
	"To":                  "to",
	"From":                "from",
	"Body":                "body",
	"MessagingServiceSid": "messaging_service_sid",
}

var callEchoFields = map[string]string{
	"To":   "to",
	"From": "from",
	"Url":  "url",
}

var verifyEchoFields = map[string]string{
	"To":         "to",
	"Channel":    "channel",
	"ServiceSid": "service_sid",
}

// synthesizer builds the default payload for one resource method.
type synthesizer func(c *Client, wire map[string]string) Payload

// synthesizers holds the default response synthesis for every registered
// resource method.
var synthesizers = map[string]synthesizer{
	"messages.create":            synthesizeMessageCreate,
	"calls.create":               synthesizeCallCreate,
	"verifications.create":       synthesizeVerificationCreate,
	"verification_checks.create": synthesizeVerificationCheck,
}

// fallbackDefaults lists resource methods that have no validation rule but
// still return a generic default payload. Calls to these keys ARE recorded.
// The payload shape is an explicit per-resource table, never inferred.
var fallbackDefaults = map[string]synthesizer{
	"messages.fetch": func(c *Client, wire map[string]string) Payload {
		sid := wire["Sid"]
		if sid == "" {
			sid = nextSID("SM")
		}
		return Payload{
			"sid":         sid,
			"account_sid": c.accountSID,
			"status":      "delivered",
			"direction":   "outbound-api",
			"etag":        etagFor(sid),
			"uri":         fmt.Sprintf("/2010-04-01/Accounts/%s/Messages/%s.json", c.accountSID, sid),
		}
	},
	"calls.fetch": func(c *Client, wire map[string]string) Payload {
		sid := wire["Sid"]
		if sid == "" {
			sid = nextSID("CA")
		}
		return Payload{
			"sid":         sid,
			"account_sid": c.accountSID,
			"status":      "completed",
			"direction":   "outbound-api",
			"etag":        etagFor(sid),
			"uri":         fmt.Sprintf("/2010-04-01/Accounts/%s/Calls/%s.json", c.accountSID, sid),
		}
	},
}

func synthesizeMessageCreate(c *Client, wire map[string]string) Payload {
	sid := nextSID("SM")
	now := c.now().Format(time.RFC1123Z)
	p := Payload{
		"sid":          sid,
		"account_sid":  c.accountSID,
		"status":       "sent",
		"direction":    "outbound-api",
		"num_segments": "1",
		"num_media":    "0",
		"price_unit":   "USD",
		"date_created": now,
		"date_updated": now,
		"date_sent":    now,
		"etag":         etagFor(sid),
		"uri":          fmt.Sprintf("/2010-04-01/Accounts/%s/Messages/%s.json", c.accountSID, sid),
	}
	echo(p, wire, messageEchoFields)
	return p
}

func synthesizeCallCreate(c *Client, wire map[string]string) Payload {
	sid := nextSID("CA")
	now := c.now().Format(time.RFC1123Z)
	p := Payload{
		"sid":          sid,
		"account_sid":  c.accountSID,
		"status":       "queued",
		"direction":    "outbound-api",
		"price_unit":   "USD",
		"date_created": now,
		"date_updated": now,
		"etag":         etagFor(sid),
		"uri":          fmt.Sprintf("/2010-04-01/Accounts/%s/Calls/%s.json", c.accountSID, sid),
	}
	echo(p, wire, callEchoFields)
	return p
}

func synthesizeVerificationCreate(c *Client, wire map[string]string) Payload {
	sid := nextSID("VE")
	now := c.now().Format(time.RFC3339)
	p := Payload{
		"sid":          sid,
		"account_sid":  c.accountSID,
		"status":       "pending",
		"valid":        false,
		"channel":      "sms",
		"date_created": now,
		"date_updated": now,
	}
	echo(p, wire, verifyEchoFields)
	return p
}

func synthesizeVerificationCheck(c *Client, wire map[string]string) Payload {
	sid := nextSID("VE")
	now := c.now().Format(time.RFC3339)
	p := Payload{
		"sid":          sid,
		"account_sid":  c.accountSID,
		"status":       "approved",
		"valid":        true,
		"channel":      "sms",
		"date_created": now,
		"date_updated": now,
	}
	echo(p, wire, verifyEchoFields)
	return p
}

// echo copies present wire parameters into their response fields.
func echo(p Payload, wire map[string]string, fields map[string]string) {
	for wireField, respField := range fields {
		if v, ok := wire[wireField]; ok && v != "" {
			p[respField] = v
		}
	}
}

// resolve produces the payload for an accepted call: the default synthesis
// with any configured override shallow-merged on top. Overrides never fully
// replace the default, so callers get identifiers and echoed fields for free
// unless they explicitly override them.
func (c *Client) resolve(key string, wire map[string]string) Payload {
	var p Payload
	if synth, ok := synthesizers[key]; ok {
		p = synth(c, wire)
	} else if synth, ok := fallbackDefaults[key]; ok {
		p = synth(c, wire)
	} else {
		// Custom rule registered via RegisterRule without a synthesizer:
		// echo everything back under caller-facing names.
		p = Payload{"sid": nextSID("XX"), "account_sid": c.accountSID, "status": "accepted"}
		for k, v := range wire {
			p[callerName(k)] = v
		}
	}

	c.mu.Lock()
	override := c.overrides[key]
	c.mu.Unlock()
	for k, v := range override {
		p[k] = v
	}
	return p
}
