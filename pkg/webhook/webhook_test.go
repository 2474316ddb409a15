package webhook_test

import (
	"net/url"
	"testing"

	"github.com/wondertwin-ai/twindial/pkg/webhook"
)

func exampleParams() url.Values {
	return url.Values{
		"CallSid": []string{"CA1234567890ABCDE"},
		"Caller":  []string{"+14158675309"},
		"Digits":  []string{"1234"},
		"From":    []string{"+14158675309"},
		"To":      []string{"+18005551212"},
	}
}

func TestValidateRoundTrip(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	uri := "https://mycompany.com/myapp.php?foo=1&bar=2"
	params := exampleParams()

	sig := v.ComputeSignature(uri, params)
	if sig == "" {
		t.Fatal("empty signature")
	}
	if !v.Validate(uri, params, sig) {
		t.Error("signature did not validate against its own input")
	}
}

func TestValidateRejectsTamperedParams(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	uri := "https://mycompany.com/myapp.php?foo=1&bar=2"

	sig := v.ComputeSignature(uri, exampleParams())

	tampered := exampleParams()
	tampered.Set("Digits", "9999")
	if v.Validate(uri, tampered, sig) {
		t.Error("tampered params validated")
	}

	if v.Validate("https://mycompany.com/other.php", exampleParams(), sig) {
		t.Error("different url validated")
	}
}

func TestValidateRejectsWrongToken(t *testing.T) {
	uri := "https://mycompany.com/myapp.php"
	sig := webhook.NewRequestValidator("12345").ComputeSignature(uri, exampleParams())

	if webhook.NewRequestValidator("54321").Validate(uri, exampleParams(), sig) {
		t.Error("signature validated with the wrong token")
	}
}

func TestValidateRejectsGarbageSignature(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	if v.Validate("https://mycompany.com/myapp.php", exampleParams(), "not base64 !!!") {
		t.Error("garbage signature validated")
	}
}

// Upstream signs URLs inconsistently with respect to default ports: a
// signature computed over the explicit-port form must validate the
// port-less URL and vice versa.
func TestValidatePortInsensitive(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	params := exampleParams()

	tt := []struct {
		name      string
		signedURL string
		checkURL  string
	}{
		{"signed with port, checked without", "https://mycompany.com:443/myapp.php?foo=1", "https://mycompany.com/myapp.php?foo=1"},
		{"signed without port, checked with", "https://mycompany.com/myapp.php?foo=1", "https://mycompany.com:443/myapp.php?foo=1"},
		{"http default port", "http://mycompany.com:80/myapp.php", "http://mycompany.com/myapp.php"},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			sig := v.ComputeSignature(tc.signedURL, params)
			if !v.Validate(tc.checkURL, params, sig) {
				t.Errorf("signature over %q did not validate %q", tc.signedURL, tc.checkURL)
			}
		})
	}
}

func TestValidateMultiValueParamsSortedAndDeduped(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	uri := "https://mycompany.com/myapp.php"

	a := url.Values{"MediaUrl": []string{"https://b.example", "https://a.example", "https://a.example"}}
	b := url.Values{"MediaUrl": []string{"https://a.example", "https://b.example"}}

	if v.ComputeSignature(uri, a) != v.ComputeSignature(uri, b) {
		t.Error("value order/duplication changed the signature")
	}
}

func TestValidateBody(t *testing.T) {
	v := webhook.NewRequestValidator("12345")
	body := []byte(`{"event":"message.sent"}`)
	hash := webhook.ComputeBodyHash(body)
	uri := "https://mycompany.com/hook?bodySHA256=" + hash

	sig := v.ComputeSignature(uri, nil)

	if !v.ValidateBody(uri, body, sig) {
		t.Error("valid body did not validate")
	}
	if v.ValidateBody(uri, []byte(`{"event":"tampered"}`), sig) {
		t.Error("tampered body validated")
	}
}
