// Package token builds Twilio-shaped access tokens for tests: HS256 JWTs
// with the twilio-fpa content type and a grants claim. Tokens are shape
// compatible with what the real API issues; nothing ever validates the
// credentials behind them.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ContentType is the JWT cty header value the provider uses for access
// tokens.
const ContentType = "twilio-fpa;v=1"

// DefaultTTL is the token lifetime used when none is set.
const DefaultTTL = time.Hour

// ErrInvalidToken is returned when a token fails verification.
var ErrInvalidToken = errors.New("invalid access token")

// AccessToken accumulates grants and signs them into a JWT.
type AccessToken struct {
	accountSID string
	keySID     string
	secret     string
	identity   string
	ttl        time.Duration
	now        func() time.Time

	grantOrder []string
	grants     map[string]map[string]any
}

// New creates an access token builder for the given account and API key.
func New(accountSID, keySID, secret string) *AccessToken {
	return &AccessToken{
		accountSID: accountSID,
		keySID:     keySID,
		secret:     secret,
		ttl:        DefaultTTL,
		now:        time.Now,
		grants:     make(map[string]map[string]any),
	}
}

// SetIdentity sets the identity embedded in the grants claim.
func (t *AccessToken) SetIdentity(identity string) *AccessToken {
	t.identity = identity
	return t
}

// SetTTL sets the token lifetime.
func (t *AccessToken) SetTTL(d time.Duration) *AccessToken {
	t.ttl = d
	return t
}

// AddGrant adds a named grant, e.g. "voice" or "chat". A nil payload adds an
// empty grant object. Re-adding a name replaces its payload.
func (t *AccessToken) AddGrant(name string, payload map[string]any) *AccessToken {
	if _, exists := t.grants[name]; !exists {
		t.grantOrder = append(t.grantOrder, name)
	}
	if payload == nil {
		payload = map[string]any{}
	}
	t.grants[name] = payload
	return t
}

// JWT signs the accumulated grants into a compact token string.
func (t *AccessToken) JWT() (string, error) {
	now := t.now()

	grants := make(map[string]any, len(t.grants)+1)
	if t.identity != "" {
		grants["identity"] = t.identity
	}
	for _, name := range t.grantOrder {
		grants[name] = t.grants[name]
	}

	claims := jwt.MapClaims{
		"jti":    fmt.Sprintf("%s-%d", t.keySID, now.Unix()),
		"iss":    t.keySID,
		"sub":    t.accountSID,
		"iat":    now.Unix(),
		"exp":    now.Add(t.ttl).Unix(),
		"grants": grants,
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tok.Header["cty"] = ContentType

	signed, err := tok.SignedString([]byte(t.secret))
	if err != nil {
		return "", fmt.Errorf("signing access token: %w", err)
	}
	return signed, nil
}

// Verify parses a token string with the given API key secret and returns its
// claims. Intended for asserting on tokens minted in tests.
func Verify(tokenString, secret string) (jwt.MapClaims, error) {
	parsed, err := jwt.Parse(tokenString, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", tok.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
