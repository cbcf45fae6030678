// Package webhooksig verifies signed webhook deliveries from the identity
// provider. Deliveries carry three headers — svix-id, svix-timestamp,
// svix-signature — and the signature is an HMAC-SHA256 over
// "id.timestamp.body" keyed with the shared secret.
package webhooksig

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Tolerance bounds how far a delivery's timestamp may drift from the
// server clock before it is rejected as a possible replay.
const Tolerance = 5 * time.Minute

var (
	ErrMissingHeaders = errors.New("webhook delivery is missing signature headers")
	ErrStaleTimestamp = errors.New("webhook timestamp outside tolerance")
	ErrNoMatch        = errors.New("webhook signature does not match")
)

// Verifier checks deliveries against one endpoint secret.
type Verifier struct {
	key []byte
}

// NewVerifier parses an endpoint secret of the form "whsec_<base64>".
// A bare base64 secret is accepted too.
func NewVerifier(secret string) (*Verifier, error) {
	raw := strings.TrimPrefix(secret, "whsec_")
	if raw == "" {
		return nil, errors.New("webhook secret is empty")
	}
	key, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("webhook secret is not valid base64: %w", err)
	}
	return &Verifier{key: key}, nil
}

// Sign computes the signature for a delivery. Exposed so tests and
// outbound callers can produce valid deliveries.
func (v *Verifier) Sign(id string, timestamp time.Time, body []byte) string {
	mac := hmac.New(sha256.New, v.key)
	fmt.Fprintf(mac, "%s.%d.", id, timestamp.Unix())
	mac.Write(body)
	return "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Verify checks a delivery. signatures is the raw svix-signature header,
// a space-separated list of versioned signatures; verification succeeds
// if any v1 entry matches.
func (v *Verifier) Verify(id, timestamp, signatures string, body []byte, now time.Time) error {
	if id == "" || timestamp == "" || signatures == "" {
		return ErrMissingHeaders
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp %q: %w", timestamp, err)
	}
	sent := time.Unix(ts, 0)
	if d := now.Sub(sent); d > Tolerance || d < -Tolerance {
		return ErrStaleTimestamp
	}

	expected := v.Sign(id, sent, body)
	for _, candidate := range strings.Fields(signatures) {
		if !strings.HasPrefix(candidate, "v1,") {
			continue
		}
		if hmac.Equal([]byte(candidate), []byte(expected)) {
			return nil
		}
	}
	return ErrNoMatch
}
