package webhooksig

import (
	"encoding/base64"
	"errors"
	"strconv"
	"testing"
	"time"
)

const testSecret = "whsec_dGVzdC1zZWNyZXQta2V5LWZvci1obWFj"

func TestNewVerifier(t *testing.T) {
	if _, err := NewVerifier(testSecret); err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}
	// Bare base64 without the prefix is accepted.
	if _, err := NewVerifier(base64.StdEncoding.EncodeToString([]byte("key"))); err != nil {
		t.Errorf("bare base64 secret rejected: %v", err)
	}
	if _, err := NewVerifier(""); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewVerifier("whsec_!!!"); err == nil {
		t.Error("expected error for invalid base64")
	}
}

func TestVerify(t *testing.T) {
	v, err := NewVerifier(testSecret)
	if err != nil {
		t.Fatalf("NewVerifier failed: %v", err)
	}

	now := time.Now()
	body := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)
	id := "msg_2f9a"
	sig := v.Sign(id, now, body)
	ts := itoa(now.Unix())

	if err := v.Verify(id, ts, sig, body, now); err != nil {
		t.Errorf("valid delivery rejected: %v", err)
	}

	// Multiple candidate signatures: any matching v1 entry passes.
	if err := v.Verify(id, ts, "v1,bm90LWl0 "+sig, body, now); err != nil {
		t.Errorf("delivery with extra signatures rejected: %v", err)
	}

	if err := v.Verify(id, ts, "v1,bm90LWl0", body, now); !errors.Is(err, ErrNoMatch) {
		t.Errorf("forged signature: error = %v, want ErrNoMatch", err)
	}

	// Tampered body.
	if err := v.Verify(id, ts, sig, []byte(`{}`), now); !errors.Is(err, ErrNoMatch) {
		t.Errorf("tampered body: error = %v, want ErrNoMatch", err)
	}

	// Replay outside the tolerance window.
	old := now.Add(-Tolerance - time.Minute)
	oldSig := v.Sign(id, old, body)
	if err := v.Verify(id, itoa(old.Unix()), oldSig, body, now); !errors.Is(err, ErrStaleTimestamp) {
		t.Errorf("stale delivery: error = %v, want ErrStaleTimestamp", err)
	}

	if err := v.Verify("", ts, sig, body, now); !errors.Is(err, ErrMissingHeaders) {
		t.Errorf("missing id: error = %v, want ErrMissingHeaders", err)
	}
	if err := v.Verify(id, "yesterday", sig, body, now); err == nil {
		t.Error("expected error for unparseable timestamp")
	}
}

func itoa(n int64) string {
	return strconv.FormatInt(n, 10)
}
