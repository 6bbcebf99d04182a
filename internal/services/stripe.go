package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"cvcoach/api/internal/models"
)

// ErrBadSignature is deliberately generic: callers must not learn which part
// of verification failed.
var ErrBadSignature = errors.New("webhook signature verification failed")

const signatureScheme = "v1"

type signatureHeader struct {
	timestamp  int64
	signatures [][]byte
}

// VerifySignature authenticates a webhook payload against the shared secret.
// It must be given the exact raw bytes of the request body; a re-serialized
// body breaks the signature. The declared timestamp must fall within
// tolerance of the current time, which bounds replay. Nothing is mutated on
// failure.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) (*models.CheckoutEvent, error) {
	if header == "" || secret == "" {
		return nil, ErrBadSignature
	}

	parsed, err := parseSignatureHeader(header)
	if err != nil {
		return nil, ErrBadSignature
	}

	declared := time.Unix(parsed.timestamp, 0)
	if drift := time.Since(declared); drift > tolerance || drift < -tolerance {
		return nil, ErrBadSignature
	}

	expected := computeSignature(parsed.timestamp, payload, secret)
	valid := false
	for _, sig := range parsed.signatures {
		if subtle.ConstantTimeCompare(expected, sig) == 1 {
			valid = true
		}
	}
	if !valid {
		return nil, ErrBadSignature
	}

	var event models.CheckoutEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decode verified event: %w", err)
	}
	return &event, nil
}

// parseSignatureHeader splits "t=<unix>,v1=<hex>[,v1=<hex>...]". Entries with
// unknown schemes are skipped so provider-side test signatures never break
// verification.
func parseSignatureHeader(header string) (*signatureHeader, error) {
	parsed := &signatureHeader{}

	for _, pair := range strings.Split(header, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed signature entry %q", pair)
		}

		switch parts[0] {
		case "t":
			ts, err := strconv.ParseInt(parts[1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("malformed timestamp: %w", err)
			}
			parsed.timestamp = ts
		case signatureScheme:
			sig, err := hex.DecodeString(parts[1])
			if err != nil {
				return nil, fmt.Errorf("malformed signature: %w", err)
			}
			parsed.signatures = append(parsed.signatures, sig)
		}
	}

	if parsed.timestamp == 0 || len(parsed.signatures) == 0 {
		return nil, fmt.Errorf("missing timestamp or signature")
	}
	return parsed, nil
}

// computeSignature signs "<timestamp>.<payload>" with HMAC-SHA256.
func computeSignature(timestamp int64, payload []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", timestamp)
	mac.Write(payload)
	return mac.Sum(nil)
}

// BuildSignatureHeader produces a header VerifySignature accepts. Used by
// tests and local tooling to fabricate signed deliveries.
func BuildSignatureHeader(timestamp time.Time, payload []byte, secret string) string {
	ts := timestamp.Unix()
	sig := computeSignature(ts, payload, secret)
	return fmt.Sprintf("t=%d,%s=%s", ts, signatureScheme, hex.EncodeToString(sig))
}
