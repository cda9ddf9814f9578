package signature

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
)

const (
	// SecretPrefix is the prefix for encoded signing secrets
	SecretPrefix = "whsec_"

	// MinSecretBytes is the minimum recommended secret size (192 bits)
	MinSecretBytes = 24

	// MaxSecretBytes is the maximum recommended secret size (512 bits)
	MaxSecretBytes = 64
)

// Secret represents a per-subscription signing secret.
type Secret struct {
	raw    []byte
	base64 string
}

// GenerateSecret creates a new cryptographically secure signing secret
// between MinSecretBytes and MaxSecretBytes in size.
func GenerateSecret(size int) (Secret, error) {
	if size < MinSecretBytes || size > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	bytes := make([]byte, size)
	if _, err := rand.Read(bytes); err != nil {
		return Secret{}, fmt.Errorf("generating random bytes: %w", err)
	}

	return Secret{
		raw:    bytes,
		base64: SecretPrefix + base64.StdEncoding.EncodeToString(bytes),
	}, nil
}

// ParseSecret parses a base64-encoded secret with the whsec_ prefix.
func ParseSecret(encoded string) (Secret, error) {
	if !strings.HasPrefix(encoded, SecretPrefix) {
		return Secret{}, fmt.Errorf("secret must start with %s prefix", SecretPrefix)
	}

	b64 := strings.TrimPrefix(encoded, SecretPrefix)
	raw, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return Secret{}, fmt.Errorf("decoding base64 secret: %w", err)
	}

	if len(raw) < MinSecretBytes || len(raw) > MaxSecretBytes {
		return Secret{}, fmt.Errorf("secret size must be between %d and %d bytes", MinSecretBytes, MaxSecretBytes)
	}

	return Secret{
		raw:    raw,
		base64: encoded,
	}, nil
}

// String returns the base64-encoded secret with prefix.
func (s Secret) String() string {
	return s.base64
}

// Bytes returns the raw secret bytes.
func (s Secret) Bytes() []byte {
	return s.raw
}

// Sign computes the hex-encoded HMAC-SHA256 of the exact payload bytes.
// Receivers recompute this over the body they received; any
// re-serialization on either side breaks verification.
func Sign(secret Secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret.Bytes())
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks a hex-encoded signature using constant-time comparison.
func Verify(secret Secret, payload []byte, expectedSig string) bool {
	expected, err := hex.DecodeString(expectedSig)
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, secret.Bytes())
	mac.Write(payload)

	return hmac.Equal(expected, mac.Sum(nil))
}
