// Package cryptox implements the password key-derivation scheme used for
// operator credentials: PBKDF2 over SHA-256 with a per-operator salt and a
// per-operator iteration count recorded at registration time.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/veritaslab/veritas/internal/common"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// SaltSize is the per-operator salt length in bytes.
	SaltSize = 16

	// KeySize is the derived key length in bytes.
	KeySize = 32

	// MinIterations is the floor for the registration work factor.
	// Records created elsewhere may carry any positive count; verification
	// always uses the stored value.
	MinIterations = 10_000

	// DefaultIterations is the work factor for new registrations unless
	// configured otherwise.
	DefaultIterations = 100_000
)

// GenerateSalt returns a fresh random salt of SaltSize bytes.
func GenerateSalt() []byte {
	return common.GenerateRandByteArray(SaltSize)
}

// DeriveKey derives KeySize bytes from passkey and salt using PBKDF2-SHA256.
// The result is deterministic: the same inputs always produce the same key.
func DeriveKey(passkey []byte, salt []byte, iterations int) ([]byte, error) {
	if iterations <= 0 {
		return nil, fmt.Errorf("iterations must be positive, got %d", iterations)
	}
	return pbkdf2.Key(passkey, salt, iterations, KeySize, sha256.New), nil
}

// DeriveKeyHex derives a key and returns it hex-encoded, the form stored in
// operator records.
func DeriveKeyHex(passkey []byte, salt []byte, iterations int) (string, error) {
	key, err := DeriveKey(passkey, salt, iterations)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(key)
	return hex.EncodeToString(key), nil
}

// VerifyKeyHex derives a candidate key from passkey using the stored salt and
// iteration count and compares it against storedHashHex in constant time.
// The comparison cost does not depend on how long a matching prefix is.
func VerifyKeyHex(passkey []byte, saltHex string, iterations int, storedHashHex string) (bool, error) {
	salt, err := hex.DecodeString(saltHex)
	if err != nil {
		return false, fmt.Errorf("decoding salt: %w", err)
	}
	candidate, err := DeriveKeyHex(passkey, salt, iterations)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(storedHashHex)) == 1, nil
}
