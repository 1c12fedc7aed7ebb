package common

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// GenerateRandByteArray returns size cryptographically random bytes.
// It panics if the system random source fails, which is not a condition
// the application can continue under.
func GenerateRandByteArray(size int) []byte {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return b
}

// MakeRandHexString generates a random hexadecimal string built from size
// random bytes. The resulting string is twice as long as size.
func MakeRandHexString(size int) (string, error) {
	b := make([]byte, size)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// MakeTimeOrderedID returns an identifier of the form
// "<unix-millis>-<random hex>". The millisecond prefix keeps ids roughly
// time-sortable; the random suffix keeps rapid successive calls from
// colliding.
func MakeTimeOrderedID() string {
	suffix, err := MakeRandHexString(6)
	if err != nil {
		// Same stance as GenerateRandByteArray: a dead random source
		// is not survivable.
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return fmt.Sprintf("%d-%s", time.Now().UnixMilli(), suffix)
}

// WipeByteArray overwrites the contents of b with zeros. Used to remove
// passwords and derived keys from memory after use. A nil slice is a no-op.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
