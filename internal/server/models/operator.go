package models

import "time"

// Operator is a registered analyst account. The ID is the login identifier,
// uppercased at registration and used as the primary key.
//
// Iterations is the PBKDF2 work factor that produced PasswordHash. It is
// immutable once stored: verification must always use this value, never the
// current registration default, so raising the default does not invalidate
// existing operators.
type Operator struct {
	ID           string
	PasswordHash string // hex-encoded derived key
	Salt         string // hex-encoded per-operator salt
	Iterations   int
	CreatedAt    time.Time
}
