// Package common defines shared constants and sentinel errors used across
// client and server layers of Veritas. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Store lifecycle errors. ErrStoreInit is unrecoverable: the caller
	// must surface it, not retry.
	ErrStoreInit = errors.New("store initialization failed")
	ErrFetch     = errors.New("fetch failed")

	// Credential outcomes. These are expected user-facing results,
	// never system faults.
	ErrDuplicateIdentity  = errors.New("identity already registered")
	ErrIdentityNotFound   = errors.New("identity not found")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Service-level errors (generic/internal flow control).
	ErrInternal     = errors.New("internal error")
	ErrUnauthorized = errors.New("unauthorized")

	// Auth token errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// Uplink (external analysis engine) boundary errors. The UI picks
	// remediation from these: re-link a credential vs. a generic retry.
	ErrUplinkCredentialMissing = errors.New("uplink credential missing")
	ErrUplinkCredentialInvalid = errors.New("uplink credential invalid")
	ErrUplinkFailure           = errors.New("uplink failure")
)
