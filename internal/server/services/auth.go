package services

import (
	"context"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/cryptox"
	"github.com/veritaslab/veritas/internal/server/auth"
	"github.com/veritaslab/veritas/internal/server/config"
	"github.com/veritaslab/veritas/internal/server/models"
)

// AttemptStage labels the phases of one authentication attempt.
type AttemptStage string

const (
	StageIdle      AttemptStage = "idle"
	StageLocating  AttemptStage = "locating"
	StageDeriving  AttemptStage = "deriving"
	StageComparing AttemptStage = "comparing"
	StageGranted   AttemptStage = "granted"
	StageDenied    AttemptStage = "denied"
)

// ProgressFunc observes authentication attempt stages. Callers pass it for
// UI feedback; a nil observer changes nothing about the attempt.
type ProgressFunc func(stage AttemptStage, message string)

// Session is an active operator session: the signed token plus its decoded
// identity and expiry.
type Session struct {
	OperatorID string    `json:"operator_id"`
	Token      string    `json:"token"`
	Expiry     time.Time `json:"expiry"`
}

// CredentialStore is the slice of the Store the credential service needs.
type CredentialStore interface {
	GetOperator(ctx context.Context, id string) (*models.Operator, error)
	PutOperator(ctx context.Context, op *models.Operator) error
	DispatchAudit(operatorID, action, details string)
}

// AuthService registers and authenticates operators. It holds no state of
// its own beyond configuration: all persistence goes through the store.
type AuthService struct {
	store             CredentialStore
	secretKey         []byte
	sessionValidity   time.Duration
	defaultIterations int
	lookupDelay       time.Duration

	// sleep is a seam so tests do not pay the timing-equalization delay.
	sleep func(d time.Duration)
}

// NewAuthService constructs an AuthService from the store and server config.
func NewAuthService(store CredentialStore, cfg *config.Config) *AuthService {
	iterations := cfg.DefaultIterations
	if iterations < cryptox.MinIterations {
		iterations = cryptox.MinIterations
	}
	return &AuthService{
		store:             store,
		secretKey:         []byte(cfg.SecretKey),
		sessionValidity:   cfg.SessionValidityDuration,
		defaultIterations: iterations,
		lookupDelay:       cfg.LookupDelay,
		sleep:             time.Sleep,
	}
}

// NormalizeID folds an operator identifier to its canonical form. Identity
// is case-insensitive: "soc-alpha" and "SOC-ALPHA" are the same operator.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

// Register creates a new operator and, since registration implies login,
// returns an active session. A colliding id (after normalization) yields
// ErrDuplicateIdentity with nothing written. A failed derivation or a failed
// write leaves no partial record behind.
func (s *AuthService) Register(ctx context.Context, id, passkey string, observe ProgressFunc) (*Session, error) {
	id = NormalizeID(id)
	notify(observe, StageLocating, "Checking identity registry...")

	_, err := s.store.GetOperator(ctx, id)
	if err == nil {
		notify(observe, StageDenied, "Identity already registered")
		return nil, common.ErrDuplicateIdentity
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	notify(observe, StageDeriving, "Deriving credential key...")
	salt := cryptox.GenerateSalt()
	hash, err := cryptox.DeriveKeyHex([]byte(passkey), salt, s.defaultIterations)
	if err != nil {
		notify(observe, StageDenied, "Key derivation failed")
		return nil, err
	}

	op := &models.Operator{
		ID:           id,
		PasswordHash: hash,
		Salt:         hex.EncodeToString(salt),
		Iterations:   s.defaultIterations,
	}
	if err := s.store.PutOperator(ctx, op); err != nil {
		notify(observe, StageDenied, "Registration failed")
		return nil, err
	}

	s.store.DispatchAudit(id, models.AuditRegistration, "operator registered")

	session, err := s.newSession(id)
	if err != nil {
		return nil, err
	}
	notify(observe, StageGranted, "Access granted")
	return session, nil
}

// Login authenticates an operator. An unknown id fails with
// ErrIdentityNotFound after a fixed artificial delay, so the response
// latency does not reveal whether the id exists. Verification always uses
// the salt and iteration count stored with the record, never the current
// registration default.
func (s *AuthService) Login(ctx context.Context, id, passkey string, observe ProgressFunc) (*Session, error) {
	id = NormalizeID(id)
	notify(observe, StageLocating, "Locating operator record...")

	op, err := s.store.GetOperator(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.sleep(s.lookupDelay)
			notify(observe, StageDenied, "Access denied")
			return nil, common.ErrIdentityNotFound
		}
		return nil, err
	}

	notify(observe, StageDeriving, "Deriving credential key...")
	salt, err := hex.DecodeString(op.Salt)
	if err != nil {
		return nil, common.ErrInternal
	}
	candidate, err := cryptox.DeriveKeyHex([]byte(passkey), salt, op.Iterations)
	if err != nil {
		return nil, common.ErrInternal
	}

	notify(observe, StageComparing, "Verifying credentials...")
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(op.PasswordHash)) != 1 {
		s.store.DispatchAudit(id, models.AuditLoginFail, "invalid passkey")
		notify(observe, StageDenied, "Access denied")
		return nil, common.ErrInvalidCredentials
	}

	s.store.DispatchAudit(id, models.AuditLogin, "operator signed in")

	session, err := s.newSession(id)
	if err != nil {
		return nil, err
	}
	notify(observe, StageGranted, "Access granted")
	return session, nil
}

// Logout records the sign-out. The audit write is dispatched, never
// awaited: clearing the session on the caller's side must not be blocked
// by audit logging.
func (s *AuthService) Logout(operatorID string) {
	if operatorID == "" {
		return
	}
	s.store.DispatchAudit(NormalizeID(operatorID), models.AuditLogout, "operator signed out")
}

// RestoreSession rebuilds a session from a persisted token. Expired or
// invalid tokens are discarded: the result is nil, not an error, because a
// stale marker at startup is an expected state.
func (s *AuthService) RestoreSession(token string) *Session {
	operatorID, expiry, err := auth.ParseToken(token, s.secretKey)
	if err != nil {
		return nil
	}
	return &Session{OperatorID: operatorID, Token: token, Expiry: expiry}
}

func (s *AuthService) newSession(operatorID string) (*Session, error) {
	token, err := auth.GenerateToken(operatorID, s.secretKey, s.sessionValidity)
	if err != nil {
		return nil, common.ErrInternal
	}
	return &Session{
		OperatorID: operatorID,
		Token:      token,
		Expiry:     time.Now().Add(s.sessionValidity),
	}, nil
}

func notify(observe ProgressFunc, stage AttemptStage, message string) {
	if observe != nil {
		observe(stage, message)
	}
}
