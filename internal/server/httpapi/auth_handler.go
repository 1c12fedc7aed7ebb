package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/server/services"
)

// AuthHandler exposes operator registration and session endpoints.
type AuthHandler struct {
	svc *services.AuthService
}

// NewAuthHandler creates an auth handler.
func NewAuthHandler(svc *services.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Register sets up the public auth routes.
func (h *AuthHandler) Register(app *fiber.App) {
	grp := app.Group("/api/v1/auth")
	grp.Post("/register", h.RegisterOperator)
	grp.Post("/login", h.Login)
}

// RegisterProtected sets up the auth routes that require a valid session.
func (h *AuthHandler) RegisterProtected(router fiber.Router) {
	grp := router.Group("/auth")
	grp.Get("/session", h.Session)
	grp.Post("/logout", h.Logout)
}

type credentialRequest struct {
	OperatorID string `json:"operator_id"`
	Passkey    string `json:"passkey"`
}

// RegisterOperator creates a new operator identity and returns a session.
func (h *AuthHandler) RegisterOperator(c fiber.Ctx) error {
	var body credentialRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.OperatorID == "" || body.Passkey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "operator_id and passkey are required"})
	}

	session, err := h.svc.Register(c.Context(), body.OperatorID, body.Passkey, nil)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateIdentity) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "operator id already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "registration failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(session)
}

// Login verifies the passkey and returns a fresh session. Unknown ids and
// wrong passkeys produce the same response so the endpoint does not reveal
// which operator ids exist.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var body credentialRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if body.OperatorID == "" || body.Passkey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "operator_id and passkey are required"})
	}

	session, err := h.svc.Login(c.Context(), body.OperatorID, body.Passkey, nil)
	if err != nil {
		if errors.Is(err, common.ErrIdentityNotFound) || errors.Is(err, common.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "login failed"})
	}

	return c.JSON(session)
}

// Session echoes the authenticated identity and its expiry so clients can
// restore state after a reload.
func (h *AuthHandler) Session(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"operator_id": OperatorID(c),
		"expiry":      TokenExpiry(c),
	})
}

// Logout records the logout in the audit trail. Tokens are stateless, so
// the client discards its copy; nothing is revoked server-side.
func (h *AuthHandler) Logout(c fiber.Ctx) error {
	h.svc.Logout(OperatorID(c))
	return c.SendStatus(fiber.StatusNoContent)
}
