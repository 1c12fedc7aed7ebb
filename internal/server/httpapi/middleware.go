package httpapi

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/veritaslab/veritas/internal/server/auth"
	"github.com/veritaslab/veritas/internal/server/models"
)

const (
	localOperatorID  = "operator_id"
	localTokenExpiry = "token_expiry"
)

// AuditDispatcher records audit entries without blocking the caller.
type AuditDispatcher interface {
	DispatchAudit(operatorID, action, details string)
}

// SessionMiddleware validates the bearer token and injects the operator id
// into the request locals. Requests without a valid token are rejected.
func SessionMiddleware(secretKey []byte) fiber.Handler {
	return func(c fiber.Ctx) error {
		var token string

		authHeader := c.Get("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
				token = parts[1]
			}
		}

		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing authorization",
			})
		}

		operatorID, expiry, err := auth.ParseToken(token, secretKey)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or expired session",
			})
		}

		c.Locals(localOperatorID, operatorID)
		c.Locals(localTokenExpiry, expiry)

		return c.Next()
	}
}

// OperatorID extracts the authenticated operator id from the request locals.
// Returns "" when the request did not pass the session middleware.
func OperatorID(c fiber.Ctx) string {
	id, _ := c.Locals(localOperatorID).(string)
	return id
}

// TokenExpiry extracts the session expiry from the request locals.
func TokenExpiry(c fiber.Ctx) time.Time {
	t, _ := c.Locals(localTokenExpiry).(time.Time)
	return t
}

// AuditMiddleware records every request in the audit trail. The write is
// dispatched after the handler runs so it never delays the response, and
// request data is captured up front because fiber reuses context objects.
func AuditMiddleware(dispatcher AuditDispatcher) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		method := c.Method()
		path := c.Path()

		err := c.Next()

		operatorID := OperatorID(c)
		if operatorID == "" {
			operatorID = "anonymous"
		}

		details, _ := json.Marshal(map[string]any{
			"method":      method,
			"path":        path,
			"status":      c.Response().StatusCode(),
			"duration_ms": time.Since(start).Milliseconds(),
		})

		dispatcher.DispatchAudit(operatorID, models.AuditHTTPRequest, string(details))

		return err
	}
}
