package httpapi

import (
	"strconv"

	"github.com/gofiber/fiber/v3"

	"github.com/veritaslab/veritas/internal/server/services"
)

// AuditHandler exposes the read side of the audit trail.
type AuditHandler struct {
	store *services.Store
}

// NewAuditHandler creates an audit handler.
func NewAuditHandler(store *services.Store) *AuditHandler {
	return &AuditHandler{store: store}
}

// Register sets up audit routes on a session-protected router.
func (h *AuditHandler) Register(router fiber.Router) {
	grp := router.Group("/audit")
	grp.Get("/recent", h.Recent)
}

// Recent returns the newest audit entries for the authenticated operator.
// The feed is advisory, so a storage hiccup yields an empty list rather
// than an error.
func (h *AuditHandler) Recent(c fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "20"))

	entries := h.store.RecentAudit(c.Context(), OperatorID(c), limit)
	return c.JSON(fiber.Map{
		"entries": entries,
		"count":   len(entries),
	})
}
