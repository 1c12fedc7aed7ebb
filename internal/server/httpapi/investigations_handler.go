package httpapi

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/server/services"
)

// InvestigationsHandler exposes the investigation lifecycle endpoints.
type InvestigationsHandler struct {
	svc *services.AnalysisService
}

// NewInvestigationsHandler creates an investigations handler.
func NewInvestigationsHandler(svc *services.AnalysisService) *InvestigationsHandler {
	return &InvestigationsHandler{svc: svc}
}

// Register sets up investigation routes on a session-protected router.
func (h *InvestigationsHandler) Register(router fiber.Router) {
	grp := router.Group("/investigations")
	grp.Get("/", h.List)
	grp.Post("/analyze", h.Analyze)
	grp.Delete("/:id", h.Delete)
	grp.Delete("/", h.Purge)
}

// Analyze submits evidence to the engine and returns the stored
// investigation, verdict included. Engine credential problems map to 502
// with a hint distinguishing a missing credential from a rejected one.
func (h *InvestigationsHandler) Analyze(c fiber.Ctx) error {
	var sub services.Submission
	if err := c.Bind().JSON(&sub); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if sub.FileName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file_name is required"})
	}
	if sub.URL == "" && sub.EvidenceKey == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "url or evidence_key is required"})
	}

	rec, err := h.svc.Submit(c.Context(), OperatorID(c), sub)
	switch {
	case errors.Is(err, common.ErrUplinkCredentialMissing):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "analysis engine credential is not configured",
			"hint":  "link an engine credential before submitting evidence",
		})
	case errors.Is(err, common.ErrUplinkCredentialInvalid):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "analysis engine rejected the configured credential",
			"hint":  "re-link the engine credential",
		})
	case err != nil:
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": "analysis failed"})
	}

	return c.Status(fiber.StatusCreated).JSON(rec)
}

// List returns all investigations owned by the authenticated operator.
func (h *InvestigationsHandler) List(c fiber.Ctx) error {
	recs, err := h.svc.List(c.Context(), OperatorID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load investigations"})
	}
	return c.JSON(fiber.Map{
		"investigations": recs,
		"count":          len(recs),
	})
}

// Delete removes one investigation. Absent ids are treated as already
// deleted.
func (h *InvestigationsHandler) Delete(c fiber.Ctx) error {
	if err := h.svc.Delete(c.Context(), c.Params("id")); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "delete failed"})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Purge removes every investigation owned by the operator and returns the
// count of removed records.
func (h *InvestigationsHandler) Purge(c fiber.Ctx) error {
	n, err := h.svc.Purge(c.Context(), OperatorID(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "purge failed"})
	}
	return c.JSON(fiber.Map{"purged": n})
}
