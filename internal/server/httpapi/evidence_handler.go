package httpapi

import (
	"github.com/gofiber/fiber/v3"

	"github.com/veritaslab/veritas/internal/server/services"
)

// EvidenceHandler exposes presigned evidence storage URLs.
type EvidenceHandler struct {
	svc *services.EvidenceService
}

// NewEvidenceHandler creates an evidence handler.
func NewEvidenceHandler(svc *services.EvidenceService) *EvidenceHandler {
	return &EvidenceHandler{svc: svc}
}

// Register sets up evidence routes on a session-protected router.
func (h *EvidenceHandler) Register(router fiber.Router) {
	grp := router.Group("/evidence")
	grp.Post("/presign", h.Presign)
}

type presignRequest struct {
	Mode string `json:"mode"` // "upload" or "download"
	Key  string `json:"key,omitempty"`
}

// Presign returns a short-lived signed URL for uploading new evidence or
// downloading an existing object by key.
func (h *EvidenceHandler) Presign(c fiber.Ctx) error {
	var body presignRequest
	if err := c.Bind().JSON(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	switch body.Mode {
	case "upload":
		key, url, err := h.svc.PresignUpload(c.Context())
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "presign failed"})
		}
		return c.JSON(fiber.Map{"key": key, "url": url})
	case "download":
		if body.Key == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "key is required for download"})
		}
		url, err := h.svc.PresignDownload(c.Context(), body.Key)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "presign failed"})
		}
		return c.JSON(fiber.Map{"key": body.Key, "url": url})
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "mode must be upload or download"})
	}
}
