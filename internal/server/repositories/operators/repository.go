package operators

import (
	"context"

	"github.com/veritaslab/veritas/internal/server/models"
)

// Repository persists operator credential records. Records are written once
// at registration and never mutated afterwards.
type Repository interface {
	// Put upserts the record under its ID.
	Put(ctx context.Context, op *models.Operator) error
	// Get returns the record or common.ErrNotFound.
	Get(ctx context.Context, id string) (*models.Operator, error)
}
