package investigations

import (
	"context"

	"github.com/veritaslab/veritas/internal/server/models"
)

// Repository persists investigation records keyed by caller-supplied id,
// with a secondary lookup by owning operator.
type Repository interface {
	// Upsert writes or overwrites the record under its ID.
	Upsert(ctx context.Context, rec *models.Investigation) error
	// SelectByOperator returns all records owned by the operator. Order is
	// not part of the contract; callers re-sort as needed.
	SelectByOperator(ctx context.Context, operatorID string) ([]*models.Investigation, error)
	// Delete removes one record by ID. Absent records are a no-op.
	Delete(ctx context.Context, id string) error
	// DeleteByOperator removes all of the operator's records and returns
	// how many were deleted.
	DeleteByOperator(ctx context.Context, operatorID string) (int64, error)
}
