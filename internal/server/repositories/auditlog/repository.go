package auditlog

import (
	"context"

	"github.com/veritaslab/veritas/internal/server/models"
)

// Repository persists the append-only audit log. The contract deliberately
// has no update or single-entry delete: entries are immutable once written
// and only disappear through operator purge cascades handled elsewhere.
type Repository interface {
	// Append inserts one immutable entry.
	Append(ctx context.Context, entry *models.AuditEntry) error
	// SelectRecent returns up to limit entries for the operator, sorted by
	// descending timestamp with ties broken by descending id.
	SelectRecent(ctx context.Context, operatorID string, limit int) ([]*models.AuditEntry, error)
}
