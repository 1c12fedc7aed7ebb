// Package auditlog provides the PostgreSQL-backed repository for the
// append-only audit log.
package auditlog

import (
	"context"
	"fmt"

	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/server/models"
)

// PostgresRepository implements audit storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Append(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, operator_id, action, details, ts)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.OperatorID, entry.Action, entry.Details, entry.Timestamp); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectRecent(ctx context.Context, operatorID string, limit int) ([]*models.AuditEntry, error) {
	query := `
		SELECT id, operator_id, action, details, ts FROM audit_log
		WHERE operator_id = $1
		ORDER BY ts DESC, id DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, operatorID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to select audit entries: %w", err)
	}
	defer rows.Close()

	result := []*models.AuditEntry{}
	for rows.Next() {
		var item models.AuditEntry
		if err := rows.Scan(&item.ID, &item.OperatorID, &item.Action, &item.Details, &item.Timestamp); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
