// Package investigations provides the PostgreSQL-backed repository for
// persisted analysis runs.
package investigations

import (
	"context"
	"fmt"

	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/server/models"
)

// PostgresRepository implements investigation storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Upsert(ctx context.Context, rec *models.Investigation) error {
	query := `
		INSERT INTO investigations (id, operator_id, file_name, media_type, status, payload, verdict, confidence, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id)
		DO UPDATE SET
			operator_id = EXCLUDED.operator_id,
			file_name = EXCLUDED.file_name,
			media_type = EXCLUDED.media_type,
			status = EXCLUDED.status,
			payload = EXCLUDED.payload,
			verdict = EXCLUDED.verdict,
			confidence = EXCLUDED.confidence,
			created_at = EXCLUDED.created_at
	`
	if _, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.OperatorID, rec.FileName, rec.MediaType,
		rec.Status, rec.Payload, rec.Verdict, rec.Confidence, rec.CreatedAt); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) SelectByOperator(ctx context.Context, operatorID string) ([]*models.Investigation, error) {
	query := `
		SELECT id, operator_id, file_name, media_type, status, payload, verdict, confidence, created_at
		FROM investigations
		WHERE operator_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, operatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to select investigations: %w", err)
	}
	defer rows.Close()

	var result []*models.Investigation
	for rows.Next() {
		var item models.Investigation
		if err := rows.Scan(
			&item.ID, &item.OperatorID, &item.FileName, &item.MediaType,
			&item.Status, &item.Payload, &item.Verdict, &item.Confidence, &item.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM investigations WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) DeleteByOperator(ctx context.Context, operatorID string) (int64, error) {
	query := `DELETE FROM investigations WHERE operator_id = $1`
	res, err := r.db.ExecContext(ctx, query, operatorID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
