// Package operators provides the PostgreSQL-backed repository for operator
// credential records.
package operators

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/server/models"
)

// PostgresRepository implements operator storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Put(ctx context.Context, op *models.Operator) error {
	query := `
		INSERT INTO operators (id, password_hash, salt, iterations)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id)
		DO UPDATE SET
			password_hash = EXCLUDED.password_hash,
			salt = EXCLUDED.salt,
			iterations = EXCLUDED.iterations
	`
	if _, err := r.db.ExecContext(ctx, query,
		op.ID, op.PasswordHash, op.Salt, op.Iterations); err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, id string) (*models.Operator, error) {
	query := `
		SELECT id, password_hash, salt, iterations, created_at FROM operators
		WHERE id = $1
	`
	op := &models.Operator{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&op.ID, &op.PasswordHash, &op.Salt, &op.Iterations, &op.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return op, nil
}
