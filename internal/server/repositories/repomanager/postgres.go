// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/server/migrations"
	"github.com/veritaslab/veritas/internal/server/repositories/auditlog"
	"github.com/veritaslab/veritas/internal/server/repositories/investigations"
	"github.com/veritaslab/veritas/internal/server/repositories/operators"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository
// implementations and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

// Operators returns an operators.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Operators(db dbx.DBTX) operators.Repository {
	return operators.NewPostgresRepository(db)
}

// Investigations returns an investigations.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Investigations(db dbx.DBTX) investigations.Repository {
	return investigations.NewPostgresRepository(db)
}

// AuditLog returns an auditlog.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) AuditLog(db dbx.DBTX) auditlog.Repository {
	return auditlog.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing RunMigrations without a database.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations points goose at the embedded migration list and applies any
// versions the schema has not seen yet. Migrations are additive, so running
// against an older schema only adds what was introduced since.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, ".")
}
