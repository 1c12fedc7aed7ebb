package repomanager

import (
	"context"
	"database/sql"

	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/server/repositories/auditlog"
	"github.com/veritaslab/veritas/internal/server/repositories/investigations"
	"github.com/veritaslab/veritas/internal/server/repositories/operators"
)

// RepositoryManager vends repositories bound to a DBTX and owns the schema
// migration hook. Passing a *sql.Tx binds every vended repository to the
// same transaction.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Operators(db dbx.DBTX) operators.Repository
	Investigations(db dbx.DBTX) investigations.Repository
	AuditLog(db dbx.DBTX) auditlog.Repository
}
