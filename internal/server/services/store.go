// Package services contains server-side business logic: the durable store
// facade, credential handling, analysis orchestration, and evidence intake.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/veritaslab/veritas/internal/common"
	"github.com/veritaslab/veritas/internal/dbx"
	"github.com/veritaslab/veritas/internal/logging"
	"github.com/veritaslab/veritas/internal/server/models"
	"github.com/veritaslab/veritas/internal/server/repositories/repomanager"
)

// DefaultRecentAuditLimit bounds RecentAudit when the caller passes no limit.
const DefaultRecentAuditLimit = 20

// Store is the durable record store for the three collections: operators,
// investigations, and the append-only audit log. It owns the explicit
// open/close lifecycle; every operation implicitly ensures the store has
// been opened, so callers may use it without calling Open themselves.
type Store struct {
	db     *sql.DB
	rm     repomanager.RepositoryManager
	logger logging.Logger

	openOnce sync.Once
	openErr  error

	// dispatches tracks in-flight fire-and-forget audit writes so Close
	// can drain them.
	dispatches sync.WaitGroup
}

// NewStore constructs a Store over the given connection pool. The store is
// not usable for reads/writes until Open succeeds, but operations call Open
// implicitly.
func NewStore(db *sql.DB, rm repomanager.RepositoryManager, logger logging.Logger) *Store {
	return &Store{db: db, rm: rm, logger: logger}
}

// Open applies schema migrations. It is idempotent: the migration run
// happens once and repeat calls return the recorded outcome. A failure is
// unrecoverable through this handle and is reported as ErrStoreInit.
func (s *Store) Open(ctx context.Context) error {
	s.openOnce.Do(func() {
		if err := s.rm.RunMigrations(ctx, s.db); err != nil {
			s.openErr = fmt.Errorf("%w: %v", common.ErrStoreInit, err)
		}
	})
	return s.openErr
}

// Close drains in-flight audit dispatches and closes the connection pool.
func (s *Store) Close() error {
	s.dispatches.Wait()
	return s.db.Close()
}

// AppendAudit writes one immutable audit entry with a fresh time-ordered id
// and the current timestamp.
func (s *Store) AppendAudit(ctx context.Context, operatorID, action, details string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	entry := &models.AuditEntry{
		ID:         common.MakeTimeOrderedID(),
		OperatorID: operatorID,
		Action:     action,
		Details:    details,
		Timestamp:  time.Now().UnixMilli(),
	}
	return s.rm.AuditLog(s.db).Append(ctx, entry)
}

// DispatchAudit appends an audit entry without blocking the caller. Failures
// are swallowed: audit logging must never break a primary operation. The
// write is still durably attempted; its outcome is observable only in the
// debug log.
func (s *Store) DispatchAudit(operatorID, action, details string) {
	s.dispatches.Add(1)
	go func() {
		defer s.dispatches.Done()
		ctx := context.Background()
		if err := s.AppendAudit(ctx, operatorID, action, details); err != nil {
			s.logger.Debug(ctx, "audit dispatch failed", "action", action, "error", err)
		}
	}()
}

// RecentAudit returns up to limit entries for the operator, strictly
// descending by timestamp (ties broken by id). It never fails: on a read
// error the result is simply empty, with the cause in the debug log.
func (s *Store) RecentAudit(ctx context.Context, operatorID string, limit int) []*models.AuditEntry {
	if err := s.Open(ctx); err != nil {
		s.logger.Debug(ctx, "recent audit unavailable", "error", err)
		return []*models.AuditEntry{}
	}
	if limit <= 0 {
		limit = DefaultRecentAuditLimit
	}
	entries, err := s.rm.AuditLog(s.db).SelectRecent(ctx, operatorID, limit)
	if err != nil {
		s.logger.Debug(ctx, "recent audit read failed", "error", err)
		return []*models.AuditEntry{}
	}
	return entries
}

// UpsertInvestigation writes or overwrites the investigation under its id,
// stamping the owning operator and the write time. Once the primary write
// has committed, a completed record additionally gets a best-effort
// completion audit entry.
func (s *Store) UpsertInvestigation(ctx context.Context, rec *models.Investigation, operatorID string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	rec.OperatorID = operatorID
	rec.CreatedAt = time.Now()
	if err := s.rm.Investigations(s.db).Upsert(ctx, rec); err != nil {
		return err
	}
	if rec.Completed() {
		s.DispatchAudit(operatorID, models.AuditAnalysisComplete,
			fmt.Sprintf("%s: %s (confidence %.2f)", rec.FileName, rec.Verdict, rec.Confidence))
	}
	return nil
}

// InvestigationsForOperator returns all investigations owned by the
// operator. Order is not part of the contract. Read failures are reported
// as ErrFetch.
func (s *Store) InvestigationsForOperator(ctx context.Context, operatorID string) ([]*models.Investigation, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	recs, err := s.rm.Investigations(s.db).SelectByOperator(ctx, operatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrFetch, err)
	}
	return recs, nil
}

// DeleteInvestigation removes one record by id. Deleting an absent record
// is a no-op, not an error.
func (s *Store) DeleteInvestigation(ctx context.Context, id string) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	return s.rm.Investigations(s.db).Delete(ctx, id)
}

// PurgeOperatorInvestigations deletes every investigation owned by the
// operator and appends one BATCH_PURGE audit entry recording the count.
// Delete and audit share one transaction, so the recorded count always
// equals the number of rows actually removed in this call.
func (s *Store) PurgeOperatorInvestigations(ctx context.Context, operatorID string) (int64, error) {
	if err := s.Open(ctx); err != nil {
		return 0, err
	}
	var purged int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		n, err := s.rm.Investigations(tx).DeleteByOperator(ctx, operatorID)
		if err != nil {
			return err
		}
		purged = n
		entry := &models.AuditEntry{
			ID:         common.MakeTimeOrderedID(),
			OperatorID: operatorID,
			Action:     models.AuditBatchPurge,
			Details:    fmt.Sprintf("purged %d investigations", n),
			Timestamp:  time.Now().UnixMilli(),
		}
		return s.rm.AuditLog(tx).Append(ctx, entry)
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}

// PutOperator upserts an operator credential record.
func (s *Store) PutOperator(ctx context.Context, op *models.Operator) error {
	if err := s.Open(ctx); err != nil {
		return err
	}
	return s.rm.Operators(s.db).Put(ctx, op)
}

// GetOperator looks up an operator by id. Absence is common.ErrNotFound,
// not a failure.
func (s *Store) GetOperator(ctx context.Context, id string) (*models.Operator, error) {
	if err := s.Open(ctx); err != nil {
		return nil, err
	}
	return s.rm.Operators(s.db).Get(ctx, id)
}
