package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/veritaslab/veritas/internal/server/models"
	"github.com/veritaslab/veritas/internal/server/uplink"
)

// Analyzer is the slice of the uplink client the analysis service needs.
type Analyzer interface {
	Analyze(ctx context.Context, req uplink.Request) (*models.Verdict, error)
}

// InvestigationStore is the slice of the Store the analysis service needs.
type InvestigationStore interface {
	UpsertInvestigation(ctx context.Context, rec *models.Investigation, operatorID string) error
	InvestigationsForOperator(ctx context.Context, operatorID string) ([]*models.Investigation, error)
	DeleteInvestigation(ctx context.Context, id string) error
	PurgeOperatorInvestigations(ctx context.Context, operatorID string) (int64, error)
	DispatchAudit(operatorID, action, details string)
}

// Submission describes one analysis request from an operator: either a URL
// or an uploaded evidence key, plus media metadata for the engine.
type Submission struct {
	FileName    string `json:"file_name"`
	MediaType   string `json:"media_type"`
	URL         string `json:"url,omitempty"`
	EvidenceKey string `json:"evidence_key,omitempty"`
	ContentType string `json:"content_type,omitempty"`
}

// AnalysisService runs the investigation lifecycle: persist an in-progress
// record, delegate the actual analysis to the uplink engine, persist the
// outcome. No forensic work happens here.
type AnalysisService struct {
	store  InvestigationStore
	engine Analyzer
}

// NewAnalysisService constructs an AnalysisService.
func NewAnalysisService(store InvestigationStore, engine Analyzer) *AnalysisService {
	return &AnalysisService{store: store, engine: engine}
}

// Submit persists a new in-progress investigation, sends the submission to
// the engine, and persists the outcome. On engine failure the investigation
// is kept with a failed status and the engine error is returned so the
// caller can map it to remediation guidance.
func (s *AnalysisService) Submit(ctx context.Context, operatorID string, sub Submission) (*models.Investigation, error) {
	rec := &models.Investigation{
		ID:        uuid.NewString(),
		FileName:  sub.FileName,
		MediaType: sub.MediaType,
		Status:    models.InvestigationAnalyzing,
	}
	if err := s.store.UpsertInvestigation(ctx, rec, operatorID); err != nil {
		return nil, err
	}
	s.store.DispatchAudit(operatorID, models.AuditAnalysisStart,
		fmt.Sprintf("%s (%s)", sub.FileName, sub.MediaType))

	verdict, err := s.engine.Analyze(ctx, uplink.Request{
		MediaType:   sub.MediaType,
		URL:         sub.URL,
		EvidenceKey: sub.EvidenceKey,
		ContentType: sub.ContentType,
	})
	if err != nil {
		rec.Status = models.InvestigationFailed
		// Best effort: the engine error is what the caller needs to see.
		_ = s.store.UpsertInvestigation(ctx, rec, operatorID)
		return nil, err
	}

	payload, err := json.Marshal(verdict)
	if err != nil {
		return nil, fmt.Errorf("encoding verdict: %w", err)
	}
	rec.Status = models.InvestigationComplete
	rec.Verdict = verdict.Verdict
	rec.Confidence = verdict.Confidence
	rec.Payload = payload

	// The completion audit entry is a side effect of this upsert.
	if err := s.store.UpsertInvestigation(ctx, rec, operatorID); err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns all investigations owned by the operator.
func (s *AnalysisService) List(ctx context.Context, operatorID string) ([]*models.Investigation, error) {
	return s.store.InvestigationsForOperator(ctx, operatorID)
}

// Delete removes one investigation by id; absent ids are a no-op.
func (s *AnalysisService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteInvestigation(ctx, id)
}

// Purge removes every investigation owned by the operator and returns the
// count removed.
func (s *AnalysisService) Purge(ctx context.Context, operatorID string) (int64, error) {
	return s.store.PurgeOperatorInvestigations(ctx, operatorID)
}
