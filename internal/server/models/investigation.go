package models

import (
	"encoding/json"
	"time"
)

// Investigation statuses.
const (
	InvestigationPending   = "pending"
	InvestigationAnalyzing = "analyzing"
	InvestigationComplete  = "complete"
	InvestigationFailed    = "failed"
)

// Investigation is one persisted analysis run and its outcome, owned by an
// operator. Payload carries the full verdict structure returned by the
// analysis engine; Verdict and Confidence are lifted out for dashboard
// queries once the run completes.
type Investigation struct {
	ID         string          `json:"id"`
	OperatorID string          `json:"operator_id"`
	FileName   string          `json:"file_name"`
	MediaType  string          `json:"media_type"`
	Status     string          `json:"status"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	Verdict    string          `json:"verdict"`
	Confidence float64         `json:"confidence"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Completed reports whether the investigation represents a finished analysis
// carrying a result, as opposed to one still in flight or failed.
func (i *Investigation) Completed() bool {
	return i.Status == InvestigationComplete && i.Verdict != ""
}
