package models

import "time"

// Audit action tags.
const (
	AuditRegistration     = "REGISTRATION"
	AuditLogin            = "LOGIN"
	AuditLoginFail        = "LOGIN_FAIL"
	AuditLogout           = "LOGOUT"
	AuditAnalysisStart    = "ANALYSIS_START"
	AuditAnalysisComplete = "ANALYSIS_COMPLETE"
	AuditBatchPurge       = "BATCH_PURGE"
	AuditHTTPRequest      = "HTTP_REQUEST"
)

// AuditEntry is an immutable record of a privileged action. Entries are
// append-only: nothing in the exposed contract updates or deletes a single
// entry, and they only disappear through full-operator purge cascades.
type AuditEntry struct {
	ID         string `json:"id"` // time-ordered, see common.MakeTimeOrderedID
	OperatorID string `json:"operator_id"`
	Action     string `json:"action"`
	Details    string `json:"details"`
	Timestamp  int64  `json:"ts"` // milliseconds since epoch
}

// Time returns the entry timestamp as a time.Time.
func (e *AuditEntry) Time() time.Time {
	return time.UnixMilli(e.Timestamp)
}
