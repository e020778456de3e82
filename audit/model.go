// audit/model.go
package audit

import (
	"encoding/json"
	"time"
)

// Action values recorded in the audit trail.
const (
	ActionProjectCreated    = "project_created"
	ActionProjectUpdated    = "project_updated"
	ActionProjectDeleted    = "project_deleted"
	ActionAssessmentCreated = "assessment_created"
	ActionAssessmentUpdated = "assessment_updated"
	ActionAssessmentDeleted = "assessment_deleted"
	ActionEvidenceUploaded  = "evidence_uploaded"
	ActionEvidenceDeleted   = "evidence_deleted"
	ActionProjectExported   = "project_exported"
	ActionProjectImported   = "project_imported"
)

type AuditLog struct {
	Timestamp     time.Time       `json:"timestamp"`
	UserID        string          `json:"user_id"`
	Action        string          `json:"action"`
	ResourceType  string          `json:"resource_type"`
	ResourceID    string          `json:"resource_id"`
	ProjectID     string          `json:"project_id,omitempty"`
	ChangeDetails json.RawMessage `json:"change_details,omitempty"`
}
