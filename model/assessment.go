// model/assessment.go
package model

import (
	"time"
)

// Result is the recorded outcome of a single assessment or test step.
type Result string

const (
	ResultPass Result = "pass"
	ResultFail Result = "fail"
	ResultNA   Result = "na"
)

func (r Result) IsValid() bool {
	switch r {
	case ResultPass, ResultFail, ResultNA:
		return true
	}
	return false
}

type AssessmentStatus string

const (
	AssessmentDraft     AssessmentStatus = "draft"
	AssessmentCompleted AssessmentStatus = "completed"
	AssessmentReviewed  AssessmentStatus = "reviewed"
)

// Assessment is the persisted record of one test case executed against a
// project. Conceptual assessments carry an empty TestStepResults list and a
// synthesized multi-line justification (one line per assessed asset).
type Assessment struct {
	ID              string           `json:"id"`
	ProjectID       string           `json:"project_id"`
	TestCaseID      string           `json:"test_case_id" binding:"required"`
	Result          Result           `json:"result"`
	Justification   string           `json:"justification"`
	Comments        string           `json:"comments,omitempty"`
	TestPerformedOn string           `json:"test_performed_on"`
	TestExecutedBy  string           `json:"test_executed_by"`
	EvidenceFiles   []string         `json:"evidence_files"`
	TestStepResults []TestStepResult `json:"test_step_results"`
	AssessedAt      time.Time        `json:"assessed_at"`
	AssessedBy      string           `json:"assessed_by"`
	Version         int              `json:"version"`
	Status          AssessmentStatus `json:"status"`
	ReviewedBy      string           `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time       `json:"reviewed_at,omitempty"`
	Notes           string           `json:"notes,omitempty"`
}

// TestStepResult records the outcome of one procedural test step. Only the
// step-based assessment flow populates these.
type TestStepResult struct {
	TestStepID   string   `json:"test_step_id"`
	Result       Result   `json:"result"`
	ActualResult string   `json:"actual_result"`
	Screenshots  []string `json:"screenshots"`
	Notes        string   `json:"notes,omitempty"`
}

type AssessmentSearchCriteria struct {
	ProjectID  string           `json:"project_id,omitempty"`
	TestCaseID string           `json:"test_case_id,omitempty"`
	Result     Result           `json:"result,omitempty"`
	Status     AssessmentStatus `json:"status,omitempty"`
}
