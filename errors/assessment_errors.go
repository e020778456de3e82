// errors/assessment_errors.go
package errors

import "errors"

var (
	ErrAssessmentNotFound    = errors.New("assessment not found")
	ErrAssessmentConflict    = errors.New("assessment conflict")
	ErrInvalidAssessmentData = errors.New("invalid assessment data")
	ErrEvidenceNotFound      = errors.New("evidence file not found")

	// ErrIncompleteAssessment marks a commit attempt with a required field
	// still missing. Callers surface it as a blocked action, not a failure.
	ErrIncompleteAssessment = errors.New("assessment incomplete: required field missing")
)
