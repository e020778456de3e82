// model/project.go
package model

import (
	"time"
)

type ProjectStatus string

const (
	ProjectDraft    ProjectStatus = "draft"
	ProjectActive   ProjectStatus = "active"
	ProjectComplete ProjectStatus = "completed"
	ProjectArchived ProjectStatus = "archived"
)

func (s ProjectStatus) IsValid() bool {
	switch s {
	case ProjectDraft, ProjectActive, ProjectComplete, ProjectArchived:
		return true
	}
	return false
}

// Project represents one piece of radio equipment under test.
type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name" binding:"required"`
	Description     string        `json:"description,omitempty"`
	ProductName     string        `json:"product_name"`
	Manufacturer    string        `json:"manufacturer"`
	ModelReference  string        `json:"model_reference"`
	TestStandard    string        `json:"test_standard"` // "EN 18031-1" or "EN 18031-2"
	TestLaboratory  string        `json:"test_laboratory"`
	ReportReference string        `json:"report_reference"`
	Assignees       []string      `json:"assignees"`
	Status          ProjectStatus `json:"status"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
	CreatedBy       string        `json:"created_by"`
	Version         int           `json:"version"`
}

type ProjectSearchCriteria struct {
	Name         string        `json:"name,omitempty"`
	Status       ProjectStatus `json:"status,omitempty"`
	Manufacturer string        `json:"manufacturer,omitempty"`
	TestStandard string        `json:"test_standard,omitempty"`
}

// ProjectProgress is a computed snapshot of how far a project's catalog
// of test cases has been assessed.
type ProjectProgress struct {
	ProjectID      string              `json:"project_id"`
	Overview       ProgressCounts      `json:"overview"`
	ByMechanism    []MechanismProgress `json:"by_mechanism"`
	CompletionRate int                 `json:"completion_rate"`
	ComputedAt     time.Time           `json:"computed_at"`
}

type ProgressCounts struct {
	Total         int `json:"total"`
	Completed     int `json:"completed"`
	Passed        int `json:"passed"`
	Failed        int `json:"failed"`
	NotApplicable int `json:"not_applicable"`
	Pending       int `json:"pending"`
}

type MechanismProgress struct {
	Mechanism     string `json:"mechanism"`
	Total         int    `json:"total"`
	Completed     int    `json:"completed"`
	Passed        int    `json:"passed"`
	Failed        int    `json:"failed"`
	NotApplicable int    `json:"not_applicable"`
}
