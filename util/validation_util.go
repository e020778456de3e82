// util/validation_util.go

package util

import (
	"fmt"
	"strings"

	"github.com/en18031/conformity/model"
)

type ValidationUtil struct{}

func NewValidationUtil() *ValidationUtil {
	return &ValidationUtil{}
}

func (v *ValidationUtil) ValidateProject(project model.Project) error {
	if strings.TrimSpace(project.Name) == "" {
		return fmt.Errorf("project name cannot be empty")
	}
	if project.Status != "" && !project.Status.IsValid() {
		return fmt.Errorf("project status must be one of draft, active, completed, archived")
	}
	return nil
}

func (v *ValidationUtil) ValidateAssessment(assessment model.Assessment) error {
	if assessment.ProjectID == "" {
		return fmt.Errorf("assessment project ID cannot be empty")
	}
	if assessment.TestCaseID == "" {
		return fmt.Errorf("assessment test case ID cannot be empty")
	}
	if !assessment.Result.IsValid() {
		return fmt.Errorf("assessment result must be one of pass, fail, na")
	}
	if strings.TrimSpace(assessment.Justification) == "" {
		return fmt.Errorf("assessment justification cannot be empty")
	}
	return nil
}

func (v *ValidationUtil) ValidateAsset(asset model.Asset) error {
	if asset.ID == "" {
		return fmt.Errorf("asset ID cannot be empty")
	}
	if strings.TrimSpace(asset.Name) == "" {
		return fmt.Errorf("asset name cannot be empty")
	}
	if asset.Type != "" && asset.Type != model.AssetSecurity && asset.Type != model.AssetNetwork {
		return fmt.Errorf("asset type must be either 'security' or 'network'")
	}
	return nil
}

func (v *ValidationUtil) ValidateEvidenceFile(file model.EvidenceFile) error {
	if file.FileName == "" {
		return fmt.Errorf("evidence file name cannot be empty")
	}
	if file.AssessmentID == "" {
		return fmt.Errorf("evidence assessment ID cannot be empty")
	}
	return nil
}
