// model/testcase.go
package model

type AssessmentType string

const (
	TypeConceptual             AssessmentType = "conceptual"
	TypeFunctionalCompleteness AssessmentType = "functional_completeness"
	TypeFunctionalSufficiency  AssessmentType = "functional_sufficiency"
)

// TestCase is one entry of the fixed EN 18031 test-case catalog. The catalog
// is static and loaded once at startup; test cases are never mutated.
type TestCase struct {
	ID              string         `json:"id" yaml:"id"`
	Mechanism       string         `json:"mechanism" yaml:"mechanism"` // e.g. "ACM", "AUM"
	MechanismNumber int            `json:"mechanism_number" yaml:"mechanismNumber"`
	AssessmentType  AssessmentType `json:"assessment_type" yaml:"assessmentType"`
	Title           string         `json:"title" yaml:"title"`
	Objective       string         `json:"objective" yaml:"objective"`
	Prerequisites   string         `json:"prerequisites" yaml:"prerequisites"`
	TestProcedures  string         `json:"test_procedures" yaml:"testProcedures"`
	AssessmentUnits string         `json:"assessment_units" yaml:"assessmentUnits"`
	ResultRationale string         `json:"result_rationale" yaml:"resultRationale"`
	Source          string         `json:"source" yaml:"source"` // "EN18031-1" or "EN18031-2"
	Section         string         `json:"section" yaml:"section"`
	Order           int            `json:"order" yaml:"order"`
	TestSteps       []TestStep     `json:"test_steps" yaml:"testSteps"`
}

type TestStep struct {
	ID               string `json:"id" yaml:"id"`
	TestCaseID       string `json:"test_case_id" yaml:"testCaseId"`
	StepNumber       int    `json:"step_number" yaml:"stepNumber"`
	AssetID          string `json:"asset_id,omitempty" yaml:"assetId,omitempty"`
	TestingProcedure string `json:"testing_procedure" yaml:"testingProcedure"`
	ExpectedResult   string `json:"expected_result,omitempty" yaml:"expectedResult,omitempty"`
	Order            int    `json:"order" yaml:"order"`
}
