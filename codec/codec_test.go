// codec/codec_test.go
package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

func sampleProject() *model.Project {
	return &model.Project{
		ID:              "proj-1",
		Name:            "Smart Thermostat X200",
		Description:     "Connected thermostat with WLAN radio",
		ProductName:     "Thermostat X200",
		Manufacturer:    "Acme Devices GmbH",
		ModelReference:  "X200-EU",
		TestStandard:    "EN 18031-1",
		TestLaboratory:  "RF Lab Munich",
		ReportReference: "RPT-2026-0042",
		Status:          model.ProjectActive,
		CreatedAt:       time.Date(2026, 1, 5, 8, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
		CreatedBy:       "alice",
		Version:         3,
	}
}

func sampleExportInput() ExportInput {
	return ExportInput{
		Project: sampleProject(),
		Assessments: []model.Assessment{
			{
				ID:              "assess-1",
				ProjectID:       "proj-1",
				TestCaseID:      "acm-001",
				Result:          model.ResultPass,
				Justification:   "- SA-001 (Admin credentials): PASS (DT.ACM-1.DN-4) - Access control enforced at login",
				Comments:        "Conceptual assessment of 1 asset using the decision tree methodology.",
				TestPerformedOn: "DUT rev B",
				TestExecutedBy:  "lab-7",
				AssessedAt:      time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
				AssessedBy:      "alice",
				Status:          model.AssessmentCompleted,
				EvidenceFiles:   []string{"ev-1", "ev-2"},
				Version:         1,
			},
			{
				ID:         "assess-2",
				ProjectID:  "proj-1",
				TestCaseID: "aum-001",
				Result:     model.ResultNA,
				Justification: "- NA-001 (Diagnostics port): NOT APPLICABLE (DT.AUM-1.DN-1) - " +
					"Port disabled in production builds",
				AssessedAt: time.Date(2026, 3, 15, 10, 30, 0, 0, time.UTC),
				AssessedBy: "bob",
				Status:     model.AssessmentCompleted,
				Version:    2,
			},
		},
		EvidenceFiles: []model.EvidenceFile{
			{ID: "ev-1", AssessmentID: "assess-1", FileName: "login-screenshot.png", FileType: model.FileImage},
		},
		ExportedAt: time.Date(2026, 3, 20, 12, 0, 0, 0, time.UTC),
	}
}

func TestForKnownAndUnknownFormats(t *testing.T) {
	for _, format := range []string{"json", "csv", "xml", "markdown", "pdf", "JSON"} {
		c, err := For(format)
		require.NoError(t, err, format)
		assert.NotNil(t, c)
	}

	_, err := For("docx")
	assert.ErrorIs(t, err, conf_errors.ErrUnsupportedFormat)
}

func TestImporterForRejectsReportFormats(t *testing.T) {
	for _, format := range []string{"json", "csv", "xml"} {
		imp, err := ImporterFor(format)
		require.NoError(t, err, format)
		assert.NotNil(t, imp)
	}

	for _, format := range []string{"markdown", "pdf"} {
		_, err := ImporterFor(format)
		assert.ErrorIs(t, err, conf_errors.ErrUnsupportedFormat, format)
	}
}

func TestFileNameSlugging(t *testing.T) {
	p := sampleProject()
	assert.Equal(t, "smart_thermostat_x200-export.json", exportFileName(p, "json"))
	assert.Equal(t, "smart_thermostat_x200-report.pdf", reportFileName(p, "pdf"))
}

func TestSummarize(t *testing.T) {
	s := summarize(sampleExportInput().Assessments)
	assert.Equal(t, 2, s.Total)
	assert.Equal(t, 1, s.Passed)
	assert.Equal(t, 0, s.Failed)
	assert.Equal(t, 1, s.NotApplicable)
	assert.Equal(t, 100, s.CompletionRate)

	empty := summarize(nil)
	assert.Equal(t, 0, empty.Total)
	assert.Equal(t, 0, empty.CompletionRate)
}
