// service/transfer_service_test.go
package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

func createTestAssessment(t *testing.T, services *Services, projectID, testCaseID, justification string) *model.Assessment {
	t.Helper()
	assessment, err := services.Assessment.CreateAssessment(context.Background(), model.Assessment{
		ProjectID:     projectID,
		TestCaseID:    testCaseID,
		Result:        model.ResultPass,
		Justification: justification,
	}, "tester")
	require.NoError(t, err)
	return assessment
}

func TestExportUnknownFormatAndProject(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, services, "Export Device")

	_, err := services.Transfer.Export(ctx, project.ID, "docx", "tester")
	assert.ErrorIs(t, err, conf_errors.ErrUnsupportedFormat)

	_, err = services.Transfer.Export(ctx, "no-such-project", "json", "tester")
	assert.ErrorIs(t, err, conf_errors.ErrProjectNotFound)
}

func TestJSONExportImportCreatesFreshProject(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, services, "Export Device")
	createTestAssessment(t, services, project.ID, "acm-001", "Access control enforced at login")

	doc, err := services.Transfer.Export(ctx, project.ID, "json", "tester")
	require.NoError(t, err)
	assert.Equal(t, "application/json", doc.ContentType)

	report, err := services.Transfer.Import(ctx, doc.Data, "json", "tester", ImportOptions{})
	require.NoError(t, err)
	assert.True(t, report.ProjectCreated)
	assert.NotEqual(t, project.ID, report.ProjectID)
	assert.Equal(t, 1, report.AssessmentsTotal)
	assert.Equal(t, 1, report.AssessmentsWritten)

	imported, err := services.Project.GetProject(ctx, report.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, "Export Device (imported)", imported.Name)

	// Imported assessments are re-pointed at the new project and re-identified.
	stored, err := services.Assessment.ListByProject(ctx, report.ProjectID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.NotEqual(t, "", stored[0].ID)
	assert.Empty(t, stored[0].EvidenceFiles)

	// The source project is untouched.
	original, err := services.Assessment.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, original, 1)
}

func TestCSVImportSkipDuplicates(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, services, "Export Device")
	createTestAssessment(t, services, project.ID, "acm-001", "Access control enforced at login")

	doc, err := services.Transfer.Export(ctx, project.ID, "csv", "tester")
	require.NoError(t, err)

	// Re-importing the project's own CSV with duplicate skipping writes nothing.
	report, err := services.Transfer.Import(ctx, doc.Data, "csv", "tester", ImportOptions{SkipDuplicates: true})
	require.NoError(t, err)
	assert.False(t, report.ProjectCreated)
	assert.Equal(t, 1, report.AssessmentsTotal)
	assert.Equal(t, 0, report.AssessmentsWritten)
	assert.Equal(t, 1, report.DuplicatesSkipped)
	assert.Contains(t, report.DuplicateSummary, "Found 1 duplicate assessment(s)")

	stored, err := services.Assessment.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)

	// Without skipping, the same CSV appends a content-identical copy.
	report, err = services.Transfer.Import(ctx, doc.Data, "csv", "tester", ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.AssessmentsWritten)

	stored, err = services.Assessment.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestJSONImportSkipDuplicates(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, services, "Export Device")
	createTestAssessment(t, services, project.ID, "acm-001", "Access control enforced at login")

	doc, err := services.Transfer.Export(ctx, project.ID, "json", "tester")
	require.NoError(t, err)

	// Re-importing the project's own JSON export still creates the fresh
	// project, but the content-identical assessment is detected and dropped.
	report, err := services.Transfer.Import(ctx, doc.Data, "json", "tester", ImportOptions{SkipDuplicates: true})
	require.NoError(t, err)
	assert.True(t, report.ProjectCreated)
	assert.Equal(t, 1, report.AssessmentsTotal)
	assert.Equal(t, 0, report.AssessmentsWritten)
	assert.Equal(t, 1, report.DuplicatesSkipped)
	assert.Contains(t, report.DuplicateSummary, "Found 1 duplicate assessment(s)")

	imported, err := services.Assessment.ListByProject(ctx, report.ProjectID)
	require.NoError(t, err)
	assert.Empty(t, imported)

	original, err := services.Assessment.ListByProject(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, original, 1)
}

func TestImportRejectsEmptyPayload(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()

	_, err := services.Transfer.Import(ctx, []byte("garbage"), "json", "tester", ImportOptions{})
	assert.ErrorIs(t, err, conf_errors.ErrInvalidImportFormat)

	_, err = services.Transfer.Import(ctx, []byte("{}"), "json", "tester", ImportOptions{})
	assert.ErrorIs(t, err, conf_errors.ErrInvalidImportFormat)
}

func TestFindDuplicatesService(t *testing.T) {
	services := newTestServices(t)
	ctx := context.Background()
	project := createTestProject(t, services, "Export Device")
	stored := createTestAssessment(t, services, project.ID, "acm-001", "Access control enforced at login")

	incoming := []model.Assessment{
		{ProjectID: project.ID, TestCaseID: stored.TestCaseID, Result: stored.Result, Justification: stored.Justification},
		{ProjectID: project.ID, TestCaseID: "aum-001", Result: model.ResultNA, Justification: "Different content"},
	}

	partition, err := services.Transfer.FindDuplicates(ctx, project.ID, incoming)
	require.NoError(t, err)
	assert.Len(t, partition.Duplicates, 1)
	assert.Len(t, partition.Unique, 1)
}
