// codec/csv_test.go
package codec

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

func TestCSVExportShape(t *testing.T) {
	in := sampleExportInput()

	doc, err := csvCodec{}.Export(in)
	require.NoError(t, err)
	assert.Equal(t, "smart_thermostat_x200-export.csv", doc.FileName)
	assert.Equal(t, "text/csv", doc.ContentType)

	records, err := csv.NewReader(strings.NewReader(string(doc.Data))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, "assess-1", records[1][0])
	assert.Equal(t, "ev-1;ev-2", records[1][12])
}

func TestCSVRoundTrip(t *testing.T) {
	in := sampleExportInput()
	in.Assessments[0].Justification = `Contains "quotes", commas, and
a line break`

	doc, err := csvCodec{}.Export(in)
	require.NoError(t, err)

	payload, err := csvCodec{}.Import(doc.Data)
	require.NoError(t, err)
	require.Len(t, payload.Assessments, 2)

	got := payload.Assessments[0]
	want := in.Assessments[0]
	assert.Equal(t, want.ID, got.ID)
	assert.Equal(t, want.ProjectID, got.ProjectID)
	assert.Equal(t, want.TestCaseID, got.TestCaseID)
	assert.Equal(t, want.Result, got.Result)
	assert.Equal(t, want.Justification, got.Justification)
	assert.Equal(t, want.Comments, got.Comments)
	assert.True(t, want.AssessedAt.Equal(got.AssessedAt))
	assert.Equal(t, want.Status, got.Status)
	assert.Equal(t, want.EvidenceFiles, got.EvidenceFiles)
	assert.Equal(t, want.Version, got.Version)
}

func TestCSVImportSkipsShortRows(t *testing.T) {
	doc, err := csvCodec{}.Export(sampleExportInput())
	require.NoError(t, err)

	// Append a hand-edited row with too few columns.
	raw := string(doc.Data) + "only,three,columns\n"

	payload, err := csvCodec{}.Import([]byte(raw))
	require.NoError(t, err)
	assert.Len(t, payload.Assessments, 2)
}

func TestCSVImportRejectsBadHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty file", ""},
		{"wrong column count", "A,B,C\n"},
		{"renamed column", strings.Replace(strings.Join(csvHeader, ","), "Result", "Outcome", 1) + "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := csvCodec{}.Import([]byte(tt.raw))
			assert.ErrorIs(t, err, conf_errors.ErrInvalidImportFormat)
		})
	}
}

func TestCSVImportEmptyEvidenceColumn(t *testing.T) {
	in := sampleExportInput()
	in.Assessments = []model.Assessment{{ID: "assess-1", ProjectID: "proj-1", TestCaseID: "acm-001", Result: model.ResultPass}}

	doc, err := csvCodec{}.Export(in)
	require.NoError(t, err)

	payload, err := csvCodec{}.Import(doc.Data)
	require.NoError(t, err)
	require.Len(t, payload.Assessments, 1)
	assert.Nil(t, payload.Assessments[0].EvidenceFiles)
}
