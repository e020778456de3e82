// codec/csv.go
package codec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// csvCodec flattens assessments into one spreadsheet row each. Nested test
// step results are reduced to a count; the JSON format is the one to use
// when steps must survive the round trip.
type csvCodec struct{}

var csvHeader = []string{
	"Assessment ID",
	"Project ID",
	"Test Case ID",
	"Result",
	"Justification",
	"Comments",
	"Test Performed On",
	"Test Executed By",
	"Assessed At",
	"Assessed By",
	"Status",
	"Notes",
	"Evidence Files",
	"Test Step Count",
	"Version",
}

func (csvCodec) Format() string { return "csv" }

func (csvCodec) Export(in ExportInput) (*Document, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, a := range in.Assessments {
		row := []string{
			a.ID,
			a.ProjectID,
			a.TestCaseID,
			string(a.Result),
			a.Justification,
			a.Comments,
			a.TestPerformedOn,
			a.TestExecutedBy,
			a.AssessedAt.Format(time.RFC3339),
			a.AssessedBy,
			string(a.Status),
			a.Notes,
			strings.Join(a.EvidenceFiles, ";"),
			strconv.Itoa(len(a.TestStepResults)),
			strconv.Itoa(a.Version),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	return &Document{
		FileName:    exportFileName(in.Project, "csv"),
		ContentType: "text/csv",
		Data:        buf.Bytes(),
	}, nil
}

// Import inverts Export. The header row must match the exported column set;
// data rows with a diverging column count are skipped silently, a deliberate
// tolerance for hand-edited spreadsheets.
func (csvCodec) Import(raw []byte) (*ImportPayload, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidImportFormat, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty CSV file", conf_errors.ErrInvalidImportFormat)
	}

	header := records[0]
	if len(header) != len(csvHeader) {
		return nil, fmt.Errorf("%w: expected %d columns, got %d", conf_errors.ErrInvalidImportFormat, len(csvHeader), len(header))
	}
	for i, name := range csvHeader {
		if !strings.EqualFold(strings.TrimSpace(header[i]), name) {
			return nil, fmt.Errorf("%w: unexpected column %q at position %d", conf_errors.ErrInvalidImportFormat, header[i], i+1)
		}
	}

	payload := &ImportPayload{}
	for _, row := range records[1:] {
		if len(row) != len(csvHeader) {
			continue
		}

		assessedAt, _ := time.Parse(time.RFC3339, row[8])
		stepCount, _ := strconv.Atoi(row[13])
		version, _ := strconv.Atoi(row[14])

		a := model.Assessment{
			ID:              row[0],
			ProjectID:       row[1],
			TestCaseID:      row[2],
			Result:          model.Result(row[3]),
			Justification:   row[4],
			Comments:        row[5],
			TestPerformedOn: row[6],
			TestExecutedBy:  row[7],
			AssessedAt:      assessedAt,
			AssessedBy:      row[9],
			Status:          model.AssessmentStatus(row[10]),
			Notes:           row[11],
			TestStepResults: make([]model.TestStepResult, 0, stepCount),
			Version:         version,
		}
		if row[12] != "" {
			a.EvidenceFiles = strings.Split(row[12], ";")
		}
		payload.Assessments = append(payload.Assessments, a)
	}

	return payload, nil
}
