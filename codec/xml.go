// codec/xml.go
package codec

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"time"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// xmlCodec emits one <Assessment> element per record under <Assessments>.
// Free-text fields are wrapped in CDATA so operator prose never needs
// entity escaping.
type xmlCodec struct{}

// xmlText renders its value inside a CDATA section. On decode it accepts
// plain character data as well.
type xmlText struct {
	Value string `xml:",cdata"`
}

type xmlExport struct {
	XMLName     xml.Name        `xml:"AssessmentExport"`
	ExportedAt  string          `xml:"ExportedAt"`
	Version     string          `xml:"Version"`
	Project     *xmlProject     `xml:"Project"`
	Assessments []xmlAssessment `xml:"Assessments>Assessment"`
}

type xmlProject struct {
	ID              string  `xml:"ID"`
	Name            xmlText `xml:"Name"`
	Description     xmlText `xml:"Description"`
	ProductName     xmlText `xml:"ProductName"`
	Manufacturer    xmlText `xml:"Manufacturer"`
	ModelReference  string  `xml:"ModelReference"`
	TestStandard    string  `xml:"TestStandard"`
	TestLaboratory  xmlText `xml:"TestLaboratory"`
	ReportReference string  `xml:"ReportReference"`
	Status          string  `xml:"Status"`
}

type xmlAssessment struct {
	ID              string  `xml:"ID"`
	ProjectID       string  `xml:"ProjectID"`
	TestCaseID      string  `xml:"TestCaseID"`
	Result          string  `xml:"Result"`
	Justification   xmlText `xml:"Justification"`
	Comments        xmlText `xml:"Comments"`
	TestPerformedOn xmlText `xml:"TestPerformedOn"`
	TestExecutedBy  xmlText `xml:"TestExecutedBy"`
	AssessedAt      string  `xml:"AssessedAt"`
	AssessedBy      string  `xml:"AssessedBy"`
	Status          string  `xml:"Status"`
	Notes           xmlText `xml:"Notes"`
	Version         int     `xml:"Version"`
}

func (xmlCodec) Format() string { return "xml" }

func (xmlCodec) Export(in ExportInput) (*Document, error) {
	payload := xmlExport{
		ExportedAt: in.ExportedAt.Format(time.RFC3339),
		Version:    ExportVersion,
	}
	if in.Project != nil {
		payload.Project = &xmlProject{
			ID:              in.Project.ID,
			Name:            xmlText{in.Project.Name},
			Description:     xmlText{in.Project.Description},
			ProductName:     xmlText{in.Project.ProductName},
			Manufacturer:    xmlText{in.Project.Manufacturer},
			ModelReference:  in.Project.ModelReference,
			TestStandard:    in.Project.TestStandard,
			TestLaboratory:  xmlText{in.Project.TestLaboratory},
			ReportReference: in.Project.ReportReference,
			Status:          string(in.Project.Status),
		}
	}
	for _, a := range in.Assessments {
		payload.Assessments = append(payload.Assessments, xmlAssessment{
			ID:              a.ID,
			ProjectID:       a.ProjectID,
			TestCaseID:      a.TestCaseID,
			Result:          string(a.Result),
			Justification:   xmlText{a.Justification},
			Comments:        xmlText{a.Comments},
			TestPerformedOn: xmlText{a.TestPerformedOn},
			TestExecutedBy:  xmlText{a.TestExecutedBy},
			AssessedAt:      a.AssessedAt.Format(time.RFC3339),
			AssessedBy:      a.AssessedBy,
			Status:          string(a.Status),
			Notes:           xmlText{a.Notes},
			Version:         a.Version,
		})
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return nil, fmt.Errorf("failed to encode XML export: %w", err)
	}

	return &Document{
		FileName:    exportFileName(in.Project, "xml"),
		ContentType: "application/xml",
		Data:        buf.Bytes(),
	}, nil
}

// Import parses by tag name, first match wins. Missing optional tags decode
// to empty strings; a missing project element is rejected.
func (xmlCodec) Import(raw []byte) (*ImportPayload, error) {
	var payload xmlExport
	if err := xml.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidImportFormat, err)
	}
	if payload.Project == nil {
		return nil, fmt.Errorf("%w: missing Project element", conf_errors.ErrInvalidImportFormat)
	}

	out := &ImportPayload{
		Project: &model.Project{
			ID:              payload.Project.ID,
			Name:            payload.Project.Name.Value,
			Description:     payload.Project.Description.Value,
			ProductName:     payload.Project.ProductName.Value,
			Manufacturer:    payload.Project.Manufacturer.Value,
			ModelReference:  payload.Project.ModelReference,
			TestStandard:    payload.Project.TestStandard,
			TestLaboratory:  payload.Project.TestLaboratory.Value,
			ReportReference: payload.Project.ReportReference,
			Status:          model.ProjectStatus(payload.Project.Status),
		},
	}
	for _, a := range payload.Assessments {
		assessedAt, _ := time.Parse(time.RFC3339, a.AssessedAt)
		out.Assessments = append(out.Assessments, model.Assessment{
			ID:              a.ID,
			ProjectID:       a.ProjectID,
			TestCaseID:      a.TestCaseID,
			Result:          model.Result(a.Result),
			Justification:   a.Justification.Value,
			Comments:        a.Comments.Value,
			TestPerformedOn: a.TestPerformedOn.Value,
			TestExecutedBy:  a.TestExecutedBy.Value,
			AssessedAt:      assessedAt,
			AssessedBy:      a.AssessedBy,
			Status:          model.AssessmentStatus(a.Status),
			Notes:           a.Notes.Value,
			Version:         a.Version,
		})
	}
	return out, nil
}
