// codec/json.go
package codec

import (
	"encoding/json"
	"fmt"
	"time"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// jsonCodec round-trips the full object graph. It is the only format with
// complete fidelity; every field of every record survives export + import.
type jsonCodec struct{}

type jsonExport struct {
	Project       *model.Project       `json:"project,omitempty"`
	Projects      []model.Project      `json:"projects,omitempty"`
	Assessments   []model.Assessment   `json:"assessments"`
	EvidenceFiles []model.EvidenceFile `json:"evidenceFiles"`
	ExportedAt    time.Time            `json:"exportedAt"`
	Version       string               `json:"version"`
}

func (jsonCodec) Format() string { return "json" }

func (jsonCodec) Export(in ExportInput) (*Document, error) {
	payload := jsonExport{
		Project:       in.Project,
		Assessments:   in.Assessments,
		EvidenceFiles: in.EvidenceFiles,
		ExportedAt:    in.ExportedAt,
		Version:       ExportVersion,
	}
	if payload.Assessments == nil {
		payload.Assessments = []model.Assessment{}
	}
	if payload.EvidenceFiles == nil {
		payload.EvidenceFiles = []model.EvidenceFile{}
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export payload: %w", err)
	}
	return &Document{
		FileName:    exportFileName(in.Project, "json"),
		ContentType: "application/json",
		Data:        data,
	}, nil
}

// Import validates the structural shape before decoding: a project or
// projects key must be present, and assessments / evidenceFiles must be
// arrays when present.
func (jsonCodec) Import(raw []byte) (*ImportPayload, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object: %v", conf_errors.ErrInvalidImportFormat, err)
	}

	_, hasProject := probe["project"]
	_, hasProjects := probe["projects"]
	if !hasProject && !hasProjects {
		return nil, fmt.Errorf("%w: missing project or projects data", conf_errors.ErrInvalidImportFormat)
	}
	for _, key := range []string{"projects", "assessments", "evidenceFiles"} {
		rawField, ok := probe[key]
		if !ok {
			continue
		}
		var arr []json.RawMessage
		if err := json.Unmarshal(rawField, &arr); err != nil {
			return nil, fmt.Errorf("%w: %s is not an array", conf_errors.ErrInvalidImportFormat, key)
		}
	}

	var payload jsonExport
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidImportFormat, err)
	}

	return &ImportPayload{
		Project:       payload.Project,
		Projects:      payload.Projects,
		Assessments:   payload.Assessments,
		EvidenceFiles: payload.EvidenceFiles,
	}, nil
}
