// codec/codec.go
package codec

import (
	"fmt"
	"strings"
	"time"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// ExportVersion is stamped into every export payload.
const ExportVersion = "1.0.0"

// ExportInput is everything a codec may draw on when rendering a project's
// assessment data.
type ExportInput struct {
	Project       *model.Project
	Assessments   []model.Assessment
	EvidenceFiles []model.EvidenceFile
	TestCases     []*model.TestCase
	ExportedAt    time.Time
}

// Document is a rendered export ready for download by the caller. The
// service never writes files itself; delivering Data is the HTTP layer's
// concern.
type Document struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ImportPayload is the parsed object graph of an import file. JSON imports
// may carry a single project or a project list; CSV imports carry
// assessments only.
type ImportPayload struct {
	Project       *model.Project
	Projects      []model.Project
	Assessments   []model.Assessment
	EvidenceFiles []model.EvidenceFile
}

// Codec renders one export format. Formats that also support import
// additionally implement Importer.
type Codec interface {
	Format() string
	Export(in ExportInput) (*Document, error)
}

// Importer parses raw file content into an ImportPayload. Malformed or
// structurally incomplete input is rejected with ErrInvalidImportFormat;
// nothing partially valid is ever returned.
type Importer interface {
	Import(raw []byte) (*ImportPayload, error)
}

var codecs = map[string]Codec{
	"json":     jsonCodec{},
	"csv":      csvCodec{},
	"xml":      xmlCodec{},
	"markdown": markdownCodec{},
	"pdf":      pdfCodec{},
}

// For returns the codec registered for a format tag.
func For(format string) (Codec, error) {
	c, ok := codecs[strings.ToLower(format)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", conf_errors.ErrUnsupportedFormat, format)
	}
	return c, nil
}

// ImporterFor returns the importer for a format tag. Report-only formats
// (markdown, pdf) have no importer.
func ImporterFor(format string) (Importer, error) {
	c, err := For(format)
	if err != nil {
		return nil, err
	}
	imp, ok := c.(Importer)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not support import", conf_errors.ErrUnsupportedFormat, format)
	}
	return imp, nil
}

// Formats lists the registered format tags.
func Formats() []string {
	out := make([]string, 0, len(codecs))
	for f := range codecs {
		out = append(out, f)
	}
	return out
}

// exportFileName builds `<project-slug>-export.<ext>` the way the reference
// tooling names downloads; reportFileName does the same for rendered reports.
func exportFileName(project *model.Project, ext string) string {
	return projectSlug(project) + "-export." + ext
}

func reportFileName(project *model.Project, ext string) string {
	return projectSlug(project) + "-report." + ext
}

func projectSlug(project *model.Project) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, project.Name)
}
