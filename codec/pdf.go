// codec/pdf.go
package codec

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// pdfCodec renders the same report as the markdown codec, paginated. A page
// break is inserted whenever the running cursor would cross pageBreakY; the
// footer stamps the generation time and `page N of M` once total page count
// is known.
type pdfCodec struct{}

const (
	pdfLineHeight = 6.0
	pageBreakY    = 270.0 // A4 portrait, content area in mm
)

func (pdfCodec) Format() string { return "pdf" }

func (pdfCodec) Export(in ExportInput) (*Document, error) {
	p := in.Project
	s := summarize(in.Assessments)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "I", 8)
		footer := fmt.Sprintf("Generated %s - page %d of {nb}", in.ExportedAt.Format(time.RFC1123), pdf.PageNo())
		pdf.CellFormat(0, 10, footer, "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	heading := func(text string, size float64) {
		breakIfNeeded(pdf, pdfLineHeight*2)
		pdf.SetFont("Helvetica", "B", size)
		pdf.CellFormat(0, pdfLineHeight+2, text, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}
	line := func(label, value string) {
		breakIfNeeded(pdf, pdfLineHeight)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(45, pdfLineHeight, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, pdfLineHeight, value, "", "L", false)
	}

	heading("EN 18031 Assessment Report", 16)

	heading("Project Information", 12)
	line("Project Name:", p.Name)
	line("Product Name:", p.ProductName)
	line("Manufacturer:", p.Manufacturer)
	line("Model Reference:", p.ModelReference)
	line("Test Standard:", p.TestStandard)
	line("Test Laboratory:", p.TestLaboratory)
	line("Report Reference:", p.ReportReference)

	heading("Assessment Summary", 12)
	line("Total Assessments:", fmt.Sprintf("%d", s.Total))
	line("Passed:", fmt.Sprintf("%d", s.Passed))
	line("Failed:", fmt.Sprintf("%d", s.Failed))
	line("Not Applicable:", fmt.Sprintf("%d", s.NotApplicable))
	line("Completion Rate:", fmt.Sprintf("%d%%", s.CompletionRate))

	heading("Assessment Details", 12)
	for _, a := range in.Assessments {
		breakIfNeeded(pdf, pdfLineHeight*6)
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(0, pdfLineHeight+1, testCaseTitle(in.TestCases, a.TestCaseID), "", 1, "L", false, 0, "")
		line("Test Case:", a.TestCaseID)
		line("Result:", strings.ToUpper(string(a.Result)))
		line("Justification:", a.Justification)
		line("Test Performed On:", a.TestPerformedOn)
		line("Test Executed By:", a.TestExecutedBy)
		line("Assessed Date:", a.AssessedAt.Format("2006-01-02"))
		if a.Comments != "" {
			line("Comments:", a.Comments)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF report: %w", err)
	}

	return &Document{
		FileName:    reportFileName(p, "pdf"),
		ContentType: "application/pdf",
		Data:        buf.Bytes(),
	}, nil
}

// breakIfNeeded starts a new page when fewer than needed millimeters remain
// before the footer area.
func breakIfNeeded(pdf *gofpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pageBreakY {
		pdf.AddPage()
	}
}

var _ Codec = pdfCodec{}
