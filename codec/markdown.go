// codec/markdown.go
package codec

import (
	"fmt"
	"strings"
	"time"
)

// markdownCodec renders the human-readable assessment report. Export only.
type markdownCodec struct{}

func (markdownCodec) Format() string { return "markdown" }

func (markdownCodec) Export(in ExportInput) (*Document, error) {
	p := in.Project
	s := summarize(in.Assessments)

	var b strings.Builder
	b.WriteString("# EN 18031 Assessment Report\n\n")

	b.WriteString("## Project Information\n")
	fmt.Fprintf(&b, "- **Project Name:** %s\n", p.Name)
	fmt.Fprintf(&b, "- **Product Name:** %s\n", p.ProductName)
	fmt.Fprintf(&b, "- **Manufacturer:** %s\n", p.Manufacturer)
	fmt.Fprintf(&b, "- **Model Reference:** %s\n", p.ModelReference)
	fmt.Fprintf(&b, "- **Test Standard:** %s\n", p.TestStandard)
	fmt.Fprintf(&b, "- **Test Laboratory:** %s\n", p.TestLaboratory)
	fmt.Fprintf(&b, "- **Report Reference:** %s\n", p.ReportReference)
	fmt.Fprintf(&b, "- **Created:** %s\n", p.CreatedAt.Format("2006-01-02"))
	fmt.Fprintf(&b, "- **Last Updated:** %s\n\n", p.UpdatedAt.Format("2006-01-02"))

	b.WriteString("## Assessment Summary\n")
	fmt.Fprintf(&b, "- **Total Assessments:** %d\n", s.Total)
	fmt.Fprintf(&b, "- **Passed:** %d\n", s.Passed)
	fmt.Fprintf(&b, "- **Failed:** %d\n", s.Failed)
	fmt.Fprintf(&b, "- **Not Applicable:** %d\n", s.NotApplicable)
	fmt.Fprintf(&b, "- **Completion Rate:** %d%%\n\n", s.CompletionRate)

	b.WriteString("## Assessment Details\n")
	for _, a := range in.Assessments {
		fmt.Fprintf(&b, "\n### %s\n", testCaseTitle(in.TestCases, a.TestCaseID))
		fmt.Fprintf(&b, "- **Test Case:** %s\n", a.TestCaseID)
		fmt.Fprintf(&b, "- **Result:** %s\n", strings.ToUpper(string(a.Result)))
		fmt.Fprintf(&b, "- **Justification:** %s\n", a.Justification)
		fmt.Fprintf(&b, "- **Test Performed On:** %s\n", a.TestPerformedOn)
		fmt.Fprintf(&b, "- **Test Executed By:** %s\n", a.TestExecutedBy)
		fmt.Fprintf(&b, "- **Assessed Date:** %s\n", a.AssessedAt.Format("2006-01-02"))
		if a.Comments != "" {
			fmt.Fprintf(&b, "- **Comments:** %s\n", a.Comments)
		}
	}

	fmt.Fprintf(&b, "\n---\n*Report generated on %s*\n", in.ExportedAt.Format(time.RFC1123))

	return &Document{
		FileName:    reportFileName(p, "md"),
		ContentType: "text/markdown",
		Data:        []byte(b.String()),
	}, nil
}
