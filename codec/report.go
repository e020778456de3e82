// codec/report.go
package codec

import (
	"math"

	"github.com/en18031/conformity/model"
)

// reportSummary carries the aggregate counts shared by the markdown and PDF
// reports.
type reportSummary struct {
	Total          int
	Passed         int
	Failed         int
	NotApplicable  int
	CompletionRate int
}

func summarize(assessments []model.Assessment) reportSummary {
	s := reportSummary{Total: len(assessments)}
	for _, a := range assessments {
		switch a.Result {
		case model.ResultPass:
			s.Passed++
		case model.ResultFail:
			s.Failed++
		case model.ResultNA:
			s.NotApplicable++
		}
	}
	if s.Total > 0 {
		s.CompletionRate = int(math.Round(float64(s.Passed+s.Failed+s.NotApplicable) / float64(s.Total) * 100))
	}
	return s
}

// testCaseTitle resolves a test case id to its catalog title, falling back
// to the raw id for records imported against an unknown catalog.
func testCaseTitle(testCases []*model.TestCase, id string) string {
	for _, tc := range testCases {
		if tc.ID == id {
			return tc.Title
		}
	}
	return id
}
