// engine/aggregate.go
package engine

import (
	"fmt"
	"strings"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// Aggregate folds per-asset verdicts into one project-level verdict: any
// FAIL fails the project; otherwise all-NOT-APPLICABLE stays NOT APPLICABLE;
// otherwise PASS. A mix of PASS and NOT APPLICABLE deliberately yields PASS,
// matching the EN 18031 assessment convention in use.
func Aggregate(results []model.AssetResult) (model.Verdict, error) {
	if len(results) == 0 {
		return "", conf_errors.ErrEmptyAggregation
	}

	allNA := true
	for _, r := range results {
		if r.Verdict == model.VerdictFail {
			return model.VerdictFail, nil
		}
		if r.Verdict != model.VerdictNotApplicable {
			allNA = false
		}
	}
	if allNA {
		return model.VerdictNotApplicable, nil
	}
	return model.VerdictPass, nil
}

// SummarizeJustification renders one summary line per asset, in input order.
// The line format is load-bearing: edit flows re-parse these lines for
// display, so keep it in sync with ParseSummaryLine.
func SummarizeJustification(results []model.AssetResult) string {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "- %s (%s): %s (%s) - %s", r.AssetID, r.AssetName, r.Verdict, r.DecisionNode, r.Justification)
	}
	return b.String()
}

// ParseSummaryLine inverts one SummarizeJustification line. Lines that do
// not match the format are rejected.
func ParseSummaryLine(line string) (model.AssetResult, error) {
	var r model.AssetResult

	rest, ok := strings.CutPrefix(line, "- ")
	if !ok {
		return r, fmt.Errorf("summary line missing leading dash: %q", line)
	}
	head, tail, ok := strings.Cut(rest, "): ")
	if !ok {
		return r, fmt.Errorf("summary line missing asset segment: %q", line)
	}
	assetID, assetName, ok := strings.Cut(head, " (")
	if !ok {
		return r, fmt.Errorf("summary line missing asset name: %q", line)
	}
	verdictPart, justification, ok := strings.Cut(tail, ") - ")
	if !ok {
		return r, fmt.Errorf("summary line missing justification: %q", line)
	}
	verdict, node, ok := strings.Cut(verdictPart, " (")
	if !ok {
		return r, fmt.Errorf("summary line missing decision node: %q", line)
	}
	if !model.Verdict(verdict).IsValid() {
		return r, fmt.Errorf("summary line has invalid verdict %q", verdict)
	}

	r.AssetID = assetID
	r.AssetName = assetName
	r.Verdict = model.Verdict(verdict)
	r.DecisionNode = node
	r.Justification = justification
	return r, nil
}

// SummarizeComments renders the fixed methodology sentence for a completed
// conceptual assessment.
func SummarizeComments(results []model.AssetResult) string {
	noun := "assets"
	if len(results) == 1 {
		noun = "asset"
	}
	return fmt.Sprintf("Conceptual assessment of %d %s using the decision tree methodology.", len(results), noun)
}
