// dedup/dedup.go
package dedup

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/en18031/conformity/model"
)

// assessmentContent is the canonical substantive-field view of an
// assessment. Identifier and bookkeeping fields (id, assessedAt, assessedBy,
// version, status, evidence references) are deliberately excluded so that
// re-imported copies of the same work hash identically. Field order is
// fixed by the struct; encoding/json emits it deterministically.
type assessmentContent struct {
	ProjectID       string        `json:"projectId"`
	TestCaseID      string        `json:"testCaseId"`
	Result          model.Result  `json:"result"`
	Justification   string        `json:"justification"`
	Comments        string        `json:"comments"`
	TestPerformedOn string        `json:"testPerformedOn"`
	TestExecutedBy  string        `json:"testExecutedBy"`
	TestStepResults []stepContent `json:"testStepResults"`
	Notes           string        `json:"notes"`
}

type stepContent struct {
	TestStepID   string       `json:"testStepId"`
	Result       model.Result `json:"result"`
	ActualResult string       `json:"actualResult"`
	Notes        string       `json:"notes"`
}

// ContentHash fingerprints an assessment's substantive fields. Equal hashes
// mean content-identical assessments. The digest is a stable structural
// hash, not a cryptographic one.
func ContentHash(a model.Assessment) string {
	content := assessmentContent{
		ProjectID:       a.ProjectID,
		TestCaseID:      a.TestCaseID,
		Result:          a.Result,
		Justification:   a.Justification,
		Comments:        a.Comments,
		TestPerformedOn: a.TestPerformedOn,
		TestExecutedBy:  a.TestExecutedBy,
		TestStepResults: make([]stepContent, 0, len(a.TestStepResults)),
		Notes:           a.Notes,
	}
	for _, s := range a.TestStepResults {
		content.TestStepResults = append(content.TestStepResults, stepContent{
			TestStepID:   s.TestStepID,
			Result:       s.Result,
			ActualResult: s.ActualResult,
			Notes:        s.Notes,
		})
	}

	canonical, _ := json.Marshal(content)
	return strconv.FormatUint(xxhash.Sum64(canonical), 16)
}

// ContentIdentical reports whether two assessments carry the same
// substantive content.
func ContentIdentical(a, b model.Assessment) bool {
	return ContentHash(a) == ContentHash(b)
}

// Duplicate pairs an incoming assessment with the stored assessment whose
// content it repeats.
type Duplicate struct {
	New         model.Assessment `json:"new_assessment"`
	Existing    model.Assessment `json:"existing_assessment"`
	ContentHash string           `json:"content_hash"`
}

// Partition is the outcome of duplicate detection over an import batch.
// len(Duplicates) + len(Unique) always equals the batch size.
type Partition struct {
	Duplicates []Duplicate        `json:"duplicates"`
	Unique     []model.Assessment `json:"unique"`
}

// FindDuplicates splits newBatch into entries whose content already exists
// in existing and entries that are new. Detection is hash-map based, O(n+m);
// when two existing records share a hash the later one wins as the canonical
// match.
func FindDuplicates(newBatch, existing []model.Assessment) Partition {
	index := make(map[string]model.Assessment, len(existing))
	for _, a := range existing {
		index[ContentHash(a)] = a
	}

	p := Partition{}
	for _, a := range newBatch {
		hash := ContentHash(a)
		if match, ok := index[hash]; ok {
			p.Duplicates = append(p.Duplicates, Duplicate{New: a, Existing: match, ContentHash: hash})
		} else {
			p.Unique = append(p.Unique, a)
		}
	}
	return p
}

// Summary renders a human-readable account of detected duplicates, grouped
// by project.
func Summary(duplicates []Duplicate) string {
	if len(duplicates) == 0 {
		return "No duplicates found."
	}

	perProject := make(map[string]int)
	for _, d := range duplicates {
		perProject[d.New.ProjectID]++
	}

	projects := make([]string, 0, len(perProject))
	for id := range perProject {
		projects = append(projects, id)
	}
	sort.Strings(projects)

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d duplicate assessment(s):", len(duplicates))
	for _, id := range projects {
		fmt.Fprintf(&b, "\nProject %s: %d duplicate(s)", id, perProject[id])
	}
	return b.String()
}
