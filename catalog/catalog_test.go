// catalog/catalog_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	tree, err := cat.Tree("DT.ACM-1")
	require.NoError(t, err)
	assert.Equal(t, "ACM", tree.Mechanism)
	assert.Equal(t, "DT.ACM-1.DN-1", tree.RootID)
	assert.Equal(t, 5, tree.Depth())

	tree, err = cat.TreeForTestCase("aum-001")
	require.NoError(t, err)
	assert.Equal(t, "DT.AUM-1", tree.ID)

	_, err = cat.Tree("DT.NOPE-1")
	assert.ErrorIs(t, err, conf_errors.ErrTreeNotFound)

	tc, err := cat.TestCase("acm-001")
	require.NoError(t, err)
	assert.Equal(t, model.TypeConceptual, tc.AssessmentType)

	_, err = cat.TestCase("zzz-999")
	assert.ErrorIs(t, err, conf_errors.ErrTestCaseNotFound)
}

func TestTestCasesOrderedAndFiltered(t *testing.T) {
	cat, err := Load()
	require.NoError(t, err)

	all := cat.TestCases()
	require.NotEmpty(t, all)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, all[i-1].Order, all[i].Order)
	}

	acm := cat.TestCasesByMechanism("ACM")
	require.NotEmpty(t, acm)
	for _, tc := range acm {
		assert.Equal(t, "ACM", tc.Mechanism)
	}
}

func TestBuildTreeRejectsDanglingEdge(t *testing.T) {
	tree := &Tree{
		ID:     "DT.X-1",
		RootID: "root",
		NodeList: []DecisionNode{
			{ID: "root", Kind: KindDecision, Question: "q", Yes: "missing", No: "out"},
			{ID: "out", Kind: KindOutcome, Verdict: model.VerdictPass},
		},
	}
	err := buildTree(tree)
	assert.ErrorIs(t, err, conf_errors.ErrMalformedDecisionTree)
}

func TestBuildTreeRejectsCycle(t *testing.T) {
	tree := &Tree{
		ID:     "DT.X-2",
		RootID: "a",
		NodeList: []DecisionNode{
			{ID: "a", Kind: KindDecision, Question: "q", Yes: "b", No: "out"},
			{ID: "b", Kind: KindDecision, Question: "q", Yes: "a", No: "out"},
			{ID: "out", Kind: KindOutcome, Verdict: model.VerdictPass},
		},
	}
	err := buildTree(tree)
	assert.ErrorIs(t, err, conf_errors.ErrMalformedDecisionTree)
}

func TestBuildTreeRejectsDuplicateNode(t *testing.T) {
	tree := &Tree{
		ID:     "DT.X-3",
		RootID: "out",
		NodeList: []DecisionNode{
			{ID: "out", Kind: KindOutcome, Verdict: model.VerdictPass},
			{ID: "out", Kind: KindOutcome, Verdict: model.VerdictFail},
		},
	}
	err := buildTree(tree)
	assert.ErrorIs(t, err, conf_errors.ErrMalformedDecisionTree)
}

func TestBuildTreeRejectsInvalidVerdict(t *testing.T) {
	tree := &Tree{
		ID:     "DT.X-4",
		RootID: "out",
		NodeList: []DecisionNode{
			{ID: "out", Kind: KindOutcome, Verdict: "MAYBE"},
		},
	}
	err := buildTree(tree)
	assert.ErrorIs(t, err, conf_errors.ErrMalformedDecisionTree)
}

func TestBuildTreeSharedOutcomeIsNotACycle(t *testing.T) {
	// Two decision nodes funneling into the same outcome is a DAG, not a
	// cycle, and must validate.
	tree := &Tree{
		ID:     "DT.X-5",
		RootID: "a",
		NodeList: []DecisionNode{
			{ID: "a", Kind: KindDecision, Question: "q", Yes: "b", No: "out"},
			{ID: "b", Kind: KindDecision, Question: "q", Yes: "out", No: "out"},
			{ID: "out", Kind: KindOutcome, Verdict: model.VerdictPass},
		},
	}
	require.NoError(t, buildTree(tree))
	assert.Equal(t, 3, tree.Depth())
}
