// engine/evaluator_test.go
package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/model"
)

func loadTree(t *testing.T, id string) *catalog.Tree {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	tree, err := cat.Tree(id)
	require.NoError(t, err)
	return tree
}

func TestEvaluationWalkToPass(t *testing.T) {
	tree := loadTree(t, "DT.ACM-1")
	eval := NewEvaluation(tree)

	assert.Equal(t, "DT.ACM-1.DN-1", eval.Current().ID)
	assert.False(t, eval.Terminal())

	for _, answer := range []Answer{AnswerYes, AnswerNo, AnswerNo, AnswerYes} {
		require.NoError(t, eval.Advance(answer))
	}

	assert.True(t, eval.Terminal())
	assert.Equal(t, model.VerdictPass, eval.Verdict())
	assert.Equal(t, "DT.ACM-1.DN-4", eval.DecidingNode())
	assert.Equal(t, []string{
		"DT.ACM-1.DN-1",
		"DT.ACM-1.DN-2",
		"DT.ACM-1.DN-3",
		"DT.ACM-1.DN-4",
		"PASS",
	}, eval.Path())
}

func TestEvaluationShortCircuitToNotApplicable(t *testing.T) {
	tree := loadTree(t, "DT.ACM-1")
	eval := NewEvaluation(tree)

	require.NoError(t, eval.Advance(AnswerNo))

	assert.True(t, eval.Terminal())
	assert.Equal(t, model.VerdictNotApplicable, eval.Verdict())
	assert.Equal(t, "DT.ACM-1.DN-1", eval.DecidingNode())
}

func TestEvaluationInvalidAnswerSuspends(t *testing.T) {
	tree := loadTree(t, "DT.ACM-1")
	eval := NewEvaluation(tree)

	require.NoError(t, eval.Advance(Answer("maybe")))

	assert.False(t, eval.Terminal())
	assert.Equal(t, "DT.ACM-1.DN-1", eval.Current().ID)
	assert.Empty(t, eval.Path())
}

func TestEvaluationTerminalAdvanceIsNoOp(t *testing.T) {
	tree := loadTree(t, "DT.AUM-1")
	eval := NewEvaluation(tree)

	require.NoError(t, eval.Advance(AnswerYes))
	require.NoError(t, eval.Advance(AnswerYes))
	require.True(t, eval.Terminal())

	pathBefore := eval.Path()
	require.NoError(t, eval.Advance(AnswerNo))
	assert.Equal(t, pathBefore, eval.Path())
	assert.Equal(t, model.VerdictPass, eval.Verdict())
}

func TestEvaluationReset(t *testing.T) {
	tree := loadTree(t, "DT.AUM-1")
	eval := NewEvaluation(tree)

	require.NoError(t, eval.Advance(AnswerNo))
	require.True(t, eval.Terminal())

	eval.Reset()

	assert.False(t, eval.Terminal())
	assert.Empty(t, eval.Path())
	assert.Empty(t, eval.DecidingNode())
	assert.Equal(t, tree.RootID, eval.Current().ID)
}
