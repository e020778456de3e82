// session/session_test.go
package session

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/engine"
	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)
	tree, err := cat.Tree("DT.ACM-1")
	require.NoError(t, err)
	return New("sess-1", "proj-1", "acm-001", tree)
}

func TestStartRequiresAssets(t *testing.T) {
	sess := newTestSession(t)

	err := sess.Start()
	assert.ErrorIs(t, err, conf_errors.ErrEmptyAssetList)
	assert.Equal(t, PhaseCollecting, sess.Phase())
}

func TestAssetListFrozenAfterStart(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())

	err := sess.AddAsset(model.Asset{ID: "SA-002", Name: "Session token"})
	assert.ErrorIs(t, err, conf_errors.ErrAssetListFrozen)

	err = sess.RemoveAsset("SA-001")
	assert.ErrorIs(t, err, conf_errors.ErrAssetListFrozen)
}

func TestAddAssetRejectsDuplicateID(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))

	err := sess.AddAsset(model.Asset{ID: "SA-001", Name: "Another name"})
	assert.ErrorIs(t, err, conf_errors.ErrDuplicateAsset)
}

func TestAddAssetDefaultsToSecurityType(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))

	assets := sess.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, model.AssetSecurity, assets[0].Type)
}

func TestRemoveAssetUnknownID(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))

	err := sess.RemoveAsset("SA-999")
	assert.ErrorIs(t, err, conf_errors.ErrAssetNotFound)
}

func TestCommitBlockedBeforeTerminal(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())

	err := sess.Commit("looks fine")
	assert.ErrorIs(t, err, conf_errors.ErrIncompleteAssessment)
}

func TestCommitBlockedWithoutJustification(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())

	require.NoError(t, sess.Answer(engine.AnswerNo))
	eval, err := sess.Evaluation()
	require.NoError(t, err)
	require.True(t, eval.Terminal())

	err = sess.Commit("   ")
	assert.ErrorIs(t, err, conf_errors.ErrIncompleteAssessment)
}

func TestFullSessionWithMixedVerdicts(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.AddAsset(model.Asset{ID: "NA-001", Name: "Diagnostics port", Type: model.AssetNetwork}))
	require.NoError(t, sess.Start())

	// First asset walks to PASS.
	current, err := sess.CurrentAsset()
	require.NoError(t, err)
	assert.Equal(t, "SA-001", current.ID)
	for _, answer := range []engine.Answer{engine.AnswerYes, engine.AnswerNo, engine.AnswerNo, engine.AnswerYes} {
		require.NoError(t, sess.Answer(answer))
	}
	require.NoError(t, sess.Commit("Access control enforced at login"))

	// Second asset short-circuits to NOT APPLICABLE and completes the session.
	current, err = sess.CurrentAsset()
	require.NoError(t, err)
	assert.Equal(t, "NA-001", current.ID)
	require.NoError(t, sess.Answer(engine.AnswerNo))
	require.NoError(t, sess.Commit("Port disabled in production builds"))

	assert.Equal(t, PhaseCompleted, sess.Phase())

	verdict, justification, comments, err := sess.Outcome()
	require.NoError(t, err)
	assert.Equal(t, model.VerdictPass, verdict)
	assert.Equal(t, "Conceptual assessment of 2 assets using the decision tree methodology.", comments)

	lines := strings.Split(justification, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "- SA-001 (Admin credentials): PASS (DT.ACM-1.DN-4) - Access control enforced at login", lines[0])
	assert.Equal(t, "- NA-001 (Diagnostics port): NOT APPLICABLE (DT.ACM-1.DN-1) - Port disabled in production builds", lines[1])

	results := sess.Results()
	require.Len(t, results, 2)
	assert.Equal(t, []string{"DT.ACM-1.DN-1", "DT.ACM-1.DN-2", "DT.ACM-1.DN-3", "DT.ACM-1.DN-4", "PASS"}, results[0].DecisionPath)
}

func TestRestartEvaluationDiscardsWalk(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())

	require.NoError(t, sess.Answer(engine.AnswerNo))
	require.NoError(t, sess.RestartEvaluation())

	eval, err := sess.Evaluation()
	require.NoError(t, err)
	assert.False(t, eval.Terminal())
	assert.Empty(t, eval.Path())
}

func TestBackToCollectingDiscardsResults(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-002", Name: "Session token"}))
	require.NoError(t, sess.Start())

	require.NoError(t, sess.Answer(engine.AnswerNo))
	require.NoError(t, sess.Commit("Out of scope for this device"))
	require.Len(t, sess.Results(), 1)

	require.NoError(t, sess.BackToCollecting())
	assert.Equal(t, PhaseCollecting, sess.Phase())
	assert.Empty(t, sess.Results())

	// List unfreezes again.
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-003", Name: "Firmware image"}))
}

func TestOutcomeBeforeCompletion(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())

	_, _, _, err := sess.Outcome()
	assert.ErrorIs(t, err, conf_errors.ErrIncompleteAssessment)
}

func TestCompletedSessionRejectsFurtherMutation(t *testing.T) {
	sess := newTestSession(t)
	require.NoError(t, sess.AddAsset(model.Asset{ID: "SA-001", Name: "Admin credentials"}))
	require.NoError(t, sess.Start())
	require.NoError(t, sess.Answer(engine.AnswerNo))
	require.NoError(t, sess.Commit("Out of scope for this device"))
	require.Equal(t, PhaseCompleted, sess.Phase())

	assert.ErrorIs(t, sess.Answer(engine.AnswerYes), conf_errors.ErrSessionCompleted)
	assert.ErrorIs(t, sess.Commit("again"), conf_errors.ErrSessionCompleted)
	assert.ErrorIs(t, sess.BackToCollecting(), conf_errors.ErrSessionCompleted)
}

func TestManagerLifecycle(t *testing.T) {
	cat, err := catalog.Load()
	require.NoError(t, err)
	tree, err := cat.Tree("DT.ACM-1")
	require.NoError(t, err)

	m := NewManager()
	created := m.Create("sess-1", "proj-1", "acm-001", tree)

	got, err := m.Get("sess-1")
	require.NoError(t, err)
	assert.Same(t, created, got)

	m.Remove("sess-1")
	_, err = m.Get("sess-1")
	assert.ErrorIs(t, err, conf_errors.ErrSessionNotFound)
}
