// controller/session_controller_test.go
package controller

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/service"
	"github.com/en18031/conformity/session"
)

func startSessionOverHTTP(t *testing.T, r *gin.Engine) (string, service.SessionState) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"name": "Session Device"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	decodeBody(t, w, &project)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{
		"project_id":   project.ID,
		"test_case_id": "acm-001",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var state service.SessionState
	decodeBody(t, w, &state)
	return project.ID, state
}

func TestSessionFlowOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	projectID, state := startSessionOverHTTP(t, r)
	assert.Equal(t, session.PhaseCollecting, state.Phase)
	base := "/api/v1/sessions/" + state.SessionID

	w := doJSON(t, r, http.MethodPost, base+"/assets", gin.H{"id": "SA-001", "name": "Admin credentials"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &state)
	assert.Equal(t, session.PhaseAssessing, state.Phase)
	require.NotNil(t, state.CurrentNode)
	assert.Equal(t, "DT.ACM-1.DN-1", state.CurrentNode.ID)

	for _, answer := range []string{"yes", "no", "no", "yes"} {
		w = doJSON(t, r, http.MethodPost, base+"/answer", gin.H{"answer": answer})
		require.Equal(t, http.StatusOK, w.Code)
	}
	decodeBody(t, w, &state)
	assert.True(t, state.Terminal)
	assert.Equal(t, model.VerdictPass, state.Verdict)

	w = doJSON(t, r, http.MethodPost, base+"/commit", gin.H{"justification": "Access control enforced at login"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		State      service.SessionState `json:"state"`
		Assessment *model.Assessment    `json:"assessment"`
	}
	decodeBody(t, w, &resp)
	assert.Equal(t, session.PhaseCompleted, resp.State.Phase)
	require.NotNil(t, resp.Assessment)
	assert.Equal(t, model.ResultPass, resp.Assessment.Result)

	// The session is gone once its outcome is persisted.
	w = doJSON(t, r, http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+projectID+"/assessments", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stored []model.Assessment
	decodeBody(t, w, &stored)
	assert.Len(t, stored, 1)
}

func TestSessionConflictsOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	_, state := startSessionOverHTTP(t, r)
	base := "/api/v1/sessions/" + state.SessionID

	// Starting with no assets is a client fault.
	w := doJSON(t, r, http.MethodPost, base+"/start", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, base+"/assets", gin.H{"id": "SA-001", "name": "Admin credentials"})
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, base+"/assets", gin.H{"id": "SA-001", "name": "Duplicate"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodDelete, base+"/assets/SA-999", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Committing before the walk reaches an outcome is blocked.
	w = doJSON(t, r, http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, base+"/commit", gin.H{"justification": "too early"})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Back to collecting reopens the list.
	w = doJSON(t, r, http.MethodPost, base+"/back", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got service.SessionState
	decodeBody(t, w, &got)
	assert.Equal(t, session.PhaseCollecting, got.Phase)
}

func TestSessionNotFoundOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/sessions/no-such", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{
		"project_id":   "no-such",
		"test_case_id": "acm-001",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/v1/sessions", gin.H{"project_id": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAbandonSessionOverHTTP(t *testing.T) {
	r := newTestRouter(t)
	_, state := startSessionOverHTTP(t, r)

	w := doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+state.SessionID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/sessions/"+state.SessionID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
