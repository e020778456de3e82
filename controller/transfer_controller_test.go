// controller/transfer_controller_test.go
package controller

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/service"
)

func TestExportOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"name": "Export Device"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	decodeBody(t, w, &project)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+project.ID+"/export?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), `attachment; filename="export_device-export.json"`)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+project.ID+"/export?format=docx", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/no-such/export", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestImportOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/projects", gin.H{"name": "Export Device"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	decodeBody(t, w, &project)

	w = doJSON(t, r, http.MethodPost, "/api/v1/assessments", gin.H{
		"project_id":    project.ID,
		"test_case_id":  "acm-001",
		"result":        "pass",
		"justification": "Access control enforced at login",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/projects/"+project.ID+"/export?format=json", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import?format=json", bytes.NewReader(exported))
	req.Header.Set("X-User-ID", "tester")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var report service.ImportReport
	decodeBody(t, w, &report)
	assert.True(t, report.ProjectCreated)
	assert.Equal(t, 1, report.AssessmentsWritten)

	w2 := doJSON(t, r, http.MethodGet, "/api/v1/projects/"+report.ProjectID, nil)
	require.Equal(t, http.StatusOK, w2.Code)
	var imported model.Project
	decodeBody(t, w2, &imported)
	assert.Equal(t, "Export Device (imported)", imported.Name)
}

func TestImportRejectsBadInputOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/import?format=json", bytes.NewReader(nil))
	req.Header.Set("X-User-ID", "tester")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/import?format=json", bytes.NewReader([]byte("garbage")))
	req.Header.Set("X-User-ID", "tester")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/import?format=docx", bytes.NewReader([]byte("{}")))
	req.Header.Set("X-User-ID", "tester")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
