// controller/catalog_controller_test.go
package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/model"
)

func TestListTestCasesOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/testcases", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []model.TestCase
	decodeBody(t, w, &all)
	assert.Len(t, all, 4)

	w = doJSON(t, r, http.MethodGet, "/api/v1/testcases?mechanism=ACM", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var acm []model.TestCase
	decodeBody(t, w, &acm)
	require.NotEmpty(t, acm)
	for _, tc := range acm {
		assert.Equal(t, "ACM", tc.Mechanism)
	}
}

func TestGetTestCaseOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/testcases/acm-001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tc model.TestCase
	decodeBody(t, w, &tc)
	assert.Equal(t, model.TypeConceptual, tc.AssessmentType)

	w = doJSON(t, r, http.MethodGet, "/api/v1/testcases/zzz-999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetDecisionTreeOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/testcases/acm-001/tree", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tree struct {
		ID    string `json:"id"`
		Root  string `json:"root"`
		Nodes []struct {
			ID   string `json:"id"`
			Kind string `json:"kind"`
		} `json:"nodes"`
	}
	decodeBody(t, w, &tree)
	assert.Equal(t, "DT.ACM-1", tree.ID)
	assert.Equal(t, "DT.ACM-1.DN-1", tree.Root)
	assert.NotEmpty(t, tree.Nodes)

	// Step-based test cases carry no tree.
	w = doJSON(t, r, http.MethodGet, "/api/v1/testcases/acm-002/tree", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
