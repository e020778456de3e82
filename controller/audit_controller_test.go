// controller/audit_controller_test.go
package controller

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/audit"
)

func TestQueryAuditLogsOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/audit?from=2026-03-01T00:00:00Z&to=2026-03-31T00:00:00Z&user_id=tester", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var logs []audit.AuditLog
	decodeBody(t, w, &logs)
	assert.Empty(t, logs)
}

func TestQueryAuditLogsRejectsBadTimestamps(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/audit?from=yesterday", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/audit?to=2026-03-31", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
