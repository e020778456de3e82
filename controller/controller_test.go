// controller/controller_test.go
package controller

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/db"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/middleware"
	"github.com/en18031/conformity/service"
	testmock "github.com/en18031/conformity/test/mock"
	"github.com/en18031/conformity/util"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	logger.InitLogger(os.TempDir())
	os.Exit(m.Run())
}

// newTestRouter wires the full HTTP surface over an in-memory store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	cat, err := catalog.Load()
	require.NoError(t, err)

	auditService := new(testmock.MockAuditService)
	auditService.On("LogChange", mock.Anything, mock.Anything).Return(nil)
	auditService.On("QueryLogs", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]audit.AuditLog{}, nil)

	services, err := service.InitializeServices(
		db.NewMemoryKV(),
		cat,
		auditService,
		util.NewValidationUtil(),
		util.NewCacheService(),
		util.NewNotificationService(),
		util.NewEventBus(),
	)
	require.NoError(t, err)

	controllers := InitializeControllers(services, cat, auditService)

	r := gin.New()
	r.Use(middleware.UserContext())
	api := r.Group("/api/v1")
	controllers.Project.RegisterRoutes(api)
	controllers.Assessment.RegisterRoutes(api)
	controllers.Evidence.RegisterRoutes(api)
	controllers.Catalog.RegisterRoutes(api)
	controllers.Session.RegisterRoutes(api)
	controllers.Transfer.RegisterRoutes(api)
	controllers.Audit.RegisterRoutes(api)
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "tester")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
