// controller/audit_controller.go
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/util"
	helper_util "github.com/en18031/conformity/util/helper"
)

// AuditController exposes the change history recorded by the stores.
type AuditController struct {
	auditService audit.Service
}

func NewAuditController(auditService audit.Service) *AuditController {
	return &AuditController{auditService: auditService}
}

// RegisterRoutes registers the API routes
func (ac *AuditController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/audit", ac.QueryLogs)
}

// QueryLogs endpoint. Filters by ?from=, ?to= (RFC 3339), ?user_id= and
// ?project_id=; from defaults to 24 hours before to, to defaults to now.
func (ac *AuditController) QueryLogs(c *gin.Context) {
	to := time.Now().UTC()
	if raw := c.Query("to"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'to' timestamp", err)
			return
		}
		to = parsed
	}

	from := to.Add(-24 * time.Hour)
	if raw := c.Query("from"); raw != "" {
		parsed, err := helper_util.ParseTime(raw)
		if err != nil {
			util.RespondWithError(c, http.StatusBadRequest, "Invalid 'from' timestamp", err)
			return
		}
		from = parsed
	}

	logs, err := ac.auditService.QueryLogs(c.Request.Context(), from, to, c.Query("user_id"), c.Query("project_id"))
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to query audit logs", err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
