// controller/transfer_controller.go
package controller

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/service"
	"github.com/en18031/conformity/util"
)

// TransferController serves project exports and accepts import uploads.
type TransferController struct {
	transferService service.ITransferService
}

func NewTransferController(transferService service.ITransferService) *TransferController {
	return &TransferController{
		transferService: transferService,
	}
}

// RegisterRoutes registers the API routes
func (tc *TransferController) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/projects/:id/export", tc.Export)
	r.POST("/import", tc.Import)
}

// Export endpoint. The format query parameter selects the codec; the rendered
// document is returned as a download.
func (tc *TransferController) Export(c *gin.Context) {
	projectID := c.Param("id")
	format := c.DefaultQuery("format", "json")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	doc, err := tc.transferService.Export(c, projectID, format, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrUnsupportedFormat):
			util.RespondWithError(c, http.StatusBadRequest, "Unsupported export format", err)
		case errors.Is(err, conf_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to export project", err)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+doc.FileName+`"`)
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

// Import endpoint. Accepts the raw file in the request body; format and
// skip_duplicates come from query parameters.
func (tc *TransferController) Import(c *gin.Context) {
	format := c.DefaultQuery("format", "json")
	skipDuplicates := c.DefaultQuery("skip_duplicates", "true") == "true"
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	raw, err := io.ReadAll(c.Request.Body)
	if err != nil || len(raw) == 0 {
		util.RespondWithError(c, http.StatusBadRequest, "Empty import body", conf_errors.ErrInvalidImportFormat)
		return
	}

	report, err := tc.transferService.Import(c, raw, format, userID, service.ImportOptions{
		SkipDuplicates: skipDuplicates,
	})
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrUnsupportedFormat):
			util.RespondWithError(c, http.StatusBadRequest, "Unsupported import format", err)
		case errors.Is(err, conf_errors.ErrInvalidImportFormat):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid import file", err)
		case errors.Is(err, conf_errors.ErrInvalidAssessmentData):
			util.RespondWithError(c, http.StatusBadRequest, "Import contains invalid assessments", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to apply import", err)
		}
		return
	}

	c.JSON(http.StatusOK, report)
}
