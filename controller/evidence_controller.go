// controller/evidence_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/service"
	"github.com/en18031/conformity/util"
)

type EvidenceController struct {
	evidenceService service.IEvidenceService
}

func NewEvidenceController(evidenceService service.IEvidenceService) *EvidenceController {
	return &EvidenceController{
		evidenceService: evidenceService,
	}
}

// RegisterRoutes registers the API routes
func (ec *EvidenceController) RegisterRoutes(r *gin.RouterGroup) {
	evidence := r.Group("/evidence")
	{
		evidence.POST("", ec.AttachEvidence)
		evidence.DELETE("/:id", ec.DeleteEvidence)
		evidence.GET("/:id", ec.GetEvidence)
	}
	r.GET("/assessments/:id/evidence", ec.ListByAssessment)
}

// AttachEvidence endpoint
func (ec *EvidenceController) AttachEvidence(c *gin.Context) {
	var file model.EvidenceFile
	if err := c.ShouldBindJSON(&file); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid evidence data", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", conf_errors.ErrUnauthorized)
		return
	}

	created, err := ec.evidenceService.AttachEvidence(c, file, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrAssessmentNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Assessment not found", err)
		case errors.Is(err, conf_errors.ErrInvalidAssessmentData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid evidence data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to attach evidence", err)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// DeleteEvidence endpoint
func (ec *EvidenceController) DeleteEvidence(c *gin.Context) {
	evidenceID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ec.evidenceService.DeleteEvidence(c, evidenceID, userID); err != nil {
		if errors.Is(err, conf_errors.ErrEvidenceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Evidence not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete evidence", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetEvidence endpoint
func (ec *EvidenceController) GetEvidence(c *gin.Context) {
	evidenceID := c.Param("id")

	file, err := ec.evidenceService.GetEvidence(c, evidenceID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrEvidenceNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Evidence not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve evidence", err)
		}
		return
	}

	c.JSON(http.StatusOK, file)
}

// ListByAssessment endpoint
func (ec *EvidenceController) ListByAssessment(c *gin.Context) {
	assessmentID := c.Param("id")

	files, err := ec.evidenceService.ListByAssessment(c, assessmentID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list evidence", err)
		return
	}

	c.JSON(http.StatusOK, files)
}
