// controller/assessment_controller.go
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

type AssessmentController struct {
	assessmentService service.IAssessmentService
}

func NewAssessmentController(assessmentService service.IAssessmentService) *AssessmentController {
	return &AssessmentController{
		assessmentService: assessmentService,
	}
}

// RegisterRoutes registers the API routes
func (ac *AssessmentController) RegisterRoutes(r *gin.RouterGroup) {
	assessments := r.Group("/assessments")
	{
		assessments.POST("", ac.CreateAssessment)
		assessments.PUT("/:id", ac.UpdateAssessment)
		assessments.DELETE("/:id", ac.DeleteAssessment)
		assessments.GET("/:id", ac.GetAssessment)
		assessments.POST("/search", ac.SearchAssessments)
		assessments.POST("/bulk", ac.BulkCreateAssessments)
	}
	r.GET("/projects/:id/assessments", ac.ListByProject)
}

// CreateAssessment endpoint
func (ac *AssessmentController) CreateAssessment(c *gin.Context) {
	var assessment model.Assessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assessment data", conf_errors.ErrInvalidAssessmentData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", conf_errors.ErrUnauthorized)
		return
	}

	created, err := ac.assessmentService.CreateAssessment(c, assessment, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrAssessmentConflict):
			util.RespondWithError(c, http.StatusConflict, "Assessment already exists", err)
		case errors.Is(err, conf_errors.ErrInvalidAssessmentData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid assessment data", err)
		case errors.Is(err, conf_errors.ErrTestCaseNotFound):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown test case", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create assessment", conf_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, created)
}

// UpdateAssessment endpoint
func (ac *AssessmentController) UpdateAssessment(c *gin.Context) {
	assessmentID := c.Param("id")
	var assessment model.Assessment
	if err := c.ShouldBindJSON(&assessment); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assessment data", err)
		return
	}
	assessment.ID = assessmentID
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updated, err := ac.assessmentService.UpdateAssessment(c, assessment, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrAssessmentNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Assessment not found", err)
		case errors.Is(err, conf_errors.ErrInvalidAssessmentData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid assessment data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update assessment", err)
		}
		return
	}

	c.JSON(http.StatusOK, updated)
}

// DeleteAssessment endpoint
func (ac *AssessmentController) DeleteAssessment(c *gin.Context) {
	assessmentID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := ac.assessmentService.DeleteAssessment(c, assessmentID, userID); err != nil {
		if errors.Is(err, conf_errors.ErrAssessmentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Assessment not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete assessment", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetAssessment endpoint
func (ac *AssessmentController) GetAssessment(c *gin.Context) {
	assessmentID := c.Param("id")

	assessment, err := ac.assessmentService.GetAssessment(c, assessmentID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrAssessmentNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Assessment not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve assessment", err)
		}
		return
	}

	c.JSON(http.StatusOK, assessment)
}

// ListByProject endpoint
func (ac *AssessmentController) ListByProject(c *gin.Context) {
	projectID := c.Param("id")

	assessments, err := ac.assessmentService.ListByProject(c, projectID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list assessments", err)
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// SearchAssessments endpoint
func (ac *AssessmentController) SearchAssessments(c *gin.Context) {
	var criteria model.AssessmentSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		return
	}

	assessments, err := ac.assessmentService.SearchAssessments(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search assessments", err)
		return
	}

	c.JSON(http.StatusOK, assessments)
}

// BulkCreateAssessments endpoint
func (ac *AssessmentController) BulkCreateAssessments(c *gin.Context) {
	var assessments []model.Assessment
	if err := c.ShouldBindJSON(&assessments); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid assessment data", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	ids, err := ac.assessmentService.BulkCreateAssessments(c, assessments, userID)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to bulk create assessments", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"assessment_ids": ids})
}
