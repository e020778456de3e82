// controller/session_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/en18031/conformity/engine"
	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/service"
	"github.com/en18031/conformity/util"
)

// SessionController drives conceptual assessment sessions over HTTP.
type SessionController struct {
	conceptualService service.IConceptualService
}

func NewSessionController(conceptualService service.IConceptualService) *SessionController {
	return &SessionController{
		conceptualService: conceptualService,
	}
}

// RegisterRoutes registers the API routes
func (sc *SessionController) RegisterRoutes(r *gin.RouterGroup) {
	sessions := r.Group("/sessions")
	{
		sessions.POST("", sc.StartSession)
		sessions.GET("/:id", sc.GetState)
		sessions.DELETE("/:id", sc.AbandonSession)
		sessions.POST("/:id/assets", sc.AddAsset)
		sessions.DELETE("/:id/assets/:assetId", sc.RemoveAsset)
		sessions.POST("/:id/start", sc.BeginAssessment)
		sessions.POST("/:id/answer", sc.Answer)
		sessions.POST("/:id/restart", sc.RestartAsset)
		sessions.POST("/:id/commit", sc.CommitAsset)
		sessions.POST("/:id/back", sc.BackToCollecting)
	}
}

type startSessionRequest struct {
	ProjectID  string `json:"project_id" binding:"required"`
	TestCaseID string `json:"test_case_id" binding:"required"`
}

// StartSession endpoint
func (sc *SessionController) StartSession(c *gin.Context) {
	var req startSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid session request", err)
		return
	}

	state, err := sc.conceptualService.StartSession(c, req.ProjectID, req.TestCaseID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		case errors.Is(err, conf_errors.ErrTestCaseNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Test case not found", err)
		case errors.Is(err, conf_errors.ErrTreeNotFound):
			util.RespondWithError(c, http.StatusNotFound, "No decision tree for test case", err)
		case errors.Is(err, conf_errors.ErrInvalidAssessmentData):
			util.RespondWithError(c, http.StatusBadRequest, "Test case is not conceptual", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to start session", err)
		}
		return
	}

	c.JSON(http.StatusCreated, state)
}

// GetState endpoint
func (sc *SessionController) GetState(c *gin.Context) {
	state, err := sc.conceptualService.GetState(c, c.Param("id"))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to read session state")
		return
	}
	c.JSON(http.StatusOK, state)
}

// AbandonSession endpoint
func (sc *SessionController) AbandonSession(c *gin.Context) {
	if err := sc.conceptualService.AbandonSession(c, c.Param("id")); err != nil {
		sc.respondSessionError(c, err, "Failed to abandon session")
		return
	}
	c.Status(http.StatusNoContent)
}

// AddAsset endpoint
func (sc *SessionController) AddAsset(c *gin.Context) {
	var asset model.Asset
	if err := c.ShouldBindJSON(&asset); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid asset data", err)
		return
	}

	state, err := sc.conceptualService.AddAsset(c, c.Param("id"), asset)
	if err != nil {
		sc.respondSessionError(c, err, "Failed to add asset")
		return
	}
	c.JSON(http.StatusOK, state)
}

// RemoveAsset endpoint
func (sc *SessionController) RemoveAsset(c *gin.Context) {
	state, err := sc.conceptualService.RemoveAsset(c, c.Param("id"), c.Param("assetId"))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to remove asset")
		return
	}
	c.JSON(http.StatusOK, state)
}

// BeginAssessment endpoint
func (sc *SessionController) BeginAssessment(c *gin.Context) {
	state, err := sc.conceptualService.BeginAssessment(c, c.Param("id"))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to start assessment")
		return
	}
	c.JSON(http.StatusOK, state)
}

type answerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// Answer endpoint
func (sc *SessionController) Answer(c *gin.Context) {
	var req answerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid answer", err)
		return
	}

	state, err := sc.conceptualService.Answer(c, c.Param("id"), engine.Answer(req.Answer))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to record answer")
		return
	}
	c.JSON(http.StatusOK, state)
}

// RestartAsset endpoint
func (sc *SessionController) RestartAsset(c *gin.Context) {
	state, err := sc.conceptualService.RestartAsset(c, c.Param("id"))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to restart evaluation")
		return
	}
	c.JSON(http.StatusOK, state)
}

type commitRequest struct {
	Justification string `json:"justification" binding:"required"`
}

// CommitAsset endpoint. Committing the final asset returns the persisted
// assessment alongside the completed session state.
func (sc *SessionController) CommitAsset(c *gin.Context) {
	var req commitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Missing justification", err)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	state, assessment, err := sc.conceptualService.CommitAsset(c, c.Param("id"), req.Justification, userID)
	if err != nil {
		sc.respondSessionError(c, err, "Failed to commit asset result")
		return
	}

	resp := gin.H{"state": state}
	if assessment != nil {
		resp["assessment"] = assessment
	}
	c.JSON(http.StatusOK, resp)
}

// BackToCollecting endpoint
func (sc *SessionController) BackToCollecting(c *gin.Context) {
	state, err := sc.conceptualService.BackToCollecting(c, c.Param("id"))
	if err != nil {
		sc.respondSessionError(c, err, "Failed to return to asset collection")
		return
	}
	c.JSON(http.StatusOK, state)
}

func (sc *SessionController) respondSessionError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, conf_errors.ErrSessionNotFound):
		util.RespondWithError(c, http.StatusNotFound, "Session not found", err)
	case service.IsSessionError(err):
		util.RespondWithError(c, http.StatusConflict, err.Error(), err)
	case errors.Is(err, conf_errors.ErrMalformedDecisionTree):
		util.RespondWithError(c, http.StatusInternalServerError, "Decision tree catalog is malformed", err)
	default:
		util.RespondWithError(c, http.StatusInternalServerError, fallback, err)
	}
}
