// controller/project_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/service"
	"github.com/en18031/conformity/util"
	helper_util "github.com/en18031/conformity/util/helper"
)

type ProjectController struct {
	projectService service.IProjectService
}

func NewProjectController(projectService service.IProjectService) *ProjectController {
	return &ProjectController{
		projectService: projectService,
	}
}

// RegisterRoutes registers the API routes
func (pc *ProjectController) RegisterRoutes(r *gin.RouterGroup) {
	projects := r.Group("/projects")
	{
		projects.POST("", pc.CreateProject)
		projects.PUT("/:id", pc.UpdateProject)
		projects.DELETE("/:id", pc.DeleteProject)
		projects.GET("/:id", pc.GetProject)
		projects.GET("", pc.ListProjects)
		projects.POST("/search", pc.SearchProjects)
		projects.GET("/:id/progress", pc.GetProgress)
	}
}

// CreateProject endpoint
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", conf_errors.ErrInvalidProjectData)
		return
	}
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", conf_errors.ErrUnauthorized)
		return
	}

	createdProject, err := pc.projectService.CreateProject(c, project, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrProjectConflict):
			util.RespondWithError(c, http.StatusConflict, "Project already exists", err)
		case errors.Is(err, conf_errors.ErrInvalidProjectData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		case errors.Is(err, conf_errors.ErrDatabaseOperation):
			util.RespondWithError(c, http.StatusInternalServerError, "Database operation failed", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to create project", conf_errors.ErrInternalServer)
		}
		return
	}

	c.JSON(http.StatusCreated, createdProject)
}

// UpdateProject endpoint
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	projectID := c.Param("id")
	var project model.Project
	if err := c.ShouldBindJSON(&project); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		return
	}
	project.ID = projectID
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	updatedProject, err := pc.projectService.UpdateProject(c, project, userID)
	if err != nil {
		switch {
		case errors.Is(err, conf_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		case errors.Is(err, conf_errors.ErrInvalidProjectData):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		default:
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to update project", err)
		}
		return
	}

	c.JSON(http.StatusOK, updatedProject)
}

// DeleteProject endpoint
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	projectID := c.Param("id")
	userID, err := util.GetUserIDFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if err := pc.projectService.DeleteProject(c, projectID, userID); err != nil {
		if errors.Is(err, conf_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to delete project", err)
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// GetProject endpoint
func (pc *ProjectController) GetProject(c *gin.Context) {
	projectID := c.Param("id")

	project, err := pc.projectService.GetProject(c, projectID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve project", err)
		}
		return
	}

	c.JSON(http.StatusOK, project)
}

// ListProjects endpoint
func (pc *ProjectController) ListProjects(c *gin.Context) {
	limit, offset, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	projects, err := pc.projectService.ListProjects(c, limit, offset)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to list projects", err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// SearchProjects endpoint
func (pc *ProjectController) SearchProjects(c *gin.Context) {
	var criteria model.ProjectSearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid search criteria", err)
		return
	}

	projects, err := pc.projectService.SearchProjects(c, criteria)
	if err != nil {
		util.RespondWithError(c, http.StatusInternalServerError, "Failed to search projects", err)
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProgress endpoint
func (pc *ProjectController) GetProgress(c *gin.Context) {
	projectID := c.Param("id")

	progress, err := pc.projectService.GetProgress(c, projectID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		} else {
			util.RespondWithError(c, http.StatusInternalServerError, "Failed to compute progress", err)
		}
		return
	}

	c.JSON(http.StatusOK, progress)
}
