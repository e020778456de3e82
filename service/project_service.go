// service/project_service.go
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/dao"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/util"
)

// IProjectService defines the interface for project operations
type IProjectService interface {
	CreateProject(ctx context.Context, project model.Project, userID string) (*model.Project, error)
	UpdateProject(ctx context.Context, project model.Project, userID string) (*model.Project, error)
	DeleteProject(ctx context.Context, projectID string, userID string) error
	GetProject(ctx context.Context, projectID string) (*model.Project, error)
	ListProjects(ctx context.Context, limit int, offset int) ([]*model.Project, error)
	SearchProjects(ctx context.Context, criteria model.ProjectSearchCriteria) ([]*model.Project, error)
	GetProgress(ctx context.Context, projectID string) (*model.ProjectProgress, error)
}

// ProjectService handles business logic for project operations
type ProjectService struct {
	projectDAO      *dao.ProjectDAO
	assessmentDAO   *dao.AssessmentDAO
	catalog         *catalog.Catalog
	idGen           util.IDGenerator
	clock           util.Clock
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IProjectService = &ProjectService{}

// NewProjectService creates a new instance of ProjectService
func NewProjectService(
	projectDAO *dao.ProjectDAO,
	assessmentDAO *dao.AssessmentDAO,
	cat *catalog.Catalog,
	idGen util.IDGenerator,
	clock util.Clock,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *ProjectService {
	service := &ProjectService{
		projectDAO:      projectDAO,
		assessmentDAO:   assessmentDAO,
		catalog:         cat,
		idGen:           idGen,
		clock:           clock,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe("project.created", service.handleProjectCreated)
	eventBus.Subscribe("project.updated", service.handleProjectUpdated)
	eventBus.Subscribe("project.deleted", service.handleProjectDeleted)

	return service
}

func (s *ProjectService) handleProjectCreated(ctx context.Context, event util.Event) error {
	project := event.Payload.(model.Project)
	logger.Info("Project created event received", zap.String("projectID", project.ID))

	if err := s.notificationSvc.NotifyProjectChange(ctx, "created", project); err != nil {
		logger.Warn("Failed to send project creation notification", zap.Error(err), zap.String("projectID", project.ID))
	}
	return nil
}

func (s *ProjectService) handleProjectUpdated(ctx context.Context, event util.Event) error {
	project := event.Payload.(model.Project)
	logger.Info("Project updated event received",
		zap.String("projectID", project.ID),
		zap.Int("version", project.Version))

	if err := s.notificationSvc.NotifyProjectChange(ctx, "updated", project); err != nil {
		logger.Warn("Failed to send project update notification", zap.Error(err), zap.String("projectID", project.ID))
	}
	if err := s.cacheService.DeleteProjectProgress(ctx, project.ID); err != nil {
		logger.Warn("Failed to invalidate progress cache", zap.Error(err), zap.String("projectID", project.ID))
	}
	return nil
}

func (s *ProjectService) handleProjectDeleted(ctx context.Context, event util.Event) error {
	projectID := event.Payload.(string)
	logger.Info("Project deleted event received", zap.String("projectID", projectID))

	if err := s.notificationSvc.NotifyProjectChange(ctx, "deleted", model.Project{ID: projectID}); err != nil {
		logger.Warn("Failed to send project deletion notification", zap.Error(err), zap.String("projectID", projectID))
	}
	if err := s.cacheService.DeleteProjectProgress(ctx, projectID); err != nil {
		logger.Warn("Failed to invalidate progress cache", zap.Error(err), zap.String("projectID", projectID))
	}
	return nil
}

// CreateProject handles the creation of a new project
func (s *ProjectService) CreateProject(ctx context.Context, project model.Project, userID string) (*model.Project, error) {
	if err := s.validationUtil.ValidateProject(project); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidProjectData, err)
	}

	now := s.clock.Now()
	if project.ID == "" {
		project.ID = s.idGen.NewID()
	}
	if project.Status == "" {
		project.Status = model.ProjectDraft
	}
	project.CreatedAt = now
	project.UpdatedAt = now
	project.CreatedBy = userID
	project.Version = 1

	projectID, err := s.projectDAO.CreateProject(ctx, project, userID)
	if err != nil {
		logger.Error("Error creating project", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	project.ID = projectID

	s.eventBus.Publish(ctx, "project.created", project)

	logger.Info("Project created successfully", zap.String("projectID", projectID), zap.String("userID", userID))
	return &project, nil
}

// UpdateProject handles updates to an existing project
func (s *ProjectService) UpdateProject(ctx context.Context, project model.Project, userID string) (*model.Project, error) {
	if err := s.validationUtil.ValidateProject(project); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidProjectData, err)
	}

	updatedProject, err := s.projectDAO.UpdateProject(ctx, project, userID)
	if err != nil {
		logger.Error("Error updating project", zap.Error(err), zap.String("projectID", project.ID), zap.String("userID", userID))
		return nil, err
	}

	s.eventBus.Publish(ctx, "project.updated", *updatedProject)

	logger.Info("Project updated successfully", zap.String("projectID", project.ID), zap.String("userID", userID))
	return updatedProject, nil
}

// DeleteProject handles the deletion of a project
func (s *ProjectService) DeleteProject(ctx context.Context, projectID string, userID string) error {
	if err := s.projectDAO.DeleteProject(ctx, projectID, userID); err != nil {
		logger.Error("Error deleting project", zap.Error(err), zap.String("projectID", projectID), zap.String("userID", userID))
		return err
	}

	s.eventBus.Publish(ctx, "project.deleted", projectID)

	logger.Info("Project deleted successfully", zap.String("projectID", projectID), zap.String("userID", userID))
	return nil
}

// GetProject retrieves a project by its ID
func (s *ProjectService) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	project, err := s.projectDAO.GetProject(ctx, projectID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrProjectNotFound) {
			return nil, conf_errors.ErrProjectNotFound
		}
		logger.Error("Error retrieving project", zap.Error(err), zap.String("projectID", projectID))
		return nil, conf_errors.ErrInternalServer
	}
	return project, nil
}

// ListProjects retrieves all projects, possibly with pagination
func (s *ProjectService) ListProjects(ctx context.Context, limit int, offset int) ([]*model.Project, error) {
	projects, err := s.projectDAO.ListProjects(ctx, limit, offset)
	if err != nil {
		logger.Error("Error listing projects", zap.Error(err), zap.Int("limit", limit), zap.Int("offset", offset))
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// SearchProjects searches for projects based on given criteria
func (s *ProjectService) SearchProjects(ctx context.Context, criteria model.ProjectSearchCriteria) ([]*model.Project, error) {
	projects, err := s.projectDAO.SearchProjects(ctx, criteria)
	if err != nil {
		logger.Error("Error searching projects", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to search projects: %w", err)
	}
	return projects, nil
}

// GetProgress computes completion statistics for a project across the test
// case catalog. Results are cached until the next assessment mutation.
func (s *ProjectService) GetProgress(ctx context.Context, projectID string) (*model.ProjectProgress, error) {
	if cached, err := s.cacheService.GetProjectProgress(ctx, projectID); err == nil && cached != nil {
		return cached, nil
	}

	if _, err := s.GetProject(ctx, projectID); err != nil {
		return nil, err
	}

	assessments, err := s.assessmentDAO.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	progress := computeProgress(projectID, s.catalog.TestCases(), assessments, s.clock.Now())

	if err := s.cacheService.SetProjectProgress(ctx, *progress); err != nil {
		logger.Warn("Failed to cache project progress", zap.Error(err), zap.String("projectID", projectID))
	}
	return progress, nil
}

func computeProgress(projectID string, testCases []*model.TestCase, assessments []model.Assessment, now time.Time) *model.ProjectProgress {
	// Latest assessment per test case wins.
	latest := make(map[string]model.Assessment, len(assessments))
	for _, a := range assessments {
		if prev, ok := latest[a.TestCaseID]; !ok || a.AssessedAt.After(prev.AssessedAt) {
			latest[a.TestCaseID] = a
		}
	}

	progress := &model.ProjectProgress{
		ProjectID:  projectID,
		ComputedAt: now,
	}
	byMechanism := make(map[string]*model.MechanismProgress)
	order := []string{}

	for _, tc := range testCases {
		mp, ok := byMechanism[tc.Mechanism]
		if !ok {
			mp = &model.MechanismProgress{Mechanism: tc.Mechanism}
			byMechanism[tc.Mechanism] = mp
			order = append(order, tc.Mechanism)
		}
		progress.Overview.Total++
		mp.Total++

		a, assessed := latest[tc.ID]
		if !assessed {
			progress.Overview.Pending++
			continue
		}
		progress.Overview.Completed++
		mp.Completed++
		switch a.Result {
		case model.ResultPass:
			progress.Overview.Passed++
			mp.Passed++
		case model.ResultFail:
			progress.Overview.Failed++
			mp.Failed++
		case model.ResultNA:
			progress.Overview.NotApplicable++
			mp.NotApplicable++
		}
	}

	for _, mech := range order {
		progress.ByMechanism = append(progress.ByMechanism, *byMechanism[mech])
	}
	if progress.Overview.Total > 0 {
		progress.CompletionRate = int(float64(progress.Overview.Completed)/float64(progress.Overview.Total)*100 + 0.5)
	}
	return progress
}
