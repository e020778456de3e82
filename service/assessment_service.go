// service/assessment_service.go
package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/dao"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/util"
)

// IAssessmentService defines the interface for assessment operations
type IAssessmentService interface {
	CreateAssessment(ctx context.Context, assessment model.Assessment, userID string) (*model.Assessment, error)
	UpdateAssessment(ctx context.Context, assessment model.Assessment, userID string) (*model.Assessment, error)
	DeleteAssessment(ctx context.Context, assessmentID string, userID string) error
	GetAssessment(ctx context.Context, assessmentID string) (*model.Assessment, error)
	ListByProject(ctx context.Context, projectID string) ([]model.Assessment, error)
	SearchAssessments(ctx context.Context, criteria model.AssessmentSearchCriteria) ([]model.Assessment, error)
	BulkCreateAssessments(ctx context.Context, assessments []model.Assessment, userID string) ([]string, error)
}

// AssessmentService handles business logic for assessment operations
type AssessmentService struct {
	assessmentDAO   *dao.AssessmentDAO
	catalog         *catalog.Catalog
	idGen           util.IDGenerator
	clock           util.Clock
	validationUtil  *util.ValidationUtil
	cacheService    *util.CacheService
	notificationSvc *util.NotificationService
	eventBus        *util.EventBus
}

var _ IAssessmentService = &AssessmentService{}

// NewAssessmentService creates a new instance of AssessmentService
func NewAssessmentService(
	assessmentDAO *dao.AssessmentDAO,
	cat *catalog.Catalog,
	idGen util.IDGenerator,
	clock util.Clock,
	validationUtil *util.ValidationUtil,
	cacheService *util.CacheService,
	notificationSvc *util.NotificationService,
	eventBus *util.EventBus,
) *AssessmentService {
	service := &AssessmentService{
		assessmentDAO:   assessmentDAO,
		catalog:         cat,
		idGen:           idGen,
		clock:           clock,
		validationUtil:  validationUtil,
		cacheService:    cacheService,
		notificationSvc: notificationSvc,
		eventBus:        eventBus,
	}

	eventBus.Subscribe("assessment.created", service.handleAssessmentChanged)
	eventBus.Subscribe("assessment.updated", service.handleAssessmentChanged)

	return service
}

func (s *AssessmentService) handleAssessmentChanged(ctx context.Context, event util.Event) error {
	assessment := event.Payload.(model.Assessment)
	logger.Info("Assessment change event received",
		zap.String("eventType", event.Type),
		zap.String("assessmentID", assessment.ID))

	changeType := "created"
	if event.Type == "assessment.updated" {
		changeType = "updated"
	}
	if err := s.notificationSvc.NotifyAssessmentChange(ctx, changeType, assessment); err != nil {
		logger.Warn("Failed to send assessment notification", zap.Error(err), zap.String("assessmentID", assessment.ID))
	}
	if err := s.cacheService.DeleteProjectProgress(ctx, assessment.ProjectID); err != nil {
		logger.Warn("Failed to invalidate progress cache", zap.Error(err), zap.String("projectID", assessment.ProjectID))
	}
	return nil
}

// CreateAssessment handles the creation of a new assessment
func (s *AssessmentService) CreateAssessment(ctx context.Context, assessment model.Assessment, userID string) (*model.Assessment, error) {
	if err := s.validationUtil.ValidateAssessment(assessment); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidAssessmentData, err)
	}
	if _, err := s.catalog.TestCase(assessment.TestCaseID); err != nil {
		return nil, fmt.Errorf("%w: %s", conf_errors.ErrTestCaseNotFound, assessment.TestCaseID)
	}

	if assessment.ID == "" {
		assessment.ID = s.idGen.NewID()
	}
	if assessment.AssessedAt.IsZero() {
		assessment.AssessedAt = s.clock.Now()
	}
	if assessment.AssessedBy == "" {
		assessment.AssessedBy = userID
	}
	if assessment.Status == "" {
		assessment.Status = model.AssessmentCompleted
	}
	assessment.Version = 1

	assessmentID, err := s.assessmentDAO.CreateAssessment(ctx, assessment, userID)
	if err != nil {
		logger.Error("Error creating assessment", zap.Error(err), zap.String("userID", userID))
		return nil, err
	}
	assessment.ID = assessmentID

	s.eventBus.Publish(ctx, "assessment.created", assessment)

	logger.Info("Assessment created successfully",
		zap.String("assessmentID", assessmentID),
		zap.String("testCaseID", assessment.TestCaseID),
		zap.String("userID", userID))
	return &assessment, nil
}

// UpdateAssessment handles updates to an existing assessment
func (s *AssessmentService) UpdateAssessment(ctx context.Context, assessment model.Assessment, userID string) (*model.Assessment, error) {
	if err := s.validationUtil.ValidateAssessment(assessment); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidAssessmentData, err)
	}

	updated, err := s.assessmentDAO.UpdateAssessment(ctx, assessment, userID)
	if err != nil {
		logger.Error("Error updating assessment", zap.Error(err), zap.String("assessmentID", assessment.ID))
		return nil, err
	}

	s.eventBus.Publish(ctx, "assessment.updated", *updated)
	return updated, nil
}

// DeleteAssessment handles the deletion of an assessment
func (s *AssessmentService) DeleteAssessment(ctx context.Context, assessmentID string, userID string) error {
	assessment, err := s.assessmentDAO.GetAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}

	if err := s.assessmentDAO.DeleteAssessment(ctx, assessmentID, userID); err != nil {
		logger.Error("Error deleting assessment", zap.Error(err), zap.String("assessmentID", assessmentID))
		return err
	}

	if err := s.cacheService.DeleteProjectProgress(ctx, assessment.ProjectID); err != nil {
		logger.Warn("Failed to invalidate progress cache", zap.Error(err), zap.String("projectID", assessment.ProjectID))
	}
	return nil
}

// GetAssessment retrieves an assessment by its ID
func (s *AssessmentService) GetAssessment(ctx context.Context, assessmentID string) (*model.Assessment, error) {
	assessment, err := s.assessmentDAO.GetAssessment(ctx, assessmentID)
	if err != nil {
		if errors.Is(err, conf_errors.ErrAssessmentNotFound) {
			return nil, conf_errors.ErrAssessmentNotFound
		}
		logger.Error("Error retrieving assessment", zap.Error(err), zap.String("assessmentID", assessmentID))
		return nil, conf_errors.ErrInternalServer
	}
	return assessment, nil
}

// ListByProject retrieves all assessments of a project
func (s *AssessmentService) ListByProject(ctx context.Context, projectID string) ([]model.Assessment, error) {
	assessments, err := s.assessmentDAO.ListByProject(ctx, projectID)
	if err != nil {
		logger.Error("Error listing assessments", zap.Error(err), zap.String("projectID", projectID))
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	return assessments, nil
}

// SearchAssessments searches for assessments based on given criteria
func (s *AssessmentService) SearchAssessments(ctx context.Context, criteria model.AssessmentSearchCriteria) ([]model.Assessment, error) {
	assessments, err := s.assessmentDAO.SearchAssessments(ctx, criteria)
	if err != nil {
		logger.Error("Error searching assessments", zap.Error(err), zap.Any("criteria", criteria))
		return nil, fmt.Errorf("failed to search assessments: %w", err)
	}
	return assessments, nil
}

// BulkCreateAssessments creates multiple assessments in parallel
func (s *AssessmentService) BulkCreateAssessments(ctx context.Context, assessments []model.Assessment, userID string) ([]string, error) {
	g, ctx := errgroup.WithContext(ctx)
	assessmentIDs := make([]string, len(assessments))

	// Limit concurrency to avoid overwhelming the store
	semaphore := make(chan struct{}, 10)

	for i, assessment := range assessments {
		i, assessment := i, assessment
		g.Go(func() error {
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			created, err := s.CreateAssessment(ctx, assessment, userID)
			if err != nil {
				return err
			}
			assessmentIDs[i] = created.ID
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("Error in bulk create assessments", zap.Error(err), zap.String("userID", userID))
		return nil, fmt.Errorf("failed to bulk create assessments: %w", err)
	}

	logger.Info("Bulk create assessments completed", zap.Int("count", len(assessmentIDs)), zap.String("userID", userID))
	return assessmentIDs, nil
}
