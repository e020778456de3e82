// dao/assessment_dao.go
package dao

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/db"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
)

const assessmentCollection = "assessments"

type AssessmentDAO struct {
	Store        db.KV
	AuditService audit.Service
}

func NewAssessmentDAO(store db.KV, auditService audit.Service) *AssessmentDAO {
	return &AssessmentDAO{Store: store, AuditService: auditService}
}

// CreateAssessment stores a new assessment record.
func (dao *AssessmentDAO) CreateAssessment(ctx context.Context, assessment model.Assessment, userID string) (string, error) {
	start := time.Now()
	logger.Info("Creating new assessment",
		zap.String("projectID", assessment.ProjectID),
		zap.String("testCaseID", assessment.TestCaseID))

	if _, exists, err := dao.Store.Get(ctx, assessmentCollection, assessment.ID); err != nil {
		return "", conf_errors.ErrDatabaseOperation
	} else if exists {
		return "", conf_errors.ErrAssessmentConflict
	}

	data, err := json.Marshal(assessment)
	if err != nil {
		return "", conf_errors.ErrInvalidAssessmentData
	}
	if err := dao.Store.Put(ctx, assessmentCollection, assessment.ID, data); err != nil {
		logger.Error("Failed to create assessment", zap.Error(err), zap.String("assessmentID", assessment.ID))
		return "", conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionAssessmentCreated, assessment.ID, assessment.ProjectID, userID, assessment)

	logger.Info("Assessment created successfully",
		zap.String("assessmentID", assessment.ID),
		zap.Duration("duration", time.Since(start)))
	return assessment.ID, nil
}

// UpdateAssessment replaces an existing assessment record and bumps its version.
func (dao *AssessmentDAO) UpdateAssessment(ctx context.Context, assessment model.Assessment, userID string) (*model.Assessment, error) {
	logger.Info("Updating assessment", zap.String("assessmentID", assessment.ID))

	existing, err := dao.GetAssessment(ctx, assessment.ID)
	if err != nil {
		return nil, err
	}

	assessment.Version = existing.Version + 1

	data, err := json.Marshal(assessment)
	if err != nil {
		return nil, conf_errors.ErrInvalidAssessmentData
	}
	if err := dao.Store.Put(ctx, assessmentCollection, assessment.ID, data); err != nil {
		logger.Error("Failed to update assessment", zap.Error(err), zap.String("assessmentID", assessment.ID))
		return nil, conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionAssessmentUpdated, assessment.ID, assessment.ProjectID, userID, assessment)
	return &assessment, nil
}

// DeleteAssessment removes an assessment record.
func (dao *AssessmentDAO) DeleteAssessment(ctx context.Context, assessmentID string, userID string) error {
	logger.Info("Deleting assessment", zap.String("assessmentID", assessmentID))

	existing, err := dao.GetAssessment(ctx, assessmentID)
	if err != nil {
		return err
	}
	if err := dao.Store.Delete(ctx, assessmentCollection, assessmentID); err != nil {
		logger.Error("Failed to delete assessment", zap.Error(err), zap.String("assessmentID", assessmentID))
		return conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionAssessmentDeleted, assessmentID, existing.ProjectID, userID, nil)
	return nil
}

// GetAssessment retrieves an assessment by ID.
func (dao *AssessmentDAO) GetAssessment(ctx context.Context, assessmentID string) (*model.Assessment, error) {
	data, exists, err := dao.Store.Get(ctx, assessmentCollection, assessmentID)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}
	if !exists {
		return nil, conf_errors.ErrAssessmentNotFound
	}

	var assessment model.Assessment
	if err := json.Unmarshal(data, &assessment); err != nil {
		logger.Error("Failed to unmarshal assessment", zap.Error(err), zap.String("assessmentID", assessmentID))
		return nil, conf_errors.ErrDatabaseOperation
	}
	return &assessment, nil
}

// ListAssessments returns every stored assessment, newest first.
func (dao *AssessmentDAO) ListAssessments(ctx context.Context, limit, offset int) ([]model.Assessment, error) {
	records, err := dao.Store.List(ctx, assessmentCollection)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}

	assessments := make([]model.Assessment, 0, len(records))
	for id, data := range records {
		var a model.Assessment
		if err := json.Unmarshal(data, &a); err != nil {
			logger.Warn("Skipping unreadable assessment record", zap.String("assessmentID", id), zap.Error(err))
			continue
		}
		assessments = append(assessments, a)
	}
	sort.Slice(assessments, func(i, j int) bool {
		return assessments[i].AssessedAt.After(assessments[j].AssessedAt)
	})

	return paginate(assessments, limit, offset), nil
}

// ListByProject returns all assessments belonging to one project.
func (dao *AssessmentDAO) ListByProject(ctx context.Context, projectID string) ([]model.Assessment, error) {
	all, err := dao.ListAssessments(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]model.Assessment, 0, len(all))
	for _, a := range all {
		if a.ProjectID == projectID {
			out = append(out, a)
		}
	}
	return out, nil
}

// SearchAssessments filters assessments by the given criteria.
func (dao *AssessmentDAO) SearchAssessments(ctx context.Context, criteria model.AssessmentSearchCriteria) ([]model.Assessment, error) {
	all, err := dao.ListAssessments(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	out := make([]model.Assessment, 0, len(all))
	for _, a := range all {
		if criteria.ProjectID != "" && a.ProjectID != criteria.ProjectID {
			continue
		}
		if criteria.TestCaseID != "" && a.TestCaseID != criteria.TestCaseID {
			continue
		}
		if criteria.Result != "" && a.Result != criteria.Result {
			continue
		}
		if criteria.Status != "" && a.Status != criteria.Status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (dao *AssessmentDAO) logAudit(ctx context.Context, action, resourceID, projectID, userID string, details interface{}) {
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	if err := dao.AuditService.LogChange(ctx, audit.AuditLog{
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Action:        action,
		ResourceType:  "assessment",
		ResourceID:    resourceID,
		ProjectID:     projectID,
		ChangeDetails: raw,
	}); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", action))
	}
}
