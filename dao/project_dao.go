// dao/project_dao.go
package dao

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/en18031/conformity/audit"
	"github.com/en18031/conformity/db"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
)

const projectCollection = "projects"

type ProjectDAO struct {
	Store        db.KV
	AuditService audit.Service
}

func NewProjectDAO(store db.KV, auditService audit.Service) *ProjectDAO {
	return &ProjectDAO{Store: store, AuditService: auditService}
}

// CreateProject stores a new project record. The caller supplies the ID.
func (dao *ProjectDAO) CreateProject(ctx context.Context, project model.Project, userID string) (string, error) {
	start := time.Now()
	logger.Info("Creating new project", zap.String("projectName", project.Name))

	if _, exists, err := dao.Store.Get(ctx, projectCollection, project.ID); err != nil {
		return "", conf_errors.ErrDatabaseOperation
	} else if exists {
		return "", conf_errors.ErrProjectConflict
	}

	data, err := json.Marshal(project)
	if err != nil {
		return "", conf_errors.ErrInvalidProjectData
	}
	if err := dao.Store.Put(ctx, projectCollection, project.ID, data); err != nil {
		logger.Error("Failed to create project", zap.Error(err), zap.String("projectID", project.ID))
		return "", conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionProjectCreated, project.ID, project.ID, userID, project)

	logger.Info("Project created successfully",
		zap.String("projectID", project.ID),
		zap.Duration("duration", time.Since(start)))
	return project.ID, nil
}

// UpdateProject replaces an existing project record and bumps its version.
func (dao *ProjectDAO) UpdateProject(ctx context.Context, project model.Project, userID string) (*model.Project, error) {
	start := time.Now()
	logger.Info("Updating project", zap.String("projectID", project.ID))

	existing, err := dao.GetProject(ctx, project.ID)
	if err != nil {
		return nil, err
	}

	project.CreatedAt = existing.CreatedAt
	project.CreatedBy = existing.CreatedBy
	project.Version = existing.Version + 1
	project.UpdatedAt = time.Now().UTC()

	data, err := json.Marshal(project)
	if err != nil {
		return nil, conf_errors.ErrInvalidProjectData
	}
	if err := dao.Store.Put(ctx, projectCollection, project.ID, data); err != nil {
		logger.Error("Failed to update project", zap.Error(err), zap.String("projectID", project.ID))
		return nil, conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionProjectUpdated, project.ID, project.ID, userID, project)

	logger.Info("Project updated successfully",
		zap.String("projectID", project.ID),
		zap.Int("version", project.Version),
		zap.Duration("duration", time.Since(start)))
	return &project, nil
}

// DeleteProject removes a project record.
func (dao *ProjectDAO) DeleteProject(ctx context.Context, projectID string, userID string) error {
	logger.Info("Deleting project", zap.String("projectID", projectID))

	if _, err := dao.GetProject(ctx, projectID); err != nil {
		return err
	}
	if err := dao.Store.Delete(ctx, projectCollection, projectID); err != nil {
		logger.Error("Failed to delete project", zap.Error(err), zap.String("projectID", projectID))
		return conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionProjectDeleted, projectID, projectID, userID, nil)
	return nil
}

// GetProject retrieves a project by ID.
func (dao *ProjectDAO) GetProject(ctx context.Context, projectID string) (*model.Project, error) {
	data, exists, err := dao.Store.Get(ctx, projectCollection, projectID)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}
	if !exists {
		return nil, conf_errors.ErrProjectNotFound
	}

	var project model.Project
	if err := json.Unmarshal(data, &project); err != nil {
		logger.Error("Failed to unmarshal project", zap.Error(err), zap.String("projectID", projectID))
		return nil, conf_errors.ErrDatabaseOperation
	}
	return &project, nil
}

// ListProjects returns all projects sorted by creation time, newest first.
func (dao *ProjectDAO) ListProjects(ctx context.Context, limit, offset int) ([]*model.Project, error) {
	records, err := dao.Store.List(ctx, projectCollection)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}

	projects := make([]*model.Project, 0, len(records))
	for id, data := range records {
		var project model.Project
		if err := json.Unmarshal(data, &project); err != nil {
			logger.Warn("Skipping unreadable project record", zap.String("projectID", id), zap.Error(err))
			continue
		}
		projects = append(projects, &project)
	}
	sort.Slice(projects, func(i, j int) bool {
		return projects[i].CreatedAt.After(projects[j].CreatedAt)
	})

	return paginate(projects, limit, offset), nil
}

// SearchProjects filters projects by the given criteria.
func (dao *ProjectDAO) SearchProjects(ctx context.Context, criteria model.ProjectSearchCriteria) ([]*model.Project, error) {
	projects, err := dao.ListProjects(ctx, 0, 0)
	if err != nil {
		return nil, err
	}

	out := make([]*model.Project, 0, len(projects))
	for _, p := range projects {
		if criteria.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(criteria.Name)) {
			continue
		}
		if criteria.Status != "" && p.Status != criteria.Status {
			continue
		}
		if criteria.Manufacturer != "" && !strings.EqualFold(p.Manufacturer, criteria.Manufacturer) {
			continue
		}
		if criteria.TestStandard != "" && p.TestStandard != criteria.TestStandard {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (dao *ProjectDAO) logAudit(ctx context.Context, action, resourceID, projectID, userID string, details interface{}) {
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	if err := dao.AuditService.LogChange(ctx, audit.AuditLog{
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Action:        action,
		ResourceType:  "project",
		ResourceID:    resourceID,
		ProjectID:     projectID,
		ChangeDetails: raw,
	}); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", action))
	}
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
