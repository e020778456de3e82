// dao/evidence_dao.go
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

const evidenceCollection = "evidence"

type EvidenceDAO struct {
	Store        db.KV
	AuditService audit.Service
}

func NewEvidenceDAO(store db.KV, auditService audit.Service) *EvidenceDAO {
	return &EvidenceDAO{Store: store, AuditService: auditService}
}

// CreateEvidence stores metadata for an uploaded evidence file.
func (dao *EvidenceDAO) CreateEvidence(ctx context.Context, file model.EvidenceFile, userID string) (string, error) {
	logger.Info("Storing evidence metadata",
		zap.String("fileName", file.FileName),
		zap.String("assessmentID", file.AssessmentID))

	data, err := json.Marshal(file)
	if err != nil {
		return "", conf_errors.ErrDatabaseOperation
	}
	if err := dao.Store.Put(ctx, evidenceCollection, file.ID, data); err != nil {
		logger.Error("Failed to store evidence metadata", zap.Error(err), zap.String("evidenceID", file.ID))
		return "", conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionEvidenceUploaded, file.ID, userID, file)
	return file.ID, nil
}

// DeleteEvidence removes evidence metadata.
func (dao *EvidenceDAO) DeleteEvidence(ctx context.Context, evidenceID string, userID string) error {
	if _, err := dao.GetEvidence(ctx, evidenceID); err != nil {
		return err
	}
	if err := dao.Store.Delete(ctx, evidenceCollection, evidenceID); err != nil {
		logger.Error("Failed to delete evidence metadata", zap.Error(err), zap.String("evidenceID", evidenceID))
		return conf_errors.ErrDatabaseOperation
	}

	dao.logAudit(ctx, audit.ActionEvidenceDeleted, evidenceID, userID, nil)
	return nil
}

// GetEvidence retrieves evidence metadata by ID.
func (dao *EvidenceDAO) GetEvidence(ctx context.Context, evidenceID string) (*model.EvidenceFile, error) {
	data, exists, err := dao.Store.Get(ctx, evidenceCollection, evidenceID)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}
	if !exists {
		return nil, conf_errors.ErrEvidenceNotFound
	}

	var file model.EvidenceFile
	if err := json.Unmarshal(data, &file); err != nil {
		logger.Error("Failed to unmarshal evidence metadata", zap.Error(err), zap.String("evidenceID", evidenceID))
		return nil, conf_errors.ErrDatabaseOperation
	}
	return &file, nil
}

// ListByAssessment returns all evidence attached to one assessment,
// oldest upload first.
func (dao *EvidenceDAO) ListByAssessment(ctx context.Context, assessmentID string) ([]model.EvidenceFile, error) {
	records, err := dao.Store.List(ctx, evidenceCollection)
	if err != nil {
		return nil, conf_errors.ErrDatabaseOperation
	}

	files := make([]model.EvidenceFile, 0, len(records))
	for id, data := range records {
		var f model.EvidenceFile
		if err := json.Unmarshal(data, &f); err != nil {
			logger.Warn("Skipping unreadable evidence record", zap.String("evidenceID", id), zap.Error(err))
			continue
		}
		if f.AssessmentID == assessmentID {
			files = append(files, f)
		}
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.Before(files[j].UploadedAt)
	})
	return files, nil
}

func (dao *EvidenceDAO) logAudit(ctx context.Context, action, resourceID, userID string, details interface{}) {
	var raw json.RawMessage
	if details != nil {
		raw, _ = json.Marshal(details)
	}
	if err := dao.AuditService.LogChange(ctx, audit.AuditLog{
		Timestamp:     time.Now().UTC(),
		UserID:        userID,
		Action:        action,
		ResourceType:  "evidence",
		ResourceID:    resourceID,
		ChangeDetails: raw,
	}); err != nil {
		logger.Warn("Failed to write audit log", zap.Error(err), zap.String("action", action))
	}
}
