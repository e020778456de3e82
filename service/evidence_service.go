// service/evidence_service.go
package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/en18031/conformity/dao"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/util"
)

// IEvidenceService defines the interface for evidence metadata operations
type IEvidenceService interface {
	AttachEvidence(ctx context.Context, file model.EvidenceFile, userID string) (*model.EvidenceFile, error)
	DeleteEvidence(ctx context.Context, evidenceID string, userID string) error
	GetEvidence(ctx context.Context, evidenceID string) (*model.EvidenceFile, error)
	ListByAssessment(ctx context.Context, assessmentID string) ([]model.EvidenceFile, error)
}

// EvidenceService handles business logic for evidence file metadata. File
// bytes never pass through this service; they live in the external blob
// store referenced by StorageURL.
type EvidenceService struct {
	evidenceDAO    *dao.EvidenceDAO
	assessmentDAO  *dao.AssessmentDAO
	idGen          util.IDGenerator
	clock          util.Clock
	validationUtil *util.ValidationUtil
}

var _ IEvidenceService = &EvidenceService{}

func NewEvidenceService(
	evidenceDAO *dao.EvidenceDAO,
	assessmentDAO *dao.AssessmentDAO,
	idGen util.IDGenerator,
	clock util.Clock,
	validationUtil *util.ValidationUtil,
) *EvidenceService {
	return &EvidenceService{
		evidenceDAO:    evidenceDAO,
		assessmentDAO:  assessmentDAO,
		idGen:          idGen,
		clock:          clock,
		validationUtil: validationUtil,
	}
}

// AttachEvidence records evidence metadata and links it to its assessment.
func (s *EvidenceService) AttachEvidence(ctx context.Context, file model.EvidenceFile, userID string) (*model.EvidenceFile, error) {
	if err := s.validationUtil.ValidateEvidenceFile(file); err != nil {
		return nil, fmt.Errorf("%w: %v", conf_errors.ErrInvalidAssessmentData, err)
	}

	assessment, err := s.assessmentDAO.GetAssessment(ctx, file.AssessmentID)
	if err != nil {
		return nil, err
	}

	if file.ID == "" {
		file.ID = s.idGen.NewID()
	}
	if file.FileType == "" {
		file.FileType = classifyFileType(file.FileName)
	}
	file.UploadedAt = s.clock.Now()
	file.UploadedBy = userID

	if _, err := s.evidenceDAO.CreateEvidence(ctx, file, userID); err != nil {
		return nil, err
	}

	assessment.EvidenceFiles = append(assessment.EvidenceFiles, file.ID)
	if _, err := s.assessmentDAO.UpdateAssessment(ctx, *assessment, userID); err != nil {
		logger.Error("Failed to link evidence to assessment",
			zap.Error(err),
			zap.String("evidenceID", file.ID),
			zap.String("assessmentID", assessment.ID))
		return nil, err
	}

	return &file, nil
}

// DeleteEvidence removes evidence metadata and unlinks it from its assessment.
func (s *EvidenceService) DeleteEvidence(ctx context.Context, evidenceID string, userID string) error {
	file, err := s.evidenceDAO.GetEvidence(ctx, evidenceID)
	if err != nil {
		return err
	}

	if err := s.evidenceDAO.DeleteEvidence(ctx, evidenceID, userID); err != nil {
		return err
	}

	assessment, err := s.assessmentDAO.GetAssessment(ctx, file.AssessmentID)
	if err == nil {
		kept := assessment.EvidenceFiles[:0]
		for _, id := range assessment.EvidenceFiles {
			if id != evidenceID {
				kept = append(kept, id)
			}
		}
		assessment.EvidenceFiles = kept
		if _, err := s.assessmentDAO.UpdateAssessment(ctx, *assessment, userID); err != nil {
			logger.Warn("Failed to unlink evidence from assessment",
				zap.Error(err),
				zap.String("evidenceID", evidenceID),
				zap.String("assessmentID", assessment.ID))
		}
	}
	return nil
}

// GetEvidence retrieves evidence metadata by ID
func (s *EvidenceService) GetEvidence(ctx context.Context, evidenceID string) (*model.EvidenceFile, error) {
	return s.evidenceDAO.GetEvidence(ctx, evidenceID)
}

// ListByAssessment retrieves all evidence attached to one assessment
func (s *EvidenceService) ListByAssessment(ctx context.Context, assessmentID string) ([]model.EvidenceFile, error) {
	return s.evidenceDAO.ListByAssessment(ctx, assessmentID)
}

func classifyFileType(fileName string) model.FileType {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".svg":
		return model.FileImage
	case ".log", ".txt":
		return model.FileLog
	case ".pdf", ".doc", ".docx", ".md":
		return model.FileDocument
	case ".json", ".xml", ".csv", ".yaml", ".yml", ".pcap":
		return model.FileData
	case ".mp4", ".mov", ".avi", ".webm":
		return model.FileVideo
	default:
		return model.FileOther
	}
}
