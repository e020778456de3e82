// service/conceptual_service.go
package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/engine"
	conf_errors "github.com/en18031/conformity/errors"
	logger "github.com/en18031/conformity/logging"
	"github.com/en18031/conformity/model"
	"github.com/en18031/conformity/session"
	"github.com/en18031/conformity/util"
)

// SessionState is the serializable view of a live session returned to the
// browser after every mutation.
type SessionState struct {
	SessionID    string               `json:"session_id"`
	ProjectID    string               `json:"project_id"`
	TestCaseID   string               `json:"test_case_id"`
	Phase        session.Phase        `json:"phase"`
	Assets       []model.Asset        `json:"assets"`
	CurrentAsset *model.Asset         `json:"current_asset,omitempty"`
	CurrentNode  *catalog.DecisionNode `json:"current_node,omitempty"`
	Terminal     bool                 `json:"terminal"`
	Verdict      model.Verdict        `json:"verdict,omitempty"`
	Results      []model.AssetResult  `json:"results"`
}

// IConceptualService defines the interface for conceptual assessment sessions
type IConceptualService interface {
	StartSession(ctx context.Context, projectID, testCaseID string) (*SessionState, error)
	AddAsset(ctx context.Context, sessionID string, asset model.Asset) (*SessionState, error)
	RemoveAsset(ctx context.Context, sessionID, assetID string) (*SessionState, error)
	BeginAssessment(ctx context.Context, sessionID string) (*SessionState, error)
	Answer(ctx context.Context, sessionID string, answer engine.Answer) (*SessionState, error)
	RestartAsset(ctx context.Context, sessionID string) (*SessionState, error)
	CommitAsset(ctx context.Context, sessionID, justification, userID string) (*SessionState, *model.Assessment, error)
	BackToCollecting(ctx context.Context, sessionID string) (*SessionState, error)
	GetState(ctx context.Context, sessionID string) (*SessionState, error)
	AbandonSession(ctx context.Context, sessionID string) error
}

// ConceptualService orchestrates decision-tree sessions and persists the
// aggregated outcome as an assessment when the last asset commits.
type ConceptualService struct {
	manager           *session.Manager
	catalog           *catalog.Catalog
	assessmentService IAssessmentService
	projectService    IProjectService
	idGen             util.IDGenerator
}

var _ IConceptualService = &ConceptualService{}

func NewConceptualService(
	manager *session.Manager,
	cat *catalog.Catalog,
	assessmentService IAssessmentService,
	projectService IProjectService,
	idGen util.IDGenerator,
) *ConceptualService {
	return &ConceptualService{
		manager:           manager,
		catalog:           cat,
		assessmentService: assessmentService,
		projectService:    projectService,
		idGen:             idGen,
	}
}

// StartSession creates a session for one conceptual test case of a project.
func (s *ConceptualService) StartSession(ctx context.Context, projectID, testCaseID string) (*SessionState, error) {
	if _, err := s.projectService.GetProject(ctx, projectID); err != nil {
		return nil, err
	}
	tc, err := s.catalog.TestCase(testCaseID)
	if err != nil {
		return nil, err
	}
	if tc.AssessmentType != model.TypeConceptual {
		return nil, conf_errors.ErrInvalidAssessmentData
	}
	tree, err := s.catalog.TreeForTestCase(testCaseID)
	if err != nil {
		return nil, err
	}

	sess := s.manager.Create(s.idGen.NewID(), projectID, testCaseID, tree)
	logger.Info("Conceptual assessment session started",
		zap.String("sessionID", sess.ID),
		zap.String("projectID", projectID),
		zap.String("testCaseID", testCaseID))
	return snapshot(sess), nil
}

// AddAsset registers an asset with a collecting session.
func (s *ConceptualService) AddAsset(ctx context.Context, sessionID string, asset model.Asset) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.AddAsset(asset); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// RemoveAsset unregisters an asset from a collecting session.
func (s *ConceptualService) RemoveAsset(ctx context.Context, sessionID, assetID string) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.RemoveAsset(assetID); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// BeginAssessment freezes the asset list and starts the first walk.
func (s *ConceptualService) BeginAssessment(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Start(); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// Answer advances the current asset's walk by one decision.
func (s *ConceptualService) Answer(ctx context.Context, sessionID string, answer engine.Answer) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Answer(answer); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// RestartAsset restarts the current asset's walk from the tree root.
func (s *ConceptualService) RestartAsset(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.RestartEvaluation(); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// CommitAsset records the current asset's verdict. When the last asset
// commits, the aggregated outcome is persisted as an assessment and the
// session is removed.
func (s *ConceptualService) CommitAsset(ctx context.Context, sessionID, justification, userID string) (*SessionState, *model.Assessment, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, nil, err
	}
	if err := sess.Commit(justification); err != nil {
		return nil, nil, err
	}

	state := snapshot(sess)
	if sess.Phase() != session.PhaseCompleted {
		return state, nil, nil
	}

	verdict, summary, comments, err := sess.Outcome()
	if err != nil {
		return nil, nil, err
	}

	assessment, err := s.assessmentService.CreateAssessment(ctx, model.Assessment{
		ProjectID:     sess.ProjectID,
		TestCaseID:    sess.TestCaseID,
		Result:        verdict.Result(),
		Justification: summary,
		Comments:      comments,
	}, userID)
	if err != nil {
		// The session stays alive so the operator can retry persistence.
		logger.Error("Failed to persist conceptual assessment",
			zap.Error(err),
			zap.String("sessionID", sessionID))
		return state, nil, err
	}

	s.manager.Remove(sessionID)
	logger.Info("Conceptual assessment completed",
		zap.String("sessionID", sessionID),
		zap.String("assessmentID", assessment.ID),
		zap.String("verdict", string(verdict)))
	return state, assessment, nil
}

// BackToCollecting abandons the assessment phase, discarding all results.
func (s *ConceptualService) BackToCollecting(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.BackToCollecting(); err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// GetState returns the current view of a live session.
func (s *ConceptualService) GetState(ctx context.Context, sessionID string) (*SessionState, error) {
	sess, err := s.manager.Get(sessionID)
	if err != nil {
		return nil, err
	}
	return snapshot(sess), nil
}

// AbandonSession drops a session without persisting anything.
func (s *ConceptualService) AbandonSession(ctx context.Context, sessionID string) error {
	if _, err := s.manager.Get(sessionID); err != nil {
		return err
	}
	s.manager.Remove(sessionID)
	return nil
}

func snapshot(sess *session.Session) *SessionState {
	state := &SessionState{
		SessionID:  sess.ID,
		ProjectID:  sess.ProjectID,
		TestCaseID: sess.TestCaseID,
		Phase:      sess.Phase(),
		Assets:     sess.Assets(),
		Results:    sess.Results(),
	}

	if asset, err := sess.CurrentAsset(); err == nil {
		state.CurrentAsset = &asset
	}
	if eval, err := sess.Evaluation(); err == nil {
		state.CurrentNode = eval.Current()
		state.Terminal = eval.Terminal()
		if eval.Terminal() {
			state.Verdict = eval.Verdict()
		}
	}
	return state
}

// IsSessionError reports whether err is one of the session flow errors that
// map to a client fault rather than a server fault.
func IsSessionError(err error) bool {
	return errors.Is(err, conf_errors.ErrEmptyAssetList) ||
		errors.Is(err, conf_errors.ErrAssetListFrozen) ||
		errors.Is(err, conf_errors.ErrDuplicateAsset) ||
		errors.Is(err, conf_errors.ErrAssetNotFound) ||
		errors.Is(err, conf_errors.ErrIncompleteAssessment) ||
		errors.Is(err, conf_errors.ErrSessionCompleted)
}
