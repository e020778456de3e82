// session/session.go
package session

import (
	"strings"

	"github.com/en18031/conformity/catalog"
	"github.com/en18031/conformity/engine"
	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// Phase is the orchestrator state for one conceptual assessment session.
type Phase string

const (
	PhaseCollecting Phase = "collecting_assets"
	PhaseAssessing  Phase = "assessing_asset"
	PhaseCompleted  Phase = "completed"
)

// Session walks an ordered asset list through one decision tree, collecting
// a per-asset result for each, and aggregates the verdicts once the last
// asset commits. All mutation happens on the single orchestrating flow that
// owns the session; the Manager serializes access per session id.
type Session struct {
	ID         string
	ProjectID  string
	TestCaseID string

	tree    *catalog.Tree
	phase   Phase
	assets  []model.Asset
	index   int
	eval    *engine.Evaluation
	results []model.AssetResult

	verdict model.Verdict
}

// New starts a session in the asset-collection phase.
func New(id, projectID, testCaseID string, tree *catalog.Tree) *Session {
	return &Session{
		ID:         id,
		ProjectID:  projectID,
		TestCaseID: testCaseID,
		tree:       tree,
		phase:      PhaseCollecting,
	}
}

func (s *Session) Phase() Phase { return s.phase }

// Assets returns the registered assets in intake order.
func (s *Session) Assets() []model.Asset {
	out := make([]model.Asset, len(s.assets))
	copy(out, s.assets)
	return out
}

// Results returns the per-asset results committed so far.
func (s *Session) Results() []model.AssetResult {
	out := make([]model.AssetResult, len(s.results))
	copy(out, s.results)
	return out
}

// AddAsset registers an asset for assessment. Permitted only while the
// session is still collecting; ids must be unique within the session.
func (s *Session) AddAsset(asset model.Asset) error {
	if s.phase != PhaseCollecting {
		return conf_errors.ErrAssetListFrozen
	}
	if asset.ID == "" || asset.Name == "" {
		return conf_errors.ErrIncompleteAssessment
	}
	for _, a := range s.assets {
		if a.ID == asset.ID {
			return conf_errors.ErrDuplicateAsset
		}
	}
	if asset.Type == "" {
		asset.Type = model.AssetSecurity
	}
	s.assets = append(s.assets, asset)
	return nil
}

// RemoveAsset unregisters an asset. Permitted only while collecting; once
// assessment starts the list is frozen.
func (s *Session) RemoveAsset(assetID string) error {
	if s.phase != PhaseCollecting {
		return conf_errors.ErrAssetListFrozen
	}
	for i, a := range s.assets {
		if a.ID == assetID {
			s.assets = append(s.assets[:i], s.assets[i+1:]...)
			return nil
		}
	}
	return conf_errors.ErrAssetNotFound
}

// Start freezes the asset list and begins assessing the first asset.
// Starting with zero assets is a blocked no-op, not a state change.
func (s *Session) Start() error {
	if s.phase != PhaseCollecting {
		return conf_errors.ErrAssetListFrozen
	}
	if len(s.assets) == 0 {
		return conf_errors.ErrEmptyAssetList
	}
	s.phase = PhaseAssessing
	s.index = 0
	s.eval = engine.NewEvaluation(s.tree)
	return nil
}

// CurrentAsset returns the asset under assessment.
func (s *Session) CurrentAsset() (model.Asset, error) {
	if s.phase != PhaseAssessing {
		return model.Asset{}, conf_errors.ErrSessionCompleted
	}
	return s.assets[s.index], nil
}

// Evaluation exposes the in-progress decision-tree walk for the current
// asset.
func (s *Session) Evaluation() (*engine.Evaluation, error) {
	if s.phase != PhaseAssessing {
		return nil, conf_errors.ErrSessionCompleted
	}
	return s.eval, nil
}

// Answer advances the current asset's decision-tree walk by one step.
func (s *Session) Answer(answer engine.Answer) error {
	if s.phase != PhaseAssessing {
		return conf_errors.ErrSessionCompleted
	}
	return s.eval.Advance(answer)
}

// RestartEvaluation discards the current asset's walk and returns to the
// tree root. Committed results of earlier assets are untouched.
func (s *Session) RestartEvaluation() error {
	if s.phase != PhaseAssessing {
		return conf_errors.ErrSessionCompleted
	}
	s.eval.Reset()
	return nil
}

// Commit records the current asset's result and moves on. The commit is
// blocked until the walk reached an outcome and a non-empty justification
// was supplied. Committing the last asset aggregates and completes the
// session.
func (s *Session) Commit(justification string) error {
	if s.phase != PhaseAssessing {
		return conf_errors.ErrSessionCompleted
	}
	justification = strings.TrimSpace(justification)
	if !s.eval.Terminal() || justification == "" {
		return conf_errors.ErrIncompleteAssessment
	}

	asset := s.assets[s.index]
	s.results = append(s.results, model.AssetResult{
		AssetID:       asset.ID,
		AssetName:     asset.Name,
		DecisionNode:  s.eval.DecidingNode(),
		Verdict:       s.eval.Verdict(),
		Justification: justification,
		DecisionPath:  s.eval.Path(),
	})

	if s.index < len(s.assets)-1 {
		s.index++
		s.eval = engine.NewEvaluation(s.tree)
		return nil
	}

	verdict, err := engine.Aggregate(s.results)
	if err != nil {
		return err
	}
	s.verdict = verdict
	s.phase = PhaseCompleted
	return nil
}

// BackToCollecting abandons the assessment phase: all committed results are
// discarded and the asset list unfreezes. The discard is unconditional;
// warning the operator is the caller's job.
func (s *Session) BackToCollecting() error {
	if s.phase != PhaseAssessing {
		return conf_errors.ErrSessionCompleted
	}
	s.phase = PhaseCollecting
	s.index = 0
	s.eval = nil
	s.results = nil
	return nil
}

// Outcome returns the aggregated verdict and the synthesized justification
// and comments of a completed session.
func (s *Session) Outcome() (model.Verdict, string, string, error) {
	if s.phase != PhaseCompleted {
		return "", "", "", conf_errors.ErrIncompleteAssessment
	}
	return s.verdict, engine.SummarizeJustification(s.results), engine.SummarizeComments(s.results), nil
}
