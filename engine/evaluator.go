// engine/evaluator.go
package engine

import (
	"fmt"

	"github.com/en18031/conformity/catalog"
	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

// Answer is one yes/no choice at a decision node.
type Answer string

const (
	AnswerYes Answer = "yes"
	AnswerNo  Answer = "no"
)

// Evaluation is a resumable walk of one decision tree. The walk pauses at
// every decision node until the operator supplies an answer; Advance is the
// single suspension point.
type Evaluation struct {
	tree *catalog.Tree

	currentID    string
	path         []string
	lastDecision string
	verdict      model.Verdict
	terminal     bool
}

// NewEvaluation starts a walk at the tree's root.
func NewEvaluation(tree *catalog.Tree) *Evaluation {
	return &Evaluation{
		tree:      tree,
		currentID: tree.RootID,
	}
}

// Current returns the node the walk is paused at.
func (e *Evaluation) Current() *catalog.DecisionNode {
	return e.tree.Node(e.currentID)
}

// Terminal reports whether an outcome node has been reached.
func (e *Evaluation) Terminal() bool {
	return e.terminal
}

// Verdict returns the outcome verdict once the walk is terminal.
func (e *Evaluation) Verdict() model.Verdict {
	return e.verdict
}

// Path returns the ordered node ids visited so far, including the outcome
// node once terminal.
func (e *Evaluation) Path() []string {
	out := make([]string, len(e.path))
	copy(out, e.path)
	return out
}

// DecidingNode returns the id of the decision node whose answer produced the
// verdict: the last decision node on the path.
func (e *Evaluation) DecidingNode() string {
	return e.lastDecision
}

// Advance applies one answer at the current decision node and moves the walk
// along the chosen edge. Any answer other than yes or no leaves the walk
// suspended where it is. Advancing a terminal walk is a no-op.
func (e *Evaluation) Advance(answer Answer) error {
	if e.terminal {
		return nil
	}
	if answer != AnswerYes && answer != AnswerNo {
		return nil
	}
	if len(e.path) >= e.tree.Depth() {
		return fmt.Errorf("%w: path exceeded depth %d of tree %s", conf_errors.ErrMalformedDecisionTree, e.tree.Depth(), e.tree.ID)
	}

	node := e.Current()
	if node == nil {
		return fmt.Errorf("%w: node %s missing from tree %s", conf_errors.ErrMalformedDecisionTree, e.currentID, e.tree.ID)
	}
	if node.Kind != catalog.KindDecision {
		return fmt.Errorf("%w: cannot answer at outcome node %s", conf_errors.ErrMalformedDecisionTree, node.ID)
	}

	e.path = append(e.path, node.ID)
	e.lastDecision = node.ID

	next := node.No
	if answer == AnswerYes {
		next = node.Yes
	}
	target := e.tree.Node(next)
	if target == nil {
		return fmt.Errorf("%w: node %s references unknown node %s", conf_errors.ErrMalformedDecisionTree, node.ID, next)
	}

	e.currentID = target.ID
	if target.Kind == catalog.KindOutcome {
		e.path = append(e.path, target.ID)
		e.verdict = target.Verdict
		e.terminal = true
	}
	return nil
}

// Reset restarts the walk at the root, discarding the path.
func (e *Evaluation) Reset() {
	e.currentID = e.tree.RootID
	e.path = nil
	e.lastDecision = ""
	e.verdict = ""
	e.terminal = false
}
