// catalog/catalog.go
package catalog

import (
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"

	conf_errors "github.com/en18031/conformity/errors"
	"github.com/en18031/conformity/model"
)

//go:embed trees.yaml
var treesYAML []byte

//go:embed testcases.yaml
var testCasesYAML []byte

type NodeKind string

const (
	KindDecision NodeKind = "decision"
	KindOutcome  NodeKind = "outcome"
)

// DecisionNode is one node of a per-mechanism decision tree. Decision nodes
// carry a question and yes/no edges; outcome nodes carry a verdict.
type DecisionNode struct {
	ID       string        `json:"id" yaml:"id"`
	Kind     NodeKind      `json:"kind" yaml:"kind"`
	Question string        `json:"question,omitempty" yaml:"question,omitempty"`
	Verdict  model.Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Yes      string        `json:"yes,omitempty" yaml:"yes,omitempty"`
	No       string        `json:"no,omitempty" yaml:"no,omitempty"`
}

// Tree is a validated decision tree: a finite DAG rooted at RootID in which
// every path terminates at an outcome node.
type Tree struct {
	ID         string         `yaml:"id"`
	Mechanism  string         `yaml:"mechanism"`
	TestCaseID string         `yaml:"testCaseId"`
	RootID     string         `yaml:"root"`
	NodeList   []DecisionNode `yaml:"nodes"`

	nodes map[string]*DecisionNode
	depth int
}

// Node returns the node with the given id, or nil.
func (t *Tree) Node(id string) *DecisionNode {
	return t.nodes[id]
}

// Root returns the tree's entry node.
func (t *Tree) Root() *DecisionNode {
	return t.nodes[t.RootID]
}

// Depth is the longest root-to-outcome path, in nodes. An evaluation whose
// path grows beyond this bound has hit a catalog bug.
func (t *Tree) Depth() int {
	return t.depth
}

// Catalog holds the static decision-tree and test-case catalogs. It is built
// once at startup and never mutated afterwards.
type Catalog struct {
	trees     map[string]*Tree
	testCases map[string]*model.TestCase
	ordered   []*model.TestCase
}

type treesFile struct {
	Trees []*Tree `yaml:"trees"`
}

type testCasesFile struct {
	TestCases []*model.TestCase `yaml:"testCases"`
}

// Load parses and validates the embedded catalogs. Any structural defect in
// a decision tree is a configuration error and fails the whole load.
func Load() (*Catalog, error) {
	var tf treesFile
	if err := yaml.Unmarshal(treesYAML, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse decision tree catalog: %w", err)
	}

	var tcf testCasesFile
	if err := yaml.Unmarshal(testCasesYAML, &tcf); err != nil {
		return nil, fmt.Errorf("failed to parse test case catalog: %w", err)
	}

	c := &Catalog{
		trees:     make(map[string]*Tree, len(tf.Trees)),
		testCases: make(map[string]*model.TestCase, len(tcf.TestCases)),
	}

	for _, tree := range tf.Trees {
		if err := buildTree(tree); err != nil {
			return nil, err
		}
		c.trees[tree.ID] = tree
	}

	for _, tc := range tcf.TestCases {
		c.testCases[tc.ID] = tc
		c.ordered = append(c.ordered, tc)
	}
	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].Order < c.ordered[j].Order })

	return c, nil
}

// Tree returns the decision tree with the given id.
func (c *Catalog) Tree(id string) (*Tree, error) {
	t, ok := c.trees[id]
	if !ok {
		return nil, conf_errors.ErrTreeNotFound
	}
	return t, nil
}

// TreeForTestCase returns the decision tree bound to a conceptual test case.
func (c *Catalog) TreeForTestCase(testCaseID string) (*Tree, error) {
	for _, t := range c.trees {
		if t.TestCaseID == testCaseID {
			return t, nil
		}
	}
	return nil, conf_errors.ErrTreeNotFound
}

// TestCase returns the catalog entry with the given id.
func (c *Catalog) TestCase(id string) (*model.TestCase, error) {
	tc, ok := c.testCases[id]
	if !ok {
		return nil, conf_errors.ErrTestCaseNotFound
	}
	return tc, nil
}

// TestCases returns all test cases in catalog order.
func (c *Catalog) TestCases() []*model.TestCase {
	out := make([]*model.TestCase, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// TestCasesByMechanism returns the catalog entries of one mechanism.
func (c *Catalog) TestCasesByMechanism(mechanism string) []*model.TestCase {
	var out []*model.TestCase
	for _, tc := range c.ordered {
		if tc.Mechanism == mechanism {
			out = append(out, tc)
		}
	}
	return out
}

// buildTree indexes the node list and validates the structural invariants:
// one resolvable root, two resolvable edges per decision node, a verdict on
// every outcome node, and no cycles.
func buildTree(t *Tree) error {
	t.nodes = make(map[string]*DecisionNode, len(t.NodeList))
	for i := range t.NodeList {
		n := &t.NodeList[i]
		if _, dup := t.nodes[n.ID]; dup {
			return fmt.Errorf("%w: tree %s declares node %s twice", conf_errors.ErrMalformedDecisionTree, t.ID, n.ID)
		}
		t.nodes[n.ID] = n
	}

	if t.Root() == nil {
		return fmt.Errorf("%w: tree %s root %s not found", conf_errors.ErrMalformedDecisionTree, t.ID, t.RootID)
	}

	for _, n := range t.NodeList {
		switch n.Kind {
		case KindDecision:
			for edge, target := range map[string]string{"yes": n.Yes, "no": n.No} {
				if target == "" {
					return fmt.Errorf("%w: tree %s node %s has no %s edge", conf_errors.ErrMalformedDecisionTree, t.ID, n.ID, edge)
				}
				if t.nodes[target] == nil {
					return fmt.Errorf("%w: tree %s node %s %s edge references unknown node %s", conf_errors.ErrMalformedDecisionTree, t.ID, n.ID, edge, target)
				}
			}
		case KindOutcome:
			if !n.Verdict.IsValid() {
				return fmt.Errorf("%w: tree %s outcome node %s has invalid verdict %q", conf_errors.ErrMalformedDecisionTree, t.ID, n.ID, n.Verdict)
			}
		default:
			return fmt.Errorf("%w: tree %s node %s has unknown kind %q", conf_errors.ErrMalformedDecisionTree, t.ID, n.ID, n.Kind)
		}
	}

	depth, err := longestPath(t)
	if err != nil {
		return err
	}
	t.depth = depth
	return nil
}

// longestPath walks the tree depth-first, rejecting any node reachable from
// itself and returning the longest root-to-outcome path length.
func longestPath(t *Tree) (int, error) {
	const (
		unvisited = 0
		inStack   = 1
		done      = 2
	)
	state := make(map[string]int, len(t.nodes))
	memo := make(map[string]int, len(t.nodes))

	var walk func(id string) (int, error)
	walk = func(id string) (int, error) {
		switch state[id] {
		case inStack:
			return 0, fmt.Errorf("%w: tree %s has a cycle through node %s", conf_errors.ErrMalformedDecisionTree, t.ID, id)
		case done:
			return memo[id], nil
		}
		state[id] = inStack
		n := t.nodes[id]

		depth := 1
		if n.Kind == KindDecision {
			for _, target := range []string{n.Yes, n.No} {
				d, err := walk(target)
				if err != nil {
					return 0, err
				}
				if d+1 > depth {
					depth = d + 1
				}
			}
		}
		state[id] = done
		memo[id] = depth
		return depth, nil
	}

	return walk(t.RootID)
}
