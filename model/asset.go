// model/asset.go
package model

// Verdict is the outcome of a decision-tree evaluation. The display form of
// the not-applicable verdict keeps the space used throughout EN 18031
// decision-tree figures.
type Verdict string

const (
	VerdictPass          Verdict = "PASS"
	VerdictFail          Verdict = "FAIL"
	VerdictNotApplicable Verdict = "NOT APPLICABLE"
)

func (v Verdict) IsValid() bool {
	switch v {
	case VerdictPass, VerdictFail, VerdictNotApplicable:
		return true
	}
	return false
}

// Result maps a decision-tree verdict onto the persisted assessment result.
func (v Verdict) Result() Result {
	switch v {
	case VerdictPass:
		return ResultPass
	case VerdictFail:
		return ResultFail
	default:
		return ResultNA
	}
}

type AssetType string

const (
	AssetSecurity AssetType = "security"
	AssetNetwork  AssetType = "network"
)

// Asset is a security- or network-relevant resource assessed individually
// within one conceptual assessment session. Assets live only for the session.
type Asset struct {
	ID          string    `json:"id" binding:"required"`
	Name        string    `json:"name" binding:"required"`
	Type        AssetType `json:"type"`
	Description string    `json:"description,omitempty"`
}

// AssetResult is the per-asset outcome of a conceptual assessment:
// which decision node decided it, the verdict, the operator's justification
// and the full path walked through the tree.
type AssetResult struct {
	AssetID       string   `json:"asset_id"`
	AssetName     string   `json:"asset_name"`
	DecisionNode  string   `json:"decision_node"`
	Verdict       Verdict  `json:"verdict"`
	Justification string   `json:"justification"`
	DecisionPath  []string `json:"decision_path"`
}
