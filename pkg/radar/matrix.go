package radar

// Stage is one column of the adoption matrix.
type Stage string

// Stages in the order they are displayed.
const (
	StageAssess Stage = "assess"
	StageTrial  Stage = "trial"
	StageAdopt  Stage = "adopt"
	StageHold   Stage = "hold"
	StageRemove Stage = "remove"
)

// Stages lists every stage in display order.
var Stages = []Stage{StageAssess, StageTrial, StageAdopt, StageHold, StageRemove}

// Matrix is a technology radar split into adoption stages.
type Matrix struct {
	Assess []TechnologyItem `json:"assess"`
	Trial  []TechnologyItem `json:"trial"`
	Adopt  []TechnologyItem `json:"adopt"`
	Hold   []TechnologyItem `json:"hold"`
	Remove []TechnologyItem `json:"remove"`
	Branch string           `json:"branch,omitempty"`
}

// NewMatrix returns a matrix with the given adopt and remove partitions and
// empty curated stages.
func NewMatrix(adopt, remove []TechnologyItem) Matrix {
	m := Matrix{Adopt: adopt, Remove: remove}
	m.normalize()
	return m
}

// Stage returns the items of s, or nil for an unknown stage.
func (m Matrix) Stage(s Stage) []TechnologyItem {
	switch s {
	case StageAssess:
		return m.Assess
	case StageTrial:
		return m.Trial
	case StageAdopt:
		return m.Adopt
	case StageHold:
		return m.Hold
	case StageRemove:
		return m.Remove
	}
	return nil
}

// Len returns the number of items across all stages.
func (m Matrix) Len() int {
	n := 0
	for _, s := range Stages {
		n += len(m.Stage(s))
	}
	return n
}

// Merge returns m with the user-curated stages of prev carried over. Items
// curated into Assess, Trial or Hold are removed from the analyzed stages so
// no technology appears twice.
func (m Matrix) Merge(prev Matrix) Matrix {
	curated := make(map[string]bool)
	for _, s := range []Stage{StageAssess, StageTrial, StageHold} {
		for _, item := range prev.Stage(s) {
			curated[item.Name] = true
		}
	}
	out := Matrix{
		Assess: prev.Assess,
		Trial:  prev.Trial,
		Hold:   prev.Hold,
		Adopt:  without(m.Adopt, curated),
		Remove: without(m.Remove, curated),
		Branch: m.Branch,
	}
	out.normalize()
	return out
}

func without(items []TechnologyItem, names map[string]bool) []TechnologyItem {
	out := []TechnologyItem{}
	for _, item := range items {
		if !names[item.Name] {
			out = append(out, item)
		}
	}
	return out
}

// normalize replaces nil stages with empty slices so they encode as [].
func (m *Matrix) normalize() {
	for _, p := range []*[]TechnologyItem{&m.Assess, &m.Trial, &m.Adopt, &m.Hold, &m.Remove} {
		if *p == nil {
			*p = []TechnologyItem{}
		}
	}
}

// Normalized returns m with every nil stage replaced by an empty slice.
func (m Matrix) Normalized() Matrix {
	m.normalize()
	return m
}
