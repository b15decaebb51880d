package model

import "github.com/mirlab/quartet/role"

// WeightedCandidate is one sounding pitch inside an analysis window together
// with its importance weight. Candidates are recomputed per window and have
// no identity beyond it.
type WeightedCandidate struct {
	Pitch    Pitch
	Weight   float64
	Duration float64
	Onset    float64
	Role     role.Role
}

// AnalysisWindow is one slice of the timeline plus every weighted pitch
// sounding in it. Notes that do not overlap the window are never included.
type AnalysisWindow struct {
	Start      float64
	End        float64
	Candidates []WeightedCandidate
}

func (w AnalysisWindow) Length() float64 {
	return w.End - w.Start
}
