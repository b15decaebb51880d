package reduce

import "github.com/mirlab/quartet/model"

// ParallelViolation marks forbidden parallel motion between the two inner
// voices at the boundary entering window Index.
type ParallelViolation struct {
	Index    int
	Interval int // 7 for parallel fifths, 0 for unison/octaves
}

// DetectParallels scans consecutive assignments for the inner voices moving
// in the same direction while holding a perfect fifth or a unison/octave.
func DetectParallels(seq []model.VoiceAssignment) []ParallelViolation {
	var violations []ParallelViolation
	for i := 1; i < len(seq); i++ {
		prev, curr := seq[i-1], seq[i]
		if prev.InnerLow == model.NoPitch || prev.InnerHigh == model.NoPitch ||
			curr.InnerLow == model.NoPitch || curr.InnerHigh == model.NoPitch {
			continue
		}
		prevInterval := model.PitchClass(prev.InnerHigh - prev.InnerLow)
		currInterval := model.PitchClass(curr.InnerHigh - curr.InnerLow)
		if prevInterval != currInterval || (prevInterval != 7 && prevInterval != 0) {
			continue
		}
		lowDir := curr.InnerLow - prev.InnerLow
		highDir := curr.InnerHigh - prev.InnerHigh
		if lowDir*highDir > 0 {
			violations = append(violations, ParallelViolation{Index: i, Interval: prevInterval})
		}
	}
	return violations
}

// FixParallels corrects every detected violation by nudging innerLow a step
// down (or up when down would cross the bass or leave the cello range).
// The choice is deterministic on purpose, replacing the source material's
// coin flip; the melody voice is never touched. Returns the number of
// corrections applied.
func (e *Engine) FixParallels(seq []model.VoiceAssignment) int {
	fixed := 0
	for _, v := range DetectParallels(seq) {
		a := &seq[v.Index]
		if nudged, ok := e.nudgeInnerLow(a); ok {
			a.InnerLow = nudged
			fixed++
		}
	}
	return fixed
}

func (e *Engine) nudgeInnerLow(a *model.VoiceAssignment) (model.Pitch, bool) {
	r := e.Ranges[model.VoiceInnerLow]
	down := a.InnerLow - 2
	if down >= a.Bass && down >= r.Min {
		return down, true
	}
	up := a.InnerLow + 2
	if up <= a.InnerHigh && up <= r.Max {
		return up, true
	}
	return a.InnerLow, false
}
