package reduce

import (
	"sort"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/ranges"
	"github.com/mirlab/quartet/util"
	"github.com/mirlab/quartet/weight"
)

// bassBonus privileges the lowest sounding pitch's class when ranking: the
// true bass matters structurally even when a busier inner voice outweighs
// it by repetition.
const bassBonus = 3.0

// provisionalOctaves anchors each selected pitch class near its voice's
// register before folding: cello near C2, viola near C3, violin II near C4,
// violin I near C5.
var provisionalOctaves = [4]int{2, 3, 4, 5}

// Engine reduces one analysis window at a time to a four-voice assignment.
// Windows must be fed in temporal order: voice-leading smoothing reads the
// immediately preceding assignment and nothing else.
type Engine struct {
	Weights weight.Config
	Ranges  [4]ranges.Range
}

func NewEngine(cfg weight.Config) *Engine {
	e := &Engine{Weights: cfg}
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		e.Ranges[v] = ranges.ForVoice(v)
	}
	return e
}

// Reduce selects four representative pitches for the window, assigns them
// lowest-to-highest across the voices, folds each into its instrument's
// range and smooths against the previous assignment. An empty window yields
// four simultaneous rests.
func (e *Engine) Reduce(w model.AnalysisWindow, prev *model.VoiceAssignment) model.VoiceAssignment {
	if len(w.Candidates) == 0 {
		return model.RestAssignment(w.Start, w.Length())
	}

	selected := e.selectPitchClasses(w)
	pitches := e.provisionalPitches(selected)

	sort.Ints(pitches)
	for v := 0; v < 4; v++ {
		pitches[v] = e.Ranges[v].Fold(pitches[v])
	}
	e.smooth(pitches, prev)
	e.differentiateInner(pitches)
	e.enforceOrdering(pitches)

	return model.VoiceAssignment{
		Onset:     w.Start,
		Duration:  w.Length(),
		Bass:      pitches[0],
		InnerLow:  pitches[1],
		InnerHigh: pitches[2],
		Melody:    pitches[3],
	}
}

// selectPitchClasses aggregates candidate weights per pitch class, boosts
// the lowest pitch's class, and returns the top four classes. Ties break
// toward the class whose lowest observed pitch is lower. Fewer than four
// distinct classes are completed by stacking perfect fifths above the last
// selection, so the reduction always yields exactly four voices.
func (e *Engine) selectPitchClasses(w model.AnalysisWindow) []int {
	sums := make(map[int]float64)
	lowestInClass := make(map[int]model.Pitch)
	lowest := w.Candidates[0].Pitch
	for _, c := range w.Candidates {
		pc := model.PitchClass(c.Pitch)
		sums[pc] += c.Weight
		if lp, ok := lowestInClass[pc]; !ok || c.Pitch < lp {
			lowestInClass[pc] = c.Pitch
		}
		if c.Pitch < lowest {
			lowest = c.Pitch
		}
	}
	sums[model.PitchClass(lowest)] *= bassBonus

	classes := util.GetKeys(sums)
	sort.Slice(classes, func(i, j int) bool {
		if sums[classes[i]] != sums[classes[j]] {
			return sums[classes[i]] > sums[classes[j]]
		}
		return lowestInClass[classes[i]] < lowestInClass[classes[j]]
	})
	if len(classes) > 4 {
		classes = classes[:4]
	}
	for len(classes) < 4 {
		classes = append(classes, (classes[len(classes)-1]+7)%12)
	}
	return classes
}

// provisionalPitches places each selected class near its voice's register,
// in selection order (strongest class lands lowest).
func (e *Engine) provisionalPitches(classes []int) []model.Pitch {
	pitches := make([]model.Pitch, 4)
	for i, pc := range classes {
		pitches[i] = (provisionalOctaves[i]+1)*12 + pc
	}
	return pitches
}

// smooth keeps each voice within an octave of its previous pitch where the
// pitch class allows: when the leap exceeds 12 semitones, the octave-shifted
// variant closest to the previous pitch is substituted instead.
func (e *Engine) smooth(pitches []model.Pitch, prev *model.VoiceAssignment) {
	if prev == nil {
		return
	}
	prevVoices := prev.Voices()
	for v := 0; v < 4; v++ {
		if prevVoices[v] == model.NoPitch {
			continue
		}
		if abs(pitches[v]-prevVoices[v]) <= 12 {
			continue
		}
		best := pitches[v]
		bestDist := abs(pitches[v] - prevVoices[v])
		for cand := model.PitchClass(pitches[v]); cand <= e.Ranges[v].Max; cand += 12 {
			if cand < e.Ranges[v].Min {
				continue
			}
			if d := abs(cand - prevVoices[v]); d < bestDist {
				best, bestDist = cand, d
			}
		}
		pitches[v] = best
	}
}

// differentiateInner keeps the two inner voices off the same pitch; a lone
// harmony note gets its fifth stacked above it.
func (e *Engine) differentiateInner(pitches []model.Pitch) {
	if pitches[1] != pitches[2] {
		return
	}
	pitches[2] = e.Ranges[2].Fold(pitches[2] + 7)
}

// enforceOrdering restores bass <= innerLow <= innerHigh <= melody after
// folding or smoothing moved a voice past its neighbor, then clamps every
// voice back into its own absolute range. The range lows and highs both
// rise across the quartet, so clamping a sorted sequence keeps it sorted.
func (e *Engine) enforceOrdering(pitches []model.Pitch) {
	sort.Ints(pitches)
	for v := 0; v < 4; v++ {
		pitches[v] = e.Ranges[v].Clamp(pitches[v])
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
