package segment

import (
	"math"
	"sort"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/weight"
)

// AdaptiveMeasure analyzes stable measures in half-measure windows and
// subdivides per beat wherever the bass or the harmonic content moves
// inside the measure. This replaces per-measure manual overrides with one
// general rule: instability, not position, triggers subdivision.
type AdaptiveMeasure struct {
	Classifier      role.Classifier
	Weights         weight.Config
	BeatsPerMeasure float64

	// SimilarityCutoff is the Jaccard similarity between adjacent beats'
	// top pitch-class sets below which the harmony counts as changed.
	SimilarityCutoff float64
}

func (a AdaptiveMeasure) Windows(s *model.Score) []Span {
	beats := a.BeatsPerMeasure
	if beats <= 0 {
		beats = 4.0
	}
	cutoff := a.SimilarityCutoff
	if cutoff <= 0 {
		cutoff = 0.5
	}
	total := s.TotalLength()
	if total <= 0 {
		return nil
	}

	var spans []Span
	measures := int(math.Ceil(total / beats))
	half := beats / 2
	for i := 0; i < measures; i++ {
		mStart := float64(i) * beats
		mEnd := math.Min(mStart+beats, total)

		step := half
		if a.bassUnstable(s, mStart, beats) || a.harmonyUnstable(s, mStart, beats, cutoff) {
			step = 1.0
		}
		for start := mStart; start < mEnd-epsilon; start += step {
			spans = append(spans, Span{Start: start, End: math.Min(start+step, mEnd)})
		}
	}
	return spans
}

// bassUnstable reports whether the measure has no single dominant bass
// pitch: the strongest bass must outscore the runner-up two to one, or the
// measure must stay on fewer than three distinct basses.
func (a AdaptiveMeasure) bassUnstable(s *model.Score, mStart, beats float64) bool {
	type beatBass struct {
		pitch model.Pitch
		score float64
	}
	var perBeat []beatBass
	for beat := 0.0; beat < beats; beat++ {
		win := weight.Collect(s, a.Classifier, a.Weights, mStart+beat, mStart+beat+1.0)
		best, score := electBeatBass(win)
		if best != model.NoPitch {
			perBeat = append(perBeat, beatBass{pitch: best, score: score})
		}
	}
	if len(perBeat) < int(beats) {
		return false
	}

	sums := make(map[model.Pitch]float64)
	counts := make(map[model.Pitch]int)
	for _, b := range perBeat {
		sums[b.pitch] += b.score
		counts[b.pitch]++
	}
	var avgs []float64
	for p, sum := range sums {
		avgs = append(avgs, sum/float64(counts[p]))
	}
	if len(avgs) < 2 {
		return false
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(avgs)))
	if avgs[0] < avgs[1]*2.0 {
		return len(sums) >= 3
	}
	return false
}

func electBeatBass(win model.AnalysisWindow) (model.Pitch, float64) {
	scores := make(map[model.Pitch]float64)
	for _, c := range win.Candidates {
		if c.Role != role.Bass {
			continue
		}
		scores[c.Pitch] += c.Weight * weight.OctaveWeight(c.Pitch)
	}
	best := model.NoPitch
	var bestScore float64
	for p, sc := range scores {
		if sc > bestScore || (sc == bestScore && best != model.NoPitch && p < best) {
			best, bestScore = p, sc
		}
	}
	return best, bestScore
}

// harmonyUnstable compares the top-3 pitch-class sets of adjacent beats; a
// Jaccard similarity at or below the cutoff on any boundary means the
// harmonic content moved mid-measure.
func (a AdaptiveMeasure) harmonyUnstable(s *model.Score, mStart, beats, cutoff float64) bool {
	var beatSets []map[int]bool
	for beat := 0.0; beat < beats; beat++ {
		beatSets = append(beatSets, topPitchClasses(s, mStart+beat, mStart+beat+1.0))
	}
	for i := 0; i+1 < len(beatSets); i++ {
		curr, next := beatSets[i], beatSets[i+1]
		if len(curr) == 0 || len(next) == 0 {
			continue
		}
		var inter, union int
		seen := make(map[int]bool)
		for pc := range curr {
			seen[pc] = true
			if next[pc] {
				inter++
			}
		}
		for pc := range next {
			seen[pc] = true
		}
		union = len(seen)
		if union > 0 && float64(inter)/float64(union) <= cutoff {
			return true
		}
	}
	return false
}

func topPitchClasses(s *model.Score, start, end float64) map[int]bool {
	weights := make(map[int]float64)
	for _, part := range s.Parts {
		for _, e := range part.Events {
			overlap := weight.Overlap(e.Offset, e.End(), start, end)
			if overlap <= 0 {
				continue
			}
			for _, p := range e.Pitches {
				weights[model.PitchClass(p)] += e.Duration * overlap
			}
		}
	}
	type pcw struct {
		pc int
		w  float64
	}
	var all []pcw
	for pc, w := range weights {
		all = append(all, pcw{pc, w})
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].w != all[j].w {
			return all[i].w > all[j].w
		}
		return all[i].pc < all[j].pc
	})
	top := make(map[int]bool)
	for i := 0; i < len(all) && i < 3; i++ {
		top[all[i].pc] = true
	}
	return top
}
