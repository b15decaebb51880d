package evaluate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/mirlab/quartet/model"
)

// ClassicalReport is the optional counterpoint-oriented layer on top of the
// six heuristics: strict parallel detection over every voice pair, a
// functional-progression proxy, narrower classical ranges and chord-spacing
// blending.
type ClassicalReport struct {
	ParallelViolations  int     `json:"parallel_violations"`
	HarmonicProgression float64 `json:"harmonic_progression"`
	ClassicalRange      float64 `json:"classical_range"`
	Blending            float64 `json:"blending"`
}

// PairViolation is one parallel fifth or octave between two named voices.
type PairViolation struct {
	Low      model.VoiceIndex
	High     model.VoiceIndex
	Position int
	Interval int // 7 or 0
}

func EvaluateClassical(a *model.Arrangement) ClassicalReport {
	return ClassicalReport{
		ParallelViolations:  len(DetectPairParallels(a)),
		HarmonicProgression: harmonicProgression(a),
		ClassicalRange:      classicalRange(a),
		Blending:            blending(a),
	}
}

// DetectPairParallels checks all six voice pairs for perfect fifths or
// octaves held through same-direction motion.
func DetectPairParallels(a *model.Arrangement) []PairViolation {
	var violations []PairViolation
	for lo := model.VoiceBass; lo <= model.VoiceMelody; lo++ {
		for hi := lo + 1; hi <= model.VoiceMelody; hi++ {
			v1 := a.Notes(lo)
			v2 := a.Notes(hi)
			n := len(v1)
			if len(v2) < n {
				n = len(v2)
			}
			for i := 1; i < n; i++ {
				prevInterval := absInt(v1[i-1].Pitch-v2[i-1].Pitch) % 12
				currInterval := absInt(v1[i].Pitch-v2[i].Pitch) % 12
				if prevInterval != currInterval || (prevInterval != 7 && prevInterval != 0) {
					continue
				}
				d1 := v1[i].Pitch - v1[i-1].Pitch
				d2 := v2[i].Pitch - v2[i-1].Pitch
				if d1*d2 > 0 {
					violations = append(violations, PairViolation{Low: lo, High: hi, Position: i, Interval: prevInterval})
				}
			}
		}
	}
	return violations
}

// harmonicProgression scores how much of the opening bass line sits on the
// tonic, subdominant or dominant triads, with the first bass note taken as
// tonic. 25 points per functional root across the first four bass notes.
func harmonicProgression(a *model.Arrangement) float64 {
	bass := a.Notes(model.VoiceBass)
	if len(bass) < 4 {
		return 50
	}
	tonic := model.PitchClass(bass[0].Pitch)
	functional := map[int]bool{}
	for _, degree := range []int{0, 4, 7, 5, 9, 11, 2} {
		functional[(tonic+degree)%12] = true
	}
	var score float64
	for i := 0; i < 4; i++ {
		if functional[model.PitchClass(bass[i].Pitch)] {
			score += 25
		}
	}
	return math.Min(score, 100)
}

// classicalRanges are tighter than the playable table: the register bands
// quartet writing conventionally stays inside.
var classicalRanges = [4]struct{ idealMin, idealMax model.Pitch }{
	{40, 65}, // cello
	{52, 72}, // viola
	{60, 80}, // violin II
	{60, 80}, // violin I
}

func classicalRange(a *model.Arrangement) float64 {
	var total float64
	counted := 0
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		notes := a.Notes(v)
		if len(notes) == 0 {
			continue
		}
		counted++
		band := classicalRanges[v]
		in := 0
		for _, n := range notes {
			if n.Pitch >= band.idealMin && n.Pitch <= band.idealMax {
				in++
			}
		}
		total += float64(in) / float64(len(notes)) * 100
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// blending scores vertical spacing per onset: a low-register gap near an
// octave and mid-register gaps near a third blend best.
func blending(a *model.Arrangement) float64 {
	type slot struct{ pitches []model.Pitch }
	slots := make(map[float64]*slot)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		for _, n := range a.Notes(v) {
			key := math.Round(n.Onset*100) / 100
			if slots[key] == nil {
				slots[key] = &slot{}
			}
			slots[key].pitches = append(slots[key].pitches, n.Pitch)
		}
	}
	if len(slots) == 0 {
		return 50
	}

	var scores []float64
	for _, s := range slots {
		if len(s.pitches) < 2 {
			continue
		}
		sort.Ints(s.pitches)
		intervals := make([]float64, 0, len(s.pitches)-1)
		for i := 1; i < len(s.pitches); i++ {
			intervals = append(intervals, float64(s.pitches[i]-s.pitches[i-1]))
		}

		bassScore := 100 - math.Min(math.Abs(intervals[0]-12), 50)*2

		middleScore := 50.0
		if len(intervals) > 1 {
			middle := intervals[1:]
			if len(intervals) > 2 {
				middle = intervals[1 : len(intervals)-1]
			}
			if len(middle) > 0 {
				avg := stat.Mean(middle, nil)
				middleScore = 100 - math.Min(math.Abs(avg-4), 20)*5
			}
		}
		scores = append(scores, (bassScore+middleScore)/2)
	}
	if len(scores) == 0 {
		return 50
	}
	return stat.Mean(scores, nil)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
