package chordid

import (
	"sort"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/weight"
)

// Template is one chord interval set relative to the root. Templates are
// matched in order; simpler chords come first so they win exact ties.
type Template struct {
	Name      string
	Suffix    string
	Intervals []int
}

var Templates = []Template{
	{Name: "major", Suffix: "", Intervals: []int{0, 4, 7}},
	{Name: "minor", Suffix: "m", Intervals: []int{0, 3, 7}},
	{Name: "dom7", Suffix: "7", Intervals: []int{0, 4, 7, 10}},
	{Name: "min7", Suffix: "m7", Intervals: []int{0, 3, 7, 10}},
	{Name: "diminished", Suffix: "dim", Intervals: []int{0, 3, 6}},
	{Name: "augmented", Suffix: "aug", Intervals: []int{0, 4, 8}},
	{Name: "sus2", Suffix: "sus2", Intervals: []int{0, 2, 7}},
	{Name: "sus4", Suffix: "sus4", Intervals: []int{0, 5, 7}},
}

type Config struct {
	// AcceptThreshold is the minimum template score; below it a window
	// yields no chord rather than a guess.
	AcceptThreshold float64

	// MajorBonus breaks the systematic misclassification of major triads
	// as dominant sevenths when a passing 7th is present.
	MajorBonus float64

	// ExtraPenalty is subtracted per non-template interval once more than
	// one is present.
	ExtraPenalty float64

	// BassFrequencyVeto overrides the elected bass with the most frequent
	// pitch class when the bass's raw occurrence count falls below this
	// fraction of the leader's: a root has to actually be heard.
	BassFrequencyVeto float64

	// AbsolutePitch restricts chord membership to pitches within two
	// octaves of the bass, discounting higher notes as melodic decoration.
	// Useful when the pitch-class-only match picks audibly wrong roots in
	// melody-heavy passages.
	AbsolutePitch bool
}

func DefaultConfig() Config {
	return Config{
		AcceptThreshold:   0.65,
		MajorBonus:        0.05,
		ExtraPenalty:      0.1,
		BassFrequencyVeto: 0.5,
	}
}

type Engine struct {
	Config Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{Config: cfg}
}

// ElectRoot picks the root pitch class for a window: bass-role candidates
// weighted with the octave bonus and a 3x boost on the lowest pitch, then
// the raw-frequency plausibility veto. The elected bass pitch is returned
// alongside for absolute-pitch matching.
func (e *Engine) ElectRoot(w model.AnalysisWindow) (int, model.Pitch, bool) {
	scores := make(map[model.Pitch]float64)
	lowest := model.NoPitch
	for _, c := range w.Candidates {
		if c.Role != role.Bass {
			continue
		}
		scores[c.Pitch] += c.Weight * weight.OctaveWeight(c.Pitch)
		if lowest == model.NoPitch || c.Pitch < lowest {
			lowest = c.Pitch
		}
	}
	if len(scores) == 0 {
		// no dedicated bass part sounding: fall back to the full window
		for _, c := range w.Candidates {
			scores[c.Pitch] += c.Weight * weight.OctaveWeight(c.Pitch)
			if lowest == model.NoPitch || c.Pitch < lowest {
				lowest = c.Pitch
			}
		}
	}
	if len(scores) == 0 {
		return 0, model.NoPitch, false
	}
	scores[lowest] *= 3.0

	bass := lowest
	best := scores[lowest]
	for p, sc := range scores {
		if sc > best || (sc == best && p < bass) {
			bass, best = p, sc
		}
	}

	root := model.PitchClass(bass)
	counts := make(map[int]int)
	for _, c := range w.Candidates {
		counts[model.PitchClass(c.Pitch)]++
	}
	leader, leaderCount := root, 0
	for pc, n := range counts {
		if n > leaderCount || (n == leaderCount && pc < leader) {
			leader, leaderCount = pc, n
		}
	}
	if float64(counts[root]) < float64(leaderCount)*e.Config.BassFrequencyVeto {
		root = leader
	}
	return root, bass, true
}

// Identify matches the window's interval content against the templates and
// returns the accepted hypothesis, or nil when nothing scores above the
// threshold.
func (e *Engine) Identify(w model.AnalysisWindow) *model.ChordHypothesis {
	root, bass, ok := e.ElectRoot(w)
	if !ok {
		return nil
	}

	intervals := e.intervalSet(w, root, bass)
	if len(intervals) == 0 {
		return nil
	}

	bestScore := 0.0
	var bestTemplate *Template
	for i := range Templates {
		t := &Templates[i]
		score := e.scoreTemplate(t, intervals)
		if score > bestScore {
			bestScore = score
			bestTemplate = t
		}
	}
	if bestTemplate == nil || bestScore < e.Config.AcceptThreshold {
		return nil
	}
	return &model.ChordHypothesis{
		RootPitchClass: root,
		Template:       bestTemplate.Name,
		Symbol:         model.PitchClassName(root) + bestTemplate.Suffix,
		Confidence:     bestScore,
		BassPitch:      bass,
	}
}

func (e *Engine) scoreTemplate(t *Template, intervals map[int]bool) float64 {
	matched := 0
	inTemplate := make(map[int]bool, len(t.Intervals))
	for _, iv := range t.Intervals {
		inTemplate[iv] = true
		if intervals[iv] {
			matched++
		}
	}
	score := float64(matched) / float64(len(t.Intervals))

	extra := 0
	for iv := range intervals {
		if !inTemplate[iv] {
			extra++
		}
	}
	if extra > 1 {
		score -= e.Config.ExtraPenalty * float64(extra)
	}
	if t.Name == "major" {
		score += e.Config.MajorBonus
	}
	return score
}

// intervalSet collects sounding intervals relative to the root. In
// absolute-pitch mode only pitches within two octaves of the bass count
// unconditionally; anything higher needs substantial summed weight to be
// treated as chord-defining rather than decoration.
func (e *Engine) intervalSet(w model.AnalysisWindow, root int, bass model.Pitch) map[int]bool {
	intervals := make(map[int]bool)
	if !e.Config.AbsolutePitch {
		for _, c := range w.Candidates {
			intervals[model.PitchClass(model.PitchClass(c.Pitch)-root)] = true
		}
		return intervals
	}

	sums := make(map[model.Pitch]float64)
	var top float64
	for _, c := range w.Candidates {
		sums[c.Pitch] += c.Weight
	}
	for _, s := range sums {
		if s > top {
			top = s
		}
	}
	pitches := make([]model.Pitch, 0, len(sums))
	for p := range sums {
		pitches = append(pitches, p)
	}
	sort.Ints(pitches)
	for _, p := range pitches {
		if p-bass > 24 && sums[p] < top*0.3 {
			continue
		}
		intervals[model.PitchClass(model.PitchClass(p)-root)] = true
	}
	return intervals
}
