package weight

import (
	"math"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
)

const epsilon = 1e-6

// Config holds the tunable weighting policy. The zero value is not usable;
// start from DefaultConfig.
type Config struct {
	BeatsPerMeasure float64
	StrongBeats     []float64
	StrongBeatBonus float64

	// Tiered duration emphasis is the default. Setting UseDurationExponent
	// switches to the softened duration^exponent curve instead.
	UseDurationExponent bool
	DurationExponent    float64

	RoleWeights map[role.Role]float64
}

func DefaultConfig() Config {
	return Config{
		BeatsPerMeasure:  4.0,
		StrongBeats:      []float64{0.0, 2.0},
		StrongBeatBonus:  1.5,
		DurationExponent: 0.7,
		RoleWeights: map[role.Role]float64{
			role.Bass:   2.0,
			role.Melody: 1.5,
			role.Inner:  1.0,
		},
	}
}

func (c Config) Role(r role.Role) float64 {
	if w, ok := c.RoleWeights[r]; ok {
		return w
	}
	return 1.0
}

func (c Config) Duration(d float64) float64 {
	if c.UseDurationExponent {
		return math.Pow(d, c.DurationExponent)
	}
	switch {
	case d < 0.5:
		return 0.2
	case d < 1.0:
		return 1.0
	default:
		return 2.0
	}
}

// Metrical gives the strong-beat bonus for onsets landing on a strong beat
// of the measure.
func (c Config) Metrical(onset float64) float64 {
	beat := math.Mod(onset, c.BeatsPerMeasure)
	for _, strong := range c.StrongBeats {
		if math.Abs(beat-strong) < epsilon {
			return c.StrongBeatBonus
		}
	}
	return 1.0
}

// OctaveWeight encodes true bass-register preference. It applies only when
// electing a bass or root pitch, never when ranking general harmony content.
func OctaveWeight(p model.Pitch) float64 {
	switch oct := model.Octave(p); {
	case oct <= 1:
		return 10.0
	case oct == 2:
		return 5.0
	case oct == 3:
		return 2.0
	default:
		return 1.0
	}
}

// Overlap is the length of the intersection of a note with a window,
// clamped at zero.
func Overlap(noteStart, noteEnd, winStart, winEnd float64) float64 {
	o := math.Min(noteEnd, winEnd) - math.Max(noteStart, winStart)
	if o < 0 {
		return 0
	}
	return o
}

// Weight scores one event against a window: role x duration x metrical x
// overlap. Zero when the event does not sound inside the window.
func (c Config) Weight(e model.NoteEvent, r role.Role, winStart, winEnd float64) float64 {
	overlap := Overlap(e.Offset, e.End(), winStart, winEnd)
	if overlap <= 0 {
		return 0
	}
	return c.Role(r) * c.Duration(e.Duration) * c.Metrical(e.Offset) * overlap
}

// Collect builds the candidate list for one window. Percussion parts are
// excluded entirely; notes without temporal overlap contribute nothing.
func Collect(s *model.Score, cl role.Classifier, cfg Config, start, end float64) model.AnalysisWindow {
	win := model.AnalysisWindow{Start: start, End: end}
	for _, part := range s.Parts {
		name := part.Instrument
		if name == "" {
			name = part.Name
		}
		r := cl.Classify(name)
		if r == role.Percussion {
			continue
		}
		for _, e := range part.Events {
			w := cfg.Weight(e, r, start, end)
			if w <= 0 {
				continue
			}
			for _, p := range e.Pitches {
				win.Candidates = append(win.Candidates, model.WeightedCandidate{
					Pitch:    p,
					Weight:   w,
					Duration: e.Duration,
					Onset:    e.Offset,
					Role:     r,
				})
			}
		}
	}
	return win
}
