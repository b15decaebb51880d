package ranges

import "github.com/mirlab/quartet/model"

// Range is an instrument's absolute playable range plus the comfort
// sub-range folding aims for first.
type Range struct {
	Min        model.Pitch
	Max        model.Pitch
	ComfortMin model.Pitch
	ComfortMax model.Pitch
}

var table = map[string]Range{
	"violin": {Min: 55, Max: 103, ComfortMin: 60, ComfortMax: 95},
	"viola":  {Min: 48, Max: 91, ComfortMin: 52, ComfortMax: 80},
	"cello":  {Min: 36, Max: 84, ComfortMin: 40, ComfortMax: 70},
}

func ForInstrument(name string) (Range, bool) {
	r, ok := table[name]
	return r, ok
}

// ForVoice returns the range of the quartet instrument playing a voice.
func ForVoice(v model.VoiceIndex) Range {
	return table[v.Instrument()]
}

func (r Range) Contains(p model.Pitch) bool {
	return p >= r.Min && p <= r.Max
}

func (r Range) InComfort(p model.Pitch) bool {
	return p >= r.ComfortMin && p <= r.ComfortMax
}

// Fold octave-shifts a pitch toward the comfort sub-range, then clamps to
// the absolute range when shifting alone cannot resolve it. Clamping keeps
// the pitch playable at the cost of its pitch class; callers treat that as
// a diagnostic, not a failure.
func (r Range) Fold(p model.Pitch) model.Pitch {
	for p < r.ComfortMin {
		p += 12
	}
	for p > r.ComfortMax {
		p -= 12
	}
	return r.Clamp(p)
}

func (r Range) Clamp(p model.Pitch) model.Pitch {
	if p < r.Min {
		return r.Min
	}
	if p > r.Max {
		return r.Max
	}
	return p
}
