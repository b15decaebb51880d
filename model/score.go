package model

// NoteEvent is one timed sounding element of a part. Offsets and durations
// are in quarter-note units. A plain note carries one pitch, a chord several.
// Events are never mutated after parsing; transforms build new ones.
type NoteEvent struct {
	Offset   float64
	Duration float64
	Pitches  []Pitch
}

func (e NoteEvent) End() float64 {
	return e.Offset + e.Duration
}

func (e NoteEvent) Lowest() Pitch {
	lowest := e.Pitches[0]
	for _, p := range e.Pitches[1:] {
		if p < lowest {
			lowest = p
		}
	}
	return lowest
}

type Part struct {
	Name       string
	Instrument string

	// Transposition is the semitone shift from notated to sounding pitch
	// (e.g. -2 for a Bb clarinet part). Zero for concert-pitch sources.
	Transposition int

	Events []NoteEvent
}

type Score struct {
	SourcePath      string
	Parts           []Part
	TempoBPM        float64
	BeatsPerMeasure float64

	// concertPitch records whether transpositions have been applied, so
	// normalization can never run twice and shift everything again.
	concertPitch bool
}

// ToConcertPitch applies each part's transposition once. Every weighting and
// segmentation pass assumes a normalized score; readers call this before
// returning.
func (s *Score) ToConcertPitch() {
	if s.concertPitch {
		return
	}
	for pi := range s.Parts {
		t := s.Parts[pi].Transposition
		if t == 0 {
			continue
		}
		for ei := range s.Parts[pi].Events {
			old := s.Parts[pi].Events[ei]
			pitches := make([]Pitch, len(old.Pitches))
			for i, p := range old.Pitches {
				pitches[i] = p + t
			}
			s.Parts[pi].Events[ei] = NoteEvent{Offset: old.Offset, Duration: old.Duration, Pitches: pitches}
		}
	}
	s.concertPitch = true
}

func (s *Score) IsConcertPitch() bool {
	return s.concertPitch
}

// TotalLength is the end of the last sounding event, in quarters.
func (s *Score) TotalLength() float64 {
	var total float64
	for _, part := range s.Parts {
		for _, e := range part.Events {
			if e.End() > total {
				total = e.End()
			}
		}
	}
	return total
}
