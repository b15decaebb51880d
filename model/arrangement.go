package model

// VoiceEvent is one note or rest in an output voice stream.
type VoiceEvent struct {
	Onset    float64
	Pitch    Pitch // NoPitch for a rest
	Duration float64
}

// Arrangement holds the four assembled voice streams, indexed by VoiceIndex
// (bass first). Each stream covers the full timeline with no gaps; silence
// is an explicit rest event, never an omission.
type Arrangement struct {
	SourcePath      string
	TempoBPM        float64
	BeatsPerMeasure float64
	Voices          [4][]VoiceEvent
}

// Notes returns the sounding events of one voice, rests skipped.
func (a *Arrangement) Notes(v VoiceIndex) []VoiceEvent {
	var res []VoiceEvent
	for _, e := range a.Voices[v] {
		if e.Pitch != NoPitch {
			res = append(res, e)
		}
	}
	return res
}

// TotalLength is the covered timeline length in quarters.
func (a *Arrangement) TotalLength() float64 {
	var total float64
	for _, voice := range a.Voices {
		for _, e := range voice {
			if end := e.Onset + e.Duration; end > total {
				total = end
			}
		}
	}
	return total
}
