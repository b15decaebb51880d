package model

// VoiceIndex identifies one of the four output voices, lowest first.
type VoiceIndex int

const (
	VoiceBass VoiceIndex = iota
	VoiceInnerLow
	VoiceInnerHigh
	VoiceMelody
)

var voicePartNames = [4]string{"Cello", "Viola", "Violin II", "Violin I"}
var voiceInstruments = [4]string{"cello", "viola", "violin", "violin"}

func (v VoiceIndex) PartName() string {
	return voicePartNames[v]
}

func (v VoiceIndex) Instrument() string {
	return voiceInstruments[v]
}

// VoiceAssignment is the reduction of one window to four voices. NoPitch in
// a slot means that voice rests for the window. When all four slots are set,
// Bass <= InnerLow <= InnerHigh <= Melody holds after range folding.
type VoiceAssignment struct {
	Onset     float64
	Duration  float64
	Bass      Pitch
	InnerLow  Pitch
	InnerHigh Pitch
	Melody    Pitch
}

// RestAssignment is four simultaneous rests covering [onset, onset+duration).
func RestAssignment(onset, duration float64) VoiceAssignment {
	return VoiceAssignment{
		Onset:     onset,
		Duration:  duration,
		Bass:      NoPitch,
		InnerLow:  NoPitch,
		InnerHigh: NoPitch,
		Melody:    NoPitch,
	}
}

func (v VoiceAssignment) IsRest() bool {
	return v.Bass == NoPitch && v.InnerLow == NoPitch && v.InnerHigh == NoPitch && v.Melody == NoPitch
}

func (v VoiceAssignment) Voices() [4]Pitch {
	return [4]Pitch{v.Bass, v.InnerLow, v.InnerHigh, v.Melody}
}

func (v *VoiceAssignment) SetVoice(i VoiceIndex, p Pitch) {
	switch i {
	case VoiceBass:
		v.Bass = p
	case VoiceInnerLow:
		v.InnerLow = p
	case VoiceInnerHigh:
		v.InnerHigh = p
	case VoiceMelody:
		v.Melody = p
	}
}
