package model

// Pitch is an absolute semitone-indexed pitch number (MIDI convention,
// middle C = 60).
type Pitch = int

// NoPitch marks a rest in a voice slot.
const NoPitch Pitch = -1

var pitchNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

func PitchClass(p Pitch) int {
	return ((p % 12) + 12) % 12
}

// Octave follows the MIDI/scientific convention where 60 (middle C) is
// octave 4 and 36 is C2.
func Octave(p Pitch) int {
	return p/12 - 1
}

// PitchClassName returns the sharp-spelled name of a pitch class.
func PitchClassName(pc int) string {
	return pitchNames[((pc%12)+12)%12]
}

func PitchName(p Pitch) string {
	return PitchClassName(PitchClass(p))
}
