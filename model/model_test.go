package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPitchClassHandlesNegatives(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(PitchClass(60), 0)
	assert.Equal(PitchClass(61), 1)
	assert.Equal(PitchClass(-1), 11)
	assert.Equal(PitchClass(-9), 3)
	assert.Equal(PitchClass(-12), 0)
}

func TestOctaveFollowsMidiConvention(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(Octave(60), 4)
	assert.Equal(Octave(36), 2)
	assert.Equal(Octave(24), 1)
	assert.Equal(Octave(0), -1)
}

func TestPitchNamesAreSharpSpelled(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(PitchClassName(0), "C")
	assert.Equal(PitchClassName(1), "C#")
	assert.Equal(PitchClassName(10), "A#")
	assert.Equal(PitchName(61), "C#")
	assert.Equal(PitchName(69), "A")
}

func TestToConcertPitchAppliesTranspositionOnce(t *testing.T) {
	score := Score{
		Parts: []Part{
			{
				Name:          "Clarinet in Bb",
				Transposition: -2,
				Events:        []NoteEvent{{Offset: 0, Duration: 1, Pitches: []Pitch{62}}},
			},
		},
	}

	assert := assert.New(t)
	assert.False(score.IsConcertPitch())

	score.ToConcertPitch()
	assert.True(score.IsConcertPitch())
	assert.Equal(score.Parts[0].Events[0].Pitches[0], 60)

	// a second call must not shift everything again
	score.ToConcertPitch()
	assert.Equal(score.Parts[0].Events[0].Pitches[0], 60)
}

func TestTotalLengthIsLastEventEnd(t *testing.T) {
	score := Score{
		Parts: []Part{
			{Events: []NoteEvent{{Offset: 0, Duration: 2, Pitches: []Pitch{48}}}},
			{Events: []NoteEvent{{Offset: 3, Duration: 1.5, Pitches: []Pitch{60}}}},
		},
	}

	assert := assert.New(t)
	assert.Equal(score.TotalLength(), 4.5)
}

func TestNoteEventLowest(t *testing.T) {
	e := NoteEvent{Offset: 0, Duration: 1, Pitches: []Pitch{64, 48, 60}}

	assert := assert.New(t)
	assert.Equal(e.Lowest(), 48)
	assert.Equal(e.End(), 1.0)
}

func TestRestAssignment(t *testing.T) {
	rest := RestAssignment(2, 1.5)

	assert := assert.New(t)
	assert.True(rest.IsRest())
	assert.Equal(rest.Onset, 2.0)
	assert.Equal(rest.Duration, 1.5)
	assert.Equal(rest.Voices(), [4]Pitch{NoPitch, NoPitch, NoPitch, NoPitch})
}

func TestSetVoice(t *testing.T) {
	va := RestAssignment(0, 1)
	va.SetVoice(VoiceBass, 48)
	va.SetVoice(VoiceMelody, 76)

	assert := assert.New(t)
	assert.False(va.IsRest())
	assert.Equal(va.Bass, 48)
	assert.Equal(va.Melody, 76)
	assert.Equal(va.InnerLow, NoPitch)
}

func TestVoicePartNames(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(VoiceBass.PartName(), "Cello")
	assert.Equal(VoiceInnerLow.PartName(), "Viola")
	assert.Equal(VoiceInnerHigh.PartName(), "Violin II")
	assert.Equal(VoiceMelody.PartName(), "Violin I")
	assert.Equal(VoiceBass.Instrument(), "cello")
	assert.Equal(VoiceMelody.Instrument(), "violin")
}

func TestArrangementNotesSkipsRests(t *testing.T) {
	var a Arrangement
	a.Voices[VoiceMelody] = []VoiceEvent{
		{Onset: 0, Pitch: 72, Duration: 1},
		{Onset: 1, Pitch: NoPitch, Duration: 1},
		{Onset: 2, Pitch: 74, Duration: 2},
	}

	assert := assert.New(t)
	notes := a.Notes(VoiceMelody)
	assert.Equal(len(notes), 2)
	assert.Equal(notes[0].Pitch, 72)
	assert.Equal(notes[1].Pitch, 74)
	assert.Equal(a.TotalLength(), 4.0)
}
