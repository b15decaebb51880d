package ranges

import (
	"testing"

	"github.com/mirlab/quartet/model"
	"github.com/stretchr/testify/assert"
)

func TestVoiceRanges(t *testing.T) {
	assert := assert.New(t)
	assert.Equal(ForVoice(model.VoiceBass), Range{Min: 36, Max: 84, ComfortMin: 40, ComfortMax: 70})
	assert.Equal(ForVoice(model.VoiceInnerLow), Range{Min: 48, Max: 91, ComfortMin: 52, ComfortMax: 80})
	assert.Equal(ForVoice(model.VoiceInnerHigh), Range{Min: 55, Max: 103, ComfortMin: 60, ComfortMax: 95})
	assert.Equal(ForVoice(model.VoiceMelody), ForVoice(model.VoiceInnerHigh))
}

func TestForInstrument(t *testing.T) {
	assert := assert.New(t)

	r, ok := ForInstrument("viola")
	assert.True(ok)
	assert.Equal(r.Min, 48)

	_, ok = ForInstrument("theremin")
	assert.False(ok)
}

func TestFoldShiftsIntoComfortByOctaves(t *testing.T) {
	violin, _ := ForInstrument("violin")

	assert := assert.New(t)
	assert.Equal(violin.Fold(48), 60)
	assert.Equal(violin.Fold(108), 84)
	assert.Equal(violin.Fold(72), 72)
}

func TestFoldPreservesPitchClassWhenPossible(t *testing.T) {
	cello, _ := ForInstrument("cello")

	assert := assert.New(t)
	folded := cello.Fold(31)
	assert.Equal(model.PitchClass(folded), model.PitchClass(31))
	assert.True(cello.InComfort(folded))
}

func TestClamp(t *testing.T) {
	cello, _ := ForInstrument("cello")

	assert := assert.New(t)
	assert.Equal(cello.Clamp(20), 36)
	assert.Equal(cello.Clamp(90), 84)
	assert.Equal(cello.Clamp(60), 60)
}

func TestContains(t *testing.T) {
	viola, _ := ForInstrument("viola")

	assert := assert.New(t)
	assert.True(viola.Contains(48))
	assert.True(viola.Contains(91))
	assert.False(viola.Contains(47))
	assert.False(viola.Contains(92))
}
