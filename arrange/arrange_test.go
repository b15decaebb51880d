package arrange

import (
	"testing"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/ranges"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/segment"
	"github.com/mirlab/quartet/weight"
	"github.com/stretchr/testify/assert"
)

// fourMeasureScore is a small C major texture: cello pedal, viola triads,
// stepwise violin melody, four 4/4 measures.
func fourMeasureScore() *model.Score {
	cello := model.Part{Name: "Cello"}
	viola := model.Part{Name: "Viola"}
	violin := model.Part{Name: "Violin I"}
	melody := []model.Pitch{72, 74, 76, 77}
	for i := 0; i < 16; i++ {
		onset := float64(i)
		cello.Events = append(cello.Events, model.NoteEvent{Offset: onset, Duration: 1, Pitches: []model.Pitch{48}})
		viola.Events = append(viola.Events, model.NoteEvent{Offset: onset, Duration: 1, Pitches: []model.Pitch{60, 64, 67}})
		violin.Events = append(violin.Events, model.NoteEvent{Offset: onset, Duration: 1, Pitches: []model.Pitch{melody[i%4]}})
	}
	return &model.Score{
		TempoBPM:        90,
		BeatsPerMeasure: 4,
		Parts:           []model.Part{cello, viola, violin},
	}
}

func newArranger() *Arranger {
	return New(segment.FixedLength{Length: 1}, role.NewKeywordClassifier(), weight.DefaultConfig())
}

func TestArrangeProducesFourFullVoices(t *testing.T) {
	res, err := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(err)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		assert.Equal(len(res.Voices[v]), 16)
		for _, e := range res.Voices[v] {
			assert.NotEqual(e.Pitch, model.NoPitch)
		}
	}
}

func TestArrangeCoversTimelineWithoutGaps(t *testing.T) {
	res, err := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(err)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		var sum float64
		cursor := 0.0
		for _, e := range res.Voices[v] {
			assert.InDelta(e.Onset, cursor, 1e-9)
			cursor = e.Onset + e.Duration
			sum += e.Duration
		}
		assert.InDelta(sum, 16.0, 1e-9)
	}
}

func TestArrangeKeepsTonicInBass(t *testing.T) {
	res, err := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(err)
	for _, e := range res.Voices[model.VoiceBass] {
		assert.Equal(model.PitchClass(e.Pitch), 0)
	}
}

func TestArrangeRespectsInstrumentRanges(t *testing.T) {
	res, err := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(err)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		r := ranges.ForVoice(v)
		for _, e := range res.Voices[v] {
			assert.True(r.Contains(e.Pitch))
		}
	}
}

func TestArrangeKeepsVoicesOrdered(t *testing.T) {
	res, err := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(err)
	for i := range res.Voices[model.VoiceBass] {
		bass := res.Voices[model.VoiceBass][i].Pitch
		innerLow := res.Voices[model.VoiceInnerLow][i].Pitch
		innerHigh := res.Voices[model.VoiceInnerHigh][i].Pitch
		melody := res.Voices[model.VoiceMelody][i].Pitch
		assert.True(bass <= innerLow)
		assert.True(innerLow <= innerHigh)
		assert.True(innerHigh <= melody)
	}
}

func TestArrangeIsDeterministic(t *testing.T) {
	a, errA := newArranger().Arrange(fourMeasureScore())
	b, errB := newArranger().Arrange(fourMeasureScore())

	assert := assert.New(t)
	assert.Nil(errA)
	assert.Nil(errB)
	assert.Equal(a.Voices, b.Voices)
}

func TestArrangePadsInternalSilenceWithRests(t *testing.T) {
	score := &model.Score{
		BeatsPerMeasure: 4,
		Parts: []model.Part{{Name: "Cello", Events: []model.NoteEvent{
			{Offset: 0, Duration: 1, Pitches: []model.Pitch{48}},
			{Offset: 3, Duration: 1, Pitches: []model.Pitch{48}},
		}}},
	}

	res, err := newArranger().Arrange(score)

	assert := assert.New(t)
	assert.Nil(err)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		var sum float64
		for _, e := range res.Voices[v] {
			sum += e.Duration
		}
		assert.InDelta(sum, 4.0, 1e-9)
	}
	// beats 2 and 3 carry no sounding event in any part
	assert.Equal(res.Voices[model.VoiceBass][1].Pitch, model.NoPitch)
	assert.Equal(res.Voices[model.VoiceBass][2].Pitch, model.NoPitch)
}

func TestArrangeCarriesSourceMetadata(t *testing.T) {
	score := fourMeasureScore()
	score.SourcePath = "symphony.mid"

	res, err := newArranger().Arrange(score)

	assert := assert.New(t)
	assert.Nil(err)
	assert.Equal(res.SourcePath, "symphony.mid")
	assert.Equal(res.TempoBPM, 90.0)
	assert.Equal(res.BeatsPerMeasure, 4.0)
}

func TestArrangeRejectsEmptyScore(t *testing.T) {
	assert := assert.New(t)

	_, err := newArranger().Arrange(&model.Score{})
	assert.NotNil(err)

	_, err = newArranger().Arrange(&model.Score{Parts: []model.Part{{Name: "Cello"}}})
	assert.NotNil(err)
}
