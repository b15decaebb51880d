package midi

import (
	"path/filepath"
	"testing"

	"github.com/mirlab/quartet/model"
	"github.com/stretchr/testify/assert"
)

func testArrangement() *model.Arrangement {
	a := &model.Arrangement{TempoBPM: 120, BeatsPerMeasure: 4}
	basePitches := [4]model.Pitch{48, 55, 64, 72}
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		p := basePitches[v]
		a.Voices[v] = []model.VoiceEvent{
			{Onset: 0, Pitch: p, Duration: 1},
			{Onset: 1, Pitch: p + 2, Duration: 1},
			{Onset: 2, Pitch: model.NoPitch, Duration: 1},
			{Onset: 3, Pitch: p, Duration: 1},
		}
	}
	return a
}

func TestWriteReadArrangementRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quartet.mid")
	want := testArrangement()

	assert := assert.New(t)
	assert.Nil(WriteArrangement(want, path))

	got, err := ReadArrangement(path)
	assert.Nil(err)
	assert.Equal(got.Voices, want.Voices)
	assert.Equal(got.TempoBPM, 120.0)
	assert.Equal(got.BeatsPerMeasure, 4.0)
}

func TestWrittenFileReadsBackAsScore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quartet.mid")

	assert := assert.New(t)
	assert.Nil(WriteArrangement(testArrangement(), path))

	score, err := ReadScore(path)
	assert.Nil(err)
	assert.Equal(len(score.Parts), 4)
	assert.Equal(score.Parts[0].Name, "Cello")
	assert.Equal(score.Parts[1].Name, "Viola")
	assert.Equal(score.Parts[2].Name, "Violin II")
	assert.Equal(score.Parts[3].Name, "Violin I")
	for _, part := range score.Parts {
		assert.Equal(len(part.Events), 3)
	}
	assert.Equal(score.TotalLength(), 4.0)
}

func TestReadArrangementRequiresFourVoices(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.mid")

	partial := &model.Arrangement{TempoBPM: 120, BeatsPerMeasure: 4}
	partial.Voices[model.VoiceBass] = []model.VoiceEvent{{Onset: 0, Pitch: 48, Duration: 1}}

	assert := assert.New(t)
	assert.Nil(WriteArrangement(partial, path))

	_, err := ReadArrangement(path)
	assert.NotNil(err)
}

func TestReadScoreMissingFile(t *testing.T) {
	assert := assert.New(t)

	_, err := ReadScore(filepath.Join(t.TempDir(), "nope.mid"))
	assert.NotNil(err)
}

func TestVoiceOrderFallsBackToRegister(t *testing.T) {
	score := &model.Score{
		Parts: []model.Part{
			{Name: "Track 1", Events: []model.NoteEvent{{Offset: 0, Duration: 1, Pitches: []model.Pitch{72}}}},
			{Name: "Track 2", Events: []model.NoteEvent{{Offset: 0, Duration: 1, Pitches: []model.Pitch{48}}}},
			{Name: "Track 3", Events: []model.NoteEvent{{Offset: 0, Duration: 1, Pitches: []model.Pitch{64}}}},
			{Name: "Track 4", Events: []model.NoteEvent{{Offset: 0, Duration: 1, Pitches: []model.Pitch{55}}}},
		},
	}

	order := voiceOrder(score)

	assert := assert.New(t)
	assert.Equal(order, [4]int{1, 3, 2, 0})
}

func TestMeterOf(t *testing.T) {
	assert := assert.New(t)

	num, denom := meterOf(4)
	assert.Equal(num, uint8(4))
	assert.Equal(denom, uint8(4))

	num, denom = meterOf(3)
	assert.Equal(num, uint8(3))
	assert.Equal(denom, uint8(4))

	num, denom = meterOf(0)
	assert.Equal(num, uint8(4))
	assert.Equal(denom, uint8(4))
}
