package midi

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mirlab/quartet/model"
)

const defaultTempoBPM = 120.0

// ReadFile parses a standard MIDI file from disk.
func ReadFile(filepath string) (s *smf.SMF, e error) {
	var blank smf.SMF

	// the smf parser panics on some malformed files
	// https://github.com/gomidi/midi/issues/20
	defer func() {
		if r, ok := recover().(string); ok {
			e = errors.New(r)
		}
	}()

	dat, err := os.ReadFile(filepath)
	if err != nil {
		return &blank, fmt.Errorf("error reading midi file... %s", err.Error())
	}
	res, err := smf.ReadFrom(bytes.NewReader(dat))
	if err != nil {
		return &blank, fmt.Errorf("error parsing midi file... %s", err.Error())
	}
	return res, nil
}

// ReadScore parses a MIDI file into a Score with one part per note-bearing
// track, offsets and durations in quarter-note units. SMF key numbers are
// already sounding pitch, so the returned score is concert-pitch
// normalized.
func ReadScore(filepath string) (*model.Score, error) {
	parsed, err := ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	score, err := FromSMF(parsed)
	if err != nil {
		return nil, err
	}
	score.SourcePath = filepath
	return score, nil
}

// FromSMF converts a parsed SMF to the score model.
func FromSMF(s *smf.SMF) (*model.Score, error) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, fmt.Errorf("unsupported time format %v", s.TimeFormat)
	}
	tpq := float64(mt.Ticks4th())

	score := &model.Score{TempoBPM: defaultTempoBPM, BeatsPerMeasure: 4.0}

	for ti, track := range s.Tracks {
		part := model.Part{Name: fmt.Sprintf("Track %v", ti)}
		pressed := make(map[uint8]int64)
		var absTicks int64
		var lastTick int64

		for _, event := range track {
			absTicks += int64(event.Delta)
			var channel, key, velocity uint8
			var text string
			var bpm float64
			var num, denom uint8
			switch {
			case event.Message.GetNoteStart(&channel, &key, &velocity):
				pressed[key] = absTicks
				if absTicks > lastTick {
					lastTick = absTicks
				}
			case event.Message.GetNoteEnd(&channel, &key):
				onTicks, on := pressed[key]
				if !on {
					continue
				}
				delete(pressed, key)
				part.Events = append(part.Events, model.NoteEvent{
					Offset:   float64(onTicks) / tpq,
					Duration: float64(absTicks-onTicks) / tpq,
					Pitches:  []model.Pitch{model.Pitch(key)},
				})
				if absTicks > lastTick {
					lastTick = absTicks
				}
			case event.Message.GetMetaTrackName(&text):
				part.Name = text
			case event.Message.GetMetaInstrument(&text):
				part.Instrument = text
			case event.Message.GetMetaTempo(&bpm):
				score.TempoBPM = bpm
			case event.Message.GetMetaMeter(&num, &denom):
				if denom > 0 {
					score.BeatsPerMeasure = float64(num) * 4.0 / float64(denom)
				}
			}
		}

		// notes left hanging at end of track close at the last event
		for key, onTicks := range pressed {
			part.Events = append(part.Events, model.NoteEvent{
				Offset:   float64(onTicks) / tpq,
				Duration: float64(lastTick-onTicks) / tpq,
				Pitches:  []model.Pitch{model.Pitch(key)},
			})
		}

		if len(part.Events) == 0 {
			continue
		}
		if part.Instrument == "" {
			part.Instrument = part.Name
		}
		sort.Slice(part.Events, func(i, j int) bool {
			return part.Events[i].Offset < part.Events[j].Offset
		})
		score.Parts = append(score.Parts, part)
	}

	if len(score.Parts) == 0 {
		return nil, errors.New("midi file contains no notes")
	}
	score.ToConcertPitch()
	return score, nil
}
