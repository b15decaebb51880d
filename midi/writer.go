package midi

import (
	"fmt"
	"sort"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/mirlab/quartet/model"
)

const writerTicksPerQuarter = 480

// WriteArrangement serializes the four voice streams to a format-1 SMF:
// one meta track carrying tempo and meter, then one track per voice with
// its part name. Rests become gaps between notes.
func WriteArrangement(a *model.Arrangement, path string) error {
	var res smf.SMF
	res.TimeFormat = smf.MetricTicks(writerTicksPerQuarter)

	tempo := a.TempoBPM
	if tempo <= 0 {
		tempo = defaultTempoBPM
	}
	num, denom := meterOf(a.BeatsPerMeasure)

	var meta smf.Track
	meta.Add(0, smf.MetaTempo(tempo))
	meta.Add(0, smf.MetaMeter(num, denom))
	meta.Close(0)
	res.Tracks = append(res.Tracks, meta)

	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		res.Tracks = append(res.Tracks, voiceTrack(a, v))
	}
	return res.WriteFile(path)
}

func voiceTrack(a *model.Arrangement, v model.VoiceIndex) smf.Track {
	type timed struct {
		tick int64
		off  bool // note-offs first at equal ticks
		key  uint8
	}
	var events []timed
	for _, e := range a.Voices[v] {
		if e.Pitch == model.NoPitch || e.Duration <= 0 {
			continue
		}
		key := uint8(e.Pitch)
		on := int64(e.Onset * writerTicksPerQuarter)
		off := int64((e.Onset + e.Duration) * writerTicksPerQuarter)
		events = append(events, timed{tick: on, key: key})
		events = append(events, timed{tick: off, off: true, key: key})
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		return events[i].off && !events[j].off
	})

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName(v.PartName()))
	track.Add(0, smf.MetaInstrument(v.PartName()))
	var cursor int64
	for _, e := range events {
		delta := uint32(e.tick - cursor)
		cursor = e.tick
		if e.off {
			track.Add(delta, gomidi.NoteOff(0, e.key))
		} else {
			track.Add(delta, gomidi.NoteOn(0, e.key, 90))
		}
	}
	track.Close(0)
	return track
}

func meterOf(beatsPerMeasure float64) (uint8, uint8) {
	if beatsPerMeasure <= 0 {
		return 4, 4
	}
	num := uint8(beatsPerMeasure)
	if float64(num) != beatsPerMeasure || num == 0 {
		return 4, 4
	}
	return num, 4
}

// ReadArrangement loads a quartet MIDI file back into the four voice
// streams, matching tracks by part name and falling back to register order
// (lowest average pitch becomes the bass). Gaps between notes turn back
// into explicit rests so each stream stays contiguous.
func ReadArrangement(path string) (*model.Arrangement, error) {
	score, err := ReadScore(path)
	if err != nil {
		return nil, err
	}
	if len(score.Parts) < 4 {
		return nil, fmt.Errorf("expected 4 voice tracks, got %v", len(score.Parts))
	}

	order := voiceOrder(score)
	res := &model.Arrangement{
		SourcePath:      path,
		TempoBPM:        score.TempoBPM,
		BeatsPerMeasure: score.BeatsPerMeasure,
	}
	total := score.TotalLength()
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		res.Voices[v] = voiceStream(score.Parts[order[v]], total)
	}
	return res, nil
}

// voiceOrder maps voice index -> part index, by canonical part names when
// present, otherwise by ascending average pitch.
func voiceOrder(score *model.Score) [4]int {
	var order [4]int
	named := 0
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		for pi, part := range score.Parts {
			if part.Name == v.PartName() {
				order[v] = pi
				named++
				break
			}
		}
	}
	if named == 4 {
		return order
	}

	type avgPart struct {
		index int
		avg   float64
	}
	avgs := make([]avgPart, len(score.Parts))
	for pi, part := range score.Parts {
		var sum, n float64
		for _, e := range part.Events {
			for _, p := range e.Pitches {
				sum += float64(p)
				n++
			}
		}
		avgs[pi] = avgPart{index: pi, avg: sum / n}
	}
	sort.Slice(avgs, func(i, j int) bool { return avgs[i].avg < avgs[j].avg })
	for v := 0; v < 4; v++ {
		order[v] = avgs[v].index
	}
	return order
}

func voiceStream(part model.Part, total float64) []model.VoiceEvent {
	var stream []model.VoiceEvent
	cursor := 0.0
	for _, e := range part.Events {
		if e.Offset-cursor > 1e-6 {
			stream = append(stream, model.VoiceEvent{Onset: cursor, Pitch: model.NoPitch, Duration: e.Offset - cursor})
		}
		stream = append(stream, model.VoiceEvent{Onset: e.Offset, Pitch: e.Pitches[0], Duration: e.Duration})
		if e.End() > cursor {
			cursor = e.End()
		}
	}
	if total-cursor > 1e-6 {
		stream = append(stream, model.VoiceEvent{Onset: cursor, Pitch: model.NoPitch, Duration: total - cursor})
	}
	return stream
}
