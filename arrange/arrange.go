package arrange

import (
	"errors"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/reduce"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/segment"
	"github.com/mirlab/quartet/weight"
)

const epsilon = 1e-6

// Arranger drives segmentation and reduction over a whole score and emits
// the four gap-free voice streams. One run is a pure function of the score
// and configuration; the only cross-window memory is the previous
// assignment the engine carries forward.
type Arranger struct {
	Strategy   segment.Strategy
	Classifier role.Classifier
	Weights    weight.Config
	Engine     *reduce.Engine
}

func New(strategy segment.Strategy, cl role.Classifier, cfg weight.Config) *Arranger {
	return &Arranger{
		Strategy:   strategy,
		Classifier: cl,
		Weights:    cfg,
		Engine:     reduce.NewEngine(cfg),
	}
}

func (a *Arranger) Arrange(s *model.Score) (*model.Arrangement, error) {
	if len(s.Parts) == 0 {
		return nil, errors.New("score has no parts")
	}
	s.ToConcertPitch()
	total := s.TotalLength()

	spans := a.Strategy.Windows(s)
	if len(spans) == 0 {
		return nil, errors.New("score has no sounding events")
	}

	assignments := a.reduceAll(s, spans, total)
	a.Engine.FixParallels(assignments)

	res := &model.Arrangement{
		SourcePath:      s.SourcePath,
		TempoBPM:        s.TempoBPM,
		BeatsPerMeasure: s.BeatsPerMeasure,
	}
	for _, va := range assignments {
		voices := va.Voices()
		for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
			res.Voices[v] = append(res.Voices[v], model.VoiceEvent{
				Onset:    va.Onset,
				Pitch:    voices[v],
				Duration: va.Duration,
			})
		}
	}
	return res, nil
}

// reduceAll walks the spans in order, padding every gap (leading, internal,
// trailing) with explicit rest assignments so each voice covers the full
// timeline.
func (a *Arranger) reduceAll(s *model.Score, spans []segment.Span, total float64) []model.VoiceAssignment {
	var assignments []model.VoiceAssignment
	var prev *model.VoiceAssignment
	cursor := 0.0

	for _, span := range spans {
		if span.Start-cursor > epsilon {
			assignments = append(assignments, model.RestAssignment(cursor, span.Start-cursor))
		}
		win := weight.Collect(s, a.Classifier, a.Weights, span.Start, span.End)
		va := a.Engine.Reduce(win, prev)
		assignments = append(assignments, va)
		if !va.IsRest() {
			copied := va
			prev = &copied
		}
		cursor = span.End
	}
	if total-cursor > epsilon {
		assignments = append(assignments, model.RestAssignment(cursor, total-cursor))
	}
	return assignments
}
