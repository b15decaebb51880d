package progression

import (
	"math"

	"github.com/mirlab/quartet/chordid"
	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/role"
	"github.com/mirlab/quartet/segment"
	"github.com/mirlab/quartet/weight"
)

// Extractor runs segmentation and chord identification over a score and
// labels each accepted hypothesis with its measure and beat.
type Extractor struct {
	Strategy   segment.Strategy
	Classifier role.Classifier
	Weights    weight.Config
	Engine     *chordid.Engine

	// CarryForward repeats the previous chord at windows that yield no
	// confident hypothesis instead of leaving a gap.
	CarryForward bool
}

func New(strategy segment.Strategy, cl role.Classifier, wcfg weight.Config, ccfg chordid.Config) *Extractor {
	return &Extractor{
		Strategy:   strategy,
		Classifier: cl,
		Weights:    wcfg,
		Engine:     chordid.NewEngine(ccfg),
	}
}

func (e *Extractor) Extract(s *model.Score) []model.ChordRecord {
	s.ToConcertPitch()
	beats := s.BeatsPerMeasure
	if beats <= 0 {
		beats = 4.0
	}

	var records []model.ChordRecord
	var last *model.ChordRecord
	for _, span := range e.Strategy.Windows(s) {
		win := weight.Collect(s, e.Classifier, e.Weights, span.Start, span.End)
		measure := int(math.Floor(span.Start/beats)) + 1
		beat := math.Mod(span.Start, beats) + 1

		hyp := e.Engine.Identify(win)
		if hyp == nil {
			if e.CarryForward && last != nil {
				carried := *last
				carried.Measure = measure
				carried.Beat = beat
				records = append(records, carried)
			}
			continue
		}
		rec := model.ChordRecord{
			Measure:    measure,
			Beat:       beat,
			Chord:      hyp.Symbol,
			Bass:       model.PitchName(hyp.BassPitch),
			Confidence: hyp.Confidence,
		}
		records = append(records, rec)
		last = &rec
	}
	return records
}
