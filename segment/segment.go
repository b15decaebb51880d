package segment

import (
	"math"
	"sort"

	"github.com/mirlab/quartet/model"
)

const epsilon = 1e-6

// Span is one analysis window boundary pair. Strategies produce
// non-overlapping spans in temporal order covering the whole timeline.
type Span struct {
	Start float64
	End   float64
}

type Strategy interface {
	Windows(s *model.Score) []Span
}

// FixedLength cuts the timeline into constant-length windows. The last
// window is trimmed to the timeline end so spans never overshoot.
type FixedLength struct {
	Length float64
}

func (f FixedLength) Windows(s *model.Score) []Span {
	total := s.TotalLength()
	if total <= 0 {
		return nil
	}
	length := f.Length
	if length <= 0 {
		length = 1.0
	}
	count := int(math.Ceil(total / length))
	spans := make([]Span, 0, count)
	for i := 0; i < count; i++ {
		start := float64(i) * length
		end := math.Min(start+length, total)
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}

// OnsetDriven opens a window at every distinct onset in the score; each
// window runs to the next onset, the last to the timeline end. Preserves
// the source rhythm exactly.
type OnsetDriven struct{}

func (OnsetDriven) Windows(s *model.Score) []Span {
	onsets := distinctOnsets(s)
	if len(onsets) == 0 {
		return nil
	}
	total := s.TotalLength()
	spans := make([]Span, 0, len(onsets))
	for i, onset := range onsets {
		end := total
		if i+1 < len(onsets) {
			end = onsets[i+1]
		}
		if end-onset > epsilon {
			spans = append(spans, Span{Start: onset, End: end})
		}
	}
	return spans
}

// MeasureAnchored yields one window per measure, subdivided by the rhythm of
// a reference part so every output voice shares that part's rhythm.
type MeasureAnchored struct {
	ReferencePart   int
	BeatsPerMeasure float64
}

func (m MeasureAnchored) Windows(s *model.Score) []Span {
	beats := m.BeatsPerMeasure
	if beats <= 0 {
		beats = s.BeatsPerMeasure
	}
	if beats <= 0 {
		beats = 4.0
	}
	total := s.TotalLength()
	if total <= 0 || m.ReferencePart >= len(s.Parts) {
		return nil
	}
	ref := s.Parts[m.ReferencePart]

	var spans []Span
	measures := int(math.Ceil(total / beats))
	for i := 0; i < measures; i++ {
		mStart := float64(i) * beats
		mEnd := math.Min(mStart+beats, total)
		cuts := rhythmCuts(ref, mStart, mEnd)
		for j, cut := range cuts {
			end := mEnd
			if j+1 < len(cuts) {
				end = cuts[j+1]
			}
			if end-cut > epsilon {
				spans = append(spans, Span{Start: cut, End: end})
			}
		}
	}
	return spans
}

// rhythmCuts is the deduplicated onset pattern of the reference part inside
// one measure, always including the measure start.
func rhythmCuts(ref model.Part, mStart, mEnd float64) []float64 {
	cuts := []float64{mStart}
	for _, e := range ref.Events {
		if e.Offset <= mStart+epsilon || e.Offset >= mEnd-epsilon {
			continue
		}
		cuts = append(cuts, e.Offset)
	}
	sort.Float64s(cuts)
	return dedupe(cuts)
}

// HarmonicGrouping merges consecutive onsets into one window while the gap
// between them stays within MaxGap; a group's harmony is then summarized
// once for all of its onsets.
type HarmonicGrouping struct {
	MaxGap float64
}

func (h HarmonicGrouping) Windows(s *model.Score) []Span {
	maxGap := h.MaxGap
	if maxGap <= 0 {
		maxGap = 1.0
	}
	onsets := distinctOnsets(s)
	if len(onsets) == 0 {
		return nil
	}
	total := s.TotalLength()

	var spans []Span
	start := onsets[0]
	prev := onsets[0]
	for _, onset := range onsets[1:] {
		if onset-prev > maxGap {
			spans = append(spans, Span{Start: start, End: onset})
			start = onset
		}
		prev = onset
	}
	if total-start > epsilon {
		spans = append(spans, Span{Start: start, End: total})
	}
	return spans
}

func distinctOnsets(s *model.Score) []float64 {
	var onsets []float64
	for _, part := range s.Parts {
		for _, e := range part.Events {
			onsets = append(onsets, e.Offset)
		}
	}
	sort.Float64s(onsets)
	return dedupe(onsets)
}

func dedupe(sorted []float64) []float64 {
	var res []float64
	for _, v := range sorted {
		if len(res) == 0 || v-res[len(res)-1] > epsilon {
			res = append(res, v)
		}
	}
	return res
}
