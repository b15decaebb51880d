package evaluate

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/mirlab/quartet/model"
	"github.com/mirlab/quartet/ranges"
	"github.com/mirlab/quartet/util"
)

// Metric weights for the combined score.
const (
	WeightMelody       = 0.25
	WeightBass         = 0.20
	WeightHarmony      = 0.20
	WeightRange        = 0.15
	WeightRhythm       = 0.10
	WeightVoiceLeading = 0.10
)

// Report holds the six independent 0-100 heuristic scores and their fixed
// weighted sum. A missing voice scores 0 on the metrics that need it; the
// evaluator never fails.
type Report struct {
	Melody       float64 `json:"melody"`
	Bass         float64 `json:"bass"`
	Harmony      float64 `json:"harmony"`
	Range        float64 `json:"range"`
	Rhythm       float64 `json:"rhythm"`
	VoiceLeading float64 `json:"voice_leading"`
	Weighted     float64 `json:"weighted"`
}

func (r Report) Scores() map[string]float64 {
	return map[string]float64{
		"melody":        r.Melody,
		"bass":          r.Bass,
		"harmony":       r.Harmony,
		"range":         r.Range,
		"rhythm":        r.Rhythm,
		"voice_leading": r.VoiceLeading,
	}
}

func Evaluate(a *model.Arrangement) Report {
	r := Report{
		Melody:       melodyClarity(a),
		Bass:         bassStrength(a),
		Harmony:      harmonicRichness(a),
		Range:        rangeAppropriateness(a),
		Rhythm:       rhythmAccuracy(a),
		VoiceLeading: voiceLeading(a),
	}
	r.Weighted = r.Melody*WeightMelody +
		r.Bass*WeightBass +
		r.Harmony*WeightHarmony +
		r.Range*WeightRange +
		r.Rhythm*WeightRhythm +
		r.VoiceLeading*WeightVoiceLeading
	return r
}

// melodyClarity: high-register fraction (50), note repetition inside the
// 10-30% band (30), total span above an octave (20).
func melodyClarity(a *model.Arrangement) float64 {
	notes := a.Notes(model.VoiceMelody)
	if len(notes) == 0 {
		return 0
	}

	high := 0
	for _, n := range notes {
		if n.Pitch > 72 {
			high++
		}
	}
	score := float64(high) / float64(len(notes)) * 50

	if len(notes) > 1 {
		same := 0
		for i := 1; i < len(notes); i++ {
			if notes[i].Pitch == notes[i-1].Pitch {
				same++
			}
		}
		ratio := float64(same) / float64(len(notes)-1)
		switch {
		case ratio > 0.1 && ratio < 0.3:
			score += 30
		case ratio <= 0.1:
			score += 20
		case ratio <= 0.5:
			score += 10
		}
	}

	lo, hi := pitchExtent(notes)
	switch {
	case hi-lo > 12:
		score += 20
	case hi-lo > 6:
		score += 15
	default:
		score += 5
	}
	return math.Min(100, score)
}

// bassStrength: low-register fraction (50), long-duration fraction (30),
// low average pitch (20).
func bassStrength(a *model.Arrangement) float64 {
	notes := a.Notes(model.VoiceBass)
	if len(notes) == 0 {
		return 0
	}

	low, long := 0, 0
	pitches := make([]float64, len(notes))
	for i, n := range notes {
		pitches[i] = float64(n.Pitch)
		if n.Pitch < 60 {
			low++
		}
		if n.Duration >= 1.0 {
			long++
		}
	}
	score := float64(low)/float64(len(notes))*50 + float64(long)/float64(len(notes))*30

	switch avg := stat.Mean(pitches, nil); {
	case avg < 50:
		score += 20
	case avg < 60:
		score += 15
	default:
		score += 5
	}
	return math.Min(100, score)
}

// harmonicRichness: pitch-class diversity (40), inner-voice differentiation
// (30), correct registral ordering of the four voices (30).
func harmonicRichness(a *model.Arrangement) float64 {
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		if len(a.Notes(v)) == 0 {
			return 0
		}
	}

	classes := make(map[int]bool)
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		for _, n := range a.Notes(v) {
			classes[model.PitchClass(n.Pitch)] = true
		}
	}
	score := math.Min(40, float64(len(classes))*6)

	switch ratio := innerSameRatio(a, 50); {
	case ratio < 0.2:
		score += 30
	case ratio < 0.4:
		score += 20
	case ratio < 0.6:
		score += 10
	}

	var lows [4]model.Pitch
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		lows[v], _ = pitchExtent(a.Notes(v))
	}
	switch {
	case lows[0] < lows[1] && lows[1] < lows[2] && lows[2] < lows[3]:
		score += 30
	case lows[0] < lows[1] && lows[2] < lows[3]:
		score += 20
	default:
		score += 10
	}
	return math.Min(100, score)
}

// rangeAppropriateness: absolute-range compliance (40) plus comfort-range
// occupancy (60), averaged across voices.
func rangeAppropriateness(a *model.Arrangement) float64 {
	var total float64
	counted := 0
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		notes := a.Notes(v)
		if len(notes) == 0 {
			continue
		}
		counted++
		r := ranges.ForVoice(v)
		lo, hi := pitchExtent(notes)

		var rangeScore float64
		switch {
		case lo >= r.Min && hi <= r.Max:
			rangeScore = 40
		case lo >= r.Min-5 && hi <= r.Max+5:
			rangeScore = 30
		default:
			rangeScore = 10
		}

		comfort := 0
		for _, n := range notes {
			if r.InComfort(n.Pitch) {
				comfort++
			}
		}
		var comfortScore float64
		switch ratio := float64(comfort) / float64(len(notes)); {
		case ratio >= 0.8:
			comfortScore = 60
		case ratio >= 0.6:
			comfortScore = 40
		case ratio >= 0.4:
			comfortScore = 20
		default:
			comfortScore = 5
		}
		total += (rangeScore + comfortScore) / 2
	}
	if counted == 0 {
		return 0
	}
	return total / float64(counted)
}

// rhythmAccuracy: fraction of the first ten measures whose event durations
// sum to exactly one full measure.
func rhythmAccuracy(a *model.Arrangement) float64 {
	events := a.Voices[model.VoiceMelody]
	if len(events) == 0 {
		return 0
	}
	beats := a.BeatsPerMeasure
	if beats <= 0 {
		beats = 4.0
	}

	measures := util.Min(int(math.Ceil(a.TotalLength()/beats)), 10)
	if measures == 0 {
		return 0
	}
	correct := 0
	for m := 0; m < measures; m++ {
		start, end := float64(m)*beats, float64(m+1)*beats
		var sum float64
		for _, e := range events {
			if e.Onset >= start-1e-6 && e.Onset < end-1e-6 {
				sum += e.Duration
			}
		}
		if math.Abs(sum-beats) < 0.01 {
			correct++
		}
	}
	return float64(correct) / float64(measures) * 100
}

// voiceLeading: smaller average melodic intervals score higher per voice
// (25 each), plus an inner-voice independence bonus (25), capped at 100.
func voiceLeading(a *model.Arrangement) float64 {
	var score float64
	counted := 0
	for v := model.VoiceBass; v <= model.VoiceMelody; v++ {
		notes := a.Notes(v)
		if len(notes) < 2 {
			continue
		}
		counted++
		var leaps []float64
		for i := 1; i < len(notes) && i <= 20; i++ {
			leaps = append(leaps, math.Abs(float64(notes[i].Pitch-notes[i-1].Pitch)))
		}
		switch avg := stat.Mean(leaps, nil); {
		case avg <= 3:
			score += 25
		case avg <= 6:
			score += 15
		case avg <= 9:
			score += 10
		default:
			score += 5
		}
	}
	if counted == 0 {
		return 0
	}
	score += (1 - innerSameRatio(a, 20)) * 25
	return math.Min(100, score)
}

// innerSameRatio is the fraction of aligned inner-voice notes (up to limit)
// playing the identical pitch.
func innerSameRatio(a *model.Arrangement, limit int) float64 {
	low := a.Notes(model.VoiceInnerLow)
	high := a.Notes(model.VoiceInnerHigh)
	n := len(low)
	if len(high) < n {
		n = len(high)
	}
	if n > limit {
		n = limit
	}
	if n == 0 {
		return 0
	}
	same := 0
	for i := 0; i < n; i++ {
		if low[i].Pitch == high[i].Pitch {
			same++
		}
	}
	return float64(same) / float64(n)
}

func pitchExtent(notes []model.VoiceEvent) (model.Pitch, model.Pitch) {
	if len(notes) == 0 {
		return 0, 0
	}
	lo, hi := notes[0].Pitch, notes[0].Pitch
	for _, n := range notes[1:] {
		if n.Pitch < lo {
			lo = n.Pitch
		}
		if n.Pitch > hi {
			hi = n.Pitch
		}
	}
	return lo, hi
}
