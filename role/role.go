package role

import "strings"

type Role int

const (
	Inner Role = iota
	Bass
	Melody
	Percussion
)

func (r Role) String() string {
	switch r {
	case Bass:
		return "bass"
	case Melody:
		return "melody"
	case Percussion:
		return "percussion"
	default:
		return "inner"
	}
}

// Classifier maps an instrument name to its structural role. Passed
// explicitly into every component that needs it.
type Classifier interface {
	Classify(instrumentName string) Role
}

// KeywordClassifier matches lowercase substrings against the instrument
// name. Unknown instruments are Inner; Percussion is checked first so a
// "bass drum" part is excluded from every weighting pass.
type KeywordClassifier struct {
	BassKeywords       []string
	MelodyKeywords     []string
	PercussionKeywords []string
}

func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{
		BassKeywords:       []string{"bass", "cello", "tuba", "contrabass", "bassoon"},
		MelodyKeywords:     []string{"violin", "flute", "soprano", "oboe", "clarinet", "trumpet"},
		PercussionKeywords: []string{"drum", "percussion", "timpani", "cymbal"},
	}
}

func (c *KeywordClassifier) Classify(instrumentName string) Role {
	name := strings.ToLower(instrumentName)
	for _, kw := range c.PercussionKeywords {
		if strings.Contains(name, kw) {
			return Percussion
		}
	}
	for _, kw := range c.BassKeywords {
		if strings.Contains(name, kw) {
			return Bass
		}
	}
	for _, kw := range c.MelodyKeywords {
		if strings.Contains(name, kw) {
			return Melody
		}
	}
	return Inner
}
