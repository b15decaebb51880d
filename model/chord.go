package model

// ChordHypothesis is the best template match for one analysis window. A nil
// hypothesis means no template reached the acceptance threshold.
type ChordHypothesis struct {
	RootPitchClass int
	Template       string
	Symbol         string
	Confidence     float64
	BassPitch      Pitch
	Measure        int
	Beat           float64
}

// ChordRecord is the serialized form of a hypothesis for progression dumps.
type ChordRecord struct {
	Measure    int     `json:"measure"`
	Beat       float64 `json:"beat"`
	Chord      string  `json:"chord"`
	Bass       string  `json:"bass"`
	Confidence float64 `json:"confidence"`
}
