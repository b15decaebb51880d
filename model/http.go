package model

type AnalyzeRequest struct {
	Path string `json:"path"`
}

type ProgressionResponse struct {
	File     string         `json:"file"`
	Metadata *ScoreMetadata `json:"metadata,omitempty"`
	Chords   []ChordRecord  `json:"chords"`
}

type EvaluationResponse struct {
	File     string             `json:"file"`
	Scores   map[string]float64 `json:"scores"`
	Weighted float64            `json:"weighted"`
}

type ErrorResponse struct {
	Error string `json:"detail"`
}
