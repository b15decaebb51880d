package model

// ScoreMetadata is the optional per-file record looked up from the metadata
// table, keyed by source filename.
type ScoreMetadata struct {
	Title    string `json:"title"`
	Composer string `json:"composer"`
	Year     uint   `json:"year,omitempty"`
}
