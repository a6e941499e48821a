package manifest

import "github.com/dtnitsch/wordhist/models"

// Output is the serialized form of a run. Downstream consumers (charts,
// exports, history) read this shape, so field names are stable.
type Output struct {
	Meta     Meta                  `json:"meta" yaml:"meta"`
	TopWords []models.WordCount    `json:"top_words" yaml:"top_words"`
	PerFile  []models.DocumentStat `json:"per_file" yaml:"per_file"`
}

// Meta summarizes the run.
type Meta struct {
	Mode                string `json:"mode" yaml:"mode"`
	Workers             int    `json:"workers" yaml:"workers"`
	Files               int    `json:"files" yaml:"files"`
	TotalTokens         uint64 `json:"total_tokens" yaml:"total_tokens"`
	UniqueTokens        int    `json:"unique_tokens" yaml:"unique_tokens"`
	TotalElapsedMs      int64  `json:"total_elapsed_ms" yaml:"total_elapsed_ms"`
	AvgElapsedMsPerFile *int64 `json:"avg_elapsed_ms_per_file" yaml:"avg_elapsed_ms_per_file"`
}
