package models

// DocumentStat is the per-document timing record produced by a worker.
type DocumentStat struct {
	Name      string `json:"name" yaml:"name"`
	Tokens    uint64 `json:"tokens" yaml:"tokens"`
	ElapsedMs int64  `json:"elapsed_ms" yaml:"elapsed_ms"`
}

// WordCount is one ranked entry of the top-word list.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count uint64 `json:"count" yaml:"count"`
}

// PartialResult is the output of one worker for one chunk. It is owned by the
// worker until handed to the aggregator and is not modified afterwards.
type PartialResult struct {
	Chunk     int
	Histogram *Histogram
	Documents []DocumentStat
}

// TokenCount returns the number of tokens the chunk produced.
func (p PartialResult) TokenCount() uint64 {
	if p.Histogram == nil {
		return 0
	}
	return p.Histogram.Tokens
}

// AggregateReport is the merged result of a whole run.
type AggregateReport struct {
	TotalTokens    uint64
	UniqueTokens   int
	TotalElapsedMs int64
	// AvgElapsedMsPerDocument is nil when the report covers no documents.
	AvgElapsedMsPerDocument *int64
	TopWords                []WordCount
	// Documents is sorted by ElapsedMs, slowest first.
	Documents []DocumentStat
	Histogram *Histogram
}
