package mapreduce

import (
	"sort"

	"github.com/dtnitsch/wordhist/models"
)

// Split deals items round-robin into workers chunks: item i goes to chunk
// i % workers. Relative order is kept inside each chunk and empty chunks are
// dropped, so the result has min(workers, len(items)) entries. workers below
// one is treated as one.
func Split[T any](items []T, workers int) [][]T {
	if workers < 1 {
		workers = 1
	}
	n := min(workers, len(items))
	chunks := make([][]T, n)
	for i, item := range items {
		chunks[i%n] = append(chunks[i%n], item)
	}
	return chunks
}

// Reduce merges partial results into a report. Partials are folded in slice
// order; callers pass them in chunk index order so that top-word ties are
// reproducible. TotalElapsedMs is left for the caller, which owns run timing.
func Reduce(partials []models.PartialResult, top int) models.AggregateReport {
	merged := models.NewHistogram()
	docs := make([]models.DocumentStat, 0)
	for _, p := range partials {
		merged.Merge(p.Histogram)
		docs = append(docs, p.Documents...)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].ElapsedMs > docs[j].ElapsedMs
	})

	report := models.AggregateReport{
		TotalTokens:  merged.Tokens,
		UniqueTokens: merged.Unique(),
		TopWords:     TopWords(merged, top),
		Documents:    docs,
		Histogram:    merged,
	}
	if len(docs) > 0 {
		var sum int64
		for _, d := range docs {
			sum += d.ElapsedMs
		}
		avg := sum / int64(len(docs))
		report.AvgElapsedMsPerDocument = &avg
	}
	return report
}
