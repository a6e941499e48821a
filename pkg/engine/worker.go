package engine

import (
	"fmt"
	"time"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/analytics"
	"github.com/dtnitsch/wordhist/pkg/synth"
)

// processChunk is one worker unit. It owns every value it touches: the chunk
// and vocabulary config arrive by value, the vocabulary is rebuilt locally on
// first use, and the partial result is returned by value. Any document error
// discards the whole chunk.
func processChunk(index int, docs []models.Document, vocab models.VocabularyConfig) (models.PartialResult, error) {
	a := analytics.New()
	hist := models.NewHistogram()
	stats := make([]models.DocumentStat, 0, len(docs))
	var words []string

	for _, doc := range docs {
		start := time.Now()

		var h *models.Histogram
		switch {
		case doc.Text != nil && doc.Synthetic == nil:
			h = a.WordFrequency(doc.Text.Text)
		case doc.Synthetic != nil && doc.Text == nil:
			if words == nil {
				v, err := synth.BuildVocabulary(vocab)
				if err != nil {
					return models.PartialResult{}, &WorkerError{Chunk: index, Document: doc.Name, Err: err}
				}
				words = v
			}
			h = a.SyntheticFrequency(doc.Synthetic.Seed, doc.Synthetic.WordCount, words)
		default:
			err := fmt.Errorf("%w: need exactly one of text or synthetic source", ErrMalformedDocument)
			return models.PartialResult{}, &WorkerError{Chunk: index, Document: doc.Name, Err: err}
		}

		hist.Merge(h)
		stats = append(stats, models.DocumentStat{
			Name:      doc.Name,
			Tokens:    h.Tokens,
			ElapsedMs: time.Since(start).Milliseconds(),
		})
	}

	return models.PartialResult{Chunk: index, Histogram: hist, Documents: stats}, nil
}
