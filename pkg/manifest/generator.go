package manifest

import (
	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/mapreduce"
)

// Build maps an aggregate report onto the output contract.
// Slices are never nil so they encode as [] rather than null.
func Build(report models.AggregateReport, mode string, workers int) Output {
	top := report.TopWords
	if top == nil {
		top = []models.WordCount{}
	}
	perFile := report.Documents
	if perFile == nil {
		perFile = []models.DocumentStat{}
	}

	var avg *int64
	if report.AvgElapsedMsPerDocument != nil && len(perFile) > 0 {
		v := *report.AvgElapsedMsPerDocument
		avg = &v
	}

	return Output{
		Meta: Meta{
			Mode:                mode,
			Workers:             workers,
			Files:               len(perFile),
			TotalTokens:         report.TotalTokens,
			UniqueTokens:        report.UniqueTokens,
			TotalElapsedMs:      report.TotalElapsedMs,
			AvgElapsedMsPerFile: avg,
		},
		TopWords: top,
		PerFile:  perFile,
	}
}

// Keywords returns the top words as "word:count" strings, the compact form
// used in history listings.
func (o Output) Keywords(n int) []string {
	if n <= 0 || n > len(o.TopWords) {
		n = len(o.TopWords)
	}
	h := models.NewHistogram()
	for _, wc := range o.TopWords[:n] {
		h.Add(wc.Word, wc.Count)
	}
	return mapreduce.TopKeywords(h, n)
}
