package mapreduce

import (
	"fmt"
	"sort"

	"github.com/dtnitsch/wordhist/models"
)

// TopWords ranks a histogram by count, highest first. Words with equal counts
// keep the order in which they were first merged. The result holds at most n
// entries; n <= 0 yields none.
func TopWords(h *models.Histogram, n int) []models.WordCount {
	if h == nil || n <= 0 {
		return []models.WordCount{}
	}

	words := h.Words()
	ss := make([]models.WordCount, len(words))
	for i, w := range words {
		ss[i] = models.WordCount{Word: w, Count: h.Counts[w]}
	}

	sort.SliceStable(ss, func(i, j int) bool {
		return ss[i].Count > ss[j].Count
	})

	limit := min(n, len(ss))
	return ss[:limit]
}

// TopKeywords returns the top N words formatted as "word:count" strings
// (e.g., "learning:1153").
func TopKeywords(h *models.Histogram, n int) []string {
	top := TopWords(h, n)
	keywords := make([]string, len(top))
	for i, wc := range top {
		keywords[i] = fmt.Sprintf("%s:%d", wc.Word, wc.Count)
	}
	return keywords
}
