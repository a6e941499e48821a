package models

import "strings"

// Histogram maps words to occurrence counts and remembers the order in which
// each word was first added. The order only exists to make top-word tie
// breaks reproducible; lookups go through the map.
type Histogram struct {
	Counts map[string]uint64
	Tokens uint64
	order  []string
}

// NewHistogram returns an empty histogram.
func NewHistogram() *Histogram {
	return &Histogram{Counts: make(map[string]uint64)}
}

// Add records n occurrences of word.
func (h *Histogram) Add(word string, n uint64) {
	if _, seen := h.Counts[word]; !seen {
		// keys are often slices of a large document; don't pin it
		word = strings.Clone(word)
		h.order = append(h.order, word)
	}
	h.Counts[word] += n
	h.Tokens += n
}

// Merge folds other into h, visiting other's words in their first-seen order.
func (h *Histogram) Merge(other *Histogram) {
	if other == nil {
		return
	}
	for _, word := range other.order {
		h.Add(word, other.Counts[word])
	}
}

// Words returns the distinct words in first-seen order.
func (h *Histogram) Words() []string {
	out := make([]string, len(h.order))
	copy(out, h.order)
	return out
}

// Unique returns the number of distinct words.
func (h *Histogram) Unique() int {
	return len(h.Counts)
}

// Sum adds up every count. It equals Tokens for any histogram built through Add.
func (h *Histogram) Sum() uint64 {
	var total uint64
	for _, c := range h.Counts {
		total += c
	}
	return total
}
