package analytics

import (
	"unicode"
	"unicode/utf8"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/synth"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Analytics turns text or a synthetic stream into a word histogram. It holds
// a stateful lowercaser, so each worker owns its own instance.
type Analytics struct {
	lower cases.Caser
}

// New returns an Analytics ready for use by a single goroutine.
func New() *Analytics {
	return &Analytics{lower: cases.Lower(language.Und)}
}

// isWordRune reports whether r belongs to a token. Everything else separates.
func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// WordFrequency lowercases text and counts every maximal run of letters or
// digits. Invalid UTF-8 bytes act as separators.
func (a *Analytics) WordFrequency(text string) *models.Histogram {
	h := models.NewHistogram()
	lowered := a.lower.String(text)

	start := -1
	for i := 0; i < len(lowered); {
		r, size := utf8.DecodeRuneInString(lowered[i:])
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
		} else if start >= 0 {
			h.Add(lowered[start:i], 1)
			start = -1
		}
		i += size
	}
	if start >= 0 {
		h.Add(lowered[start:], 1)
	}
	return h
}

// SyntheticFrequency counts a seeded word stream over vocab. The result
// depends only on its arguments.
func (a *Analytics) SyntheticFrequency(seed uint32, wordCount uint64, vocab []string) *models.Histogram {
	h := models.NewHistogram()
	stream := synth.NewStream(seed, wordCount, vocab)
	for {
		w, ok := stream.Next()
		if !ok {
			return h
		}
		h.Add(w, 1)
	}
}
