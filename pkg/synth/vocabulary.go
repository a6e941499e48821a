package synth

import (
	"errors"
	"fmt"

	"github.com/dtnitsch/wordhist/models"
)

const (
	MinVocabularySize = 100
	MinWordLength     = 1
	MinMaxWordLength  = 2

	// HotProbability is the chance a stream position draws from the hot range.
	HotProbability = 0.35

	letters = "abcdefghijklmnopqrstuvwxyz"
)

// ErrInvalidConfig reports a vocabulary configuration below the minimums.
var ErrInvalidConfig = errors.New("invalid generator config")

// Validate checks cfg against the vocabulary minimums.
func Validate(cfg models.VocabularyConfig) error {
	if cfg.Size < MinVocabularySize {
		return fmt.Errorf("%w: size %d < %d", ErrInvalidConfig, cfg.Size, MinVocabularySize)
	}
	if cfg.MinLen < MinWordLength {
		return fmt.Errorf("%w: min_len %d < %d", ErrInvalidConfig, cfg.MinLen, MinWordLength)
	}
	if cfg.MaxLen < MinMaxWordLength {
		return fmt.Errorf("%w: max_len %d < %d", ErrInvalidConfig, cfg.MaxLen, MinMaxWordLength)
	}
	if cfg.MinLen > cfg.MaxLen {
		return fmt.Errorf("%w: min_len %d > max_len %d", ErrInvalidConfig, cfg.MinLen, cfg.MaxLen)
	}
	return nil
}

// HotSize is the length of the high-frequency prefix of a vocabulary.
func HotSize(vocabularySize int) int {
	return max(1, vocabularySize/20)
}

// MakeVocabulary draws size lowercase words from one generator seeded with
// seed. For each word the length is drawn first, then each letter.
func MakeVocabulary(seed uint32, size, minLen, maxLen int) []string {
	r := New(seed)
	vocab := make([]string, size)
	buf := make([]byte, 0, maxLen)
	for i := range vocab {
		n := r.Between(minLen, maxLen)
		buf = buf[:0]
		for j := 0; j < n; j++ {
			buf = append(buf, letters[r.Intn(len(letters))])
		}
		vocab[i] = string(buf)
	}
	return vocab
}

// BuildVocabulary validates cfg and materialises its vocabulary.
func BuildVocabulary(cfg models.VocabularyConfig) ([]string, error) {
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return MakeVocabulary(cfg.Seed, int(cfg.Size), cfg.MinLen, cfg.MaxLen), nil
}
