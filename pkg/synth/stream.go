package synth

// Stream yields words from a vocabulary with a skew toward the hot prefix.
// Each word consumes exactly two generator values: the hot/cold decision and
// the index.
type Stream struct {
	rng       *Rand
	vocab     []string
	hot       int
	remaining uint64
}

// NewStream returns a stream of wordCount words seeded with seed. vocab must
// not be empty when wordCount > 0.
func NewStream(seed uint32, wordCount uint64, vocab []string) *Stream {
	return &Stream{
		rng:       New(seed),
		vocab:     vocab,
		hot:       HotSize(len(vocab)),
		remaining: wordCount,
	}
}

// Next returns the next word and false once the stream is exhausted.
func (s *Stream) Next() (string, bool) {
	if s.remaining == 0 {
		return "", false
	}
	s.remaining--
	if s.rng.Float64() < HotProbability {
		return s.vocab[s.rng.Intn(s.hot)], true
	}
	return s.vocab[s.rng.Intn(len(s.vocab))], true
}

// GenerateWordStream materialises a full stream. Prefer Stream for large
// counts.
func GenerateWordStream(seed uint32, wordCount uint64, vocab []string) []string {
	s := NewStream(seed, wordCount, vocab)
	words := make([]string, 0, wordCount)
	for {
		w, ok := s.Next()
		if !ok {
			return words
		}
		words = append(words, w)
	}
}
