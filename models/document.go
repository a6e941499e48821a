package models

// Document describes one unit of input for a run. Exactly one of Text or
// Synthetic is set; a Document with neither (or both) is malformed and fails
// the worker that receives it.
type Document struct {
	Name      string
	Text      *TextSource
	Synthetic *SyntheticSource
}

// TextSource carries real text to tokenize.
type TextSource struct {
	Text string
}

// SyntheticSource describes a generated word stream drawn from the shared
// vocabulary.
type SyntheticSource struct {
	Seed      uint32
	WordCount uint64
}

// NewTextDocument returns a Document backed by real text.
func NewTextDocument(name, text string) Document {
	return Document{Name: name, Text: &TextSource{Text: text}}
}

// NewSyntheticDocument returns a Document backed by a seeded word stream.
func NewSyntheticDocument(name string, seed uint32, wordCount uint64) Document {
	return Document{Name: name, Synthetic: &SyntheticSource{Seed: seed, WordCount: wordCount}}
}

// IsSynthetic reports whether the document is generated rather than read.
func (d Document) IsSynthetic() bool {
	return d.Synthetic != nil
}

// Mode values reported in the output contract.
const (
	ModeText      = "text"
	ModeSynthetic = "synthetic"
	ModeMixed     = "mixed"
)

// DetectMode classifies a document set for the report's meta.mode field.
func DetectMode(docs []Document) string {
	var synthetic int
	for _, d := range docs {
		if d.IsSynthetic() {
			synthetic++
		}
	}
	switch {
	case synthetic == 0:
		return ModeText
	case synthetic == len(docs):
		return ModeSynthetic
	default:
		return ModeMixed
	}
}
