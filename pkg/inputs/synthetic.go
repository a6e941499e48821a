package inputs

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/synth"
)

// wordsPerLine is how many generated words go on one line of a written file.
const wordsPerLine = 2000

// SyntheticDocuments returns files descriptors named gen_0001.txt onwards.
// Document i is seeded with seed+i; the sum wraps at 2^32.
func SyntheticDocuments(files int, wordsPerFile uint64, seed uint32) []models.Document {
	if files <= 0 {
		return nil
	}
	docs := make([]models.Document, files)
	for i := range docs {
		docs[i] = models.NewSyntheticDocument(fmt.Sprintf("gen_%04d.txt", i+1), seed+uint32(i), wordsPerFile)
	}
	return docs
}

// WriteSyntheticFiles materializes synthetic documents as text files in dir,
// space separated with a line break every 2000 words. Counting the written
// files gives the same histogram as counting the descriptors. Text documents
// are skipped. Returns the written paths.
func WriteSyntheticFiles(dir string, docs []models.Document, cfg models.VocabularyConfig) ([]string, error) {
	vocab, err := synth.BuildVocabulary(cfg)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}

	var paths []string
	for _, d := range docs {
		if d.Synthetic == nil {
			continue
		}
		path := filepath.Join(dir, filepath.Base(d.Name))
		if err := writeStream(path, synth.NewStream(d.Synthetic.Seed, d.Synthetic.WordCount, vocab)); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeStream(path string, s *synth.Stream) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)

	n := 0
	for word, ok := s.Next(); ok; word, ok = s.Next() {
		if n > 0 {
			w.WriteByte(' ')
		}
		w.WriteString(word)
		n++
		if n == wordsPerLine {
			w.WriteByte('\n')
			n = 0
		}
	}
	if n > 0 {
		w.WriteByte('\n')
	}

	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return f.Close()
}
