package inputs

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/analytics"
	"github.com/dtnitsch/wordhist/pkg/caching"
	"github.com/dtnitsch/wordhist/pkg/synth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestDiscoverTextFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.txt"), "b")
	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "notes.md"), "skip")
	writeFile(t, filepath.Join(dir, "sub", "c.TXT"), "c")

	files, err := DiscoverTextFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "sub", "c.TXT"),
	}, files)

	single, err := DiscoverTextFiles(filepath.Join(dir, "notes.md"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "notes.md")}, single)

	missing, err := DiscoverTextFiles(filepath.Join(dir, "nope"))
	require.NoError(t, err)
	assert.Empty(t, missing)
}

func TestDiscoverAll_Dedupes(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	writeFile(t, a, "a")

	files, err := DiscoverAll([]string{dir, a})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, files)
}

func TestSyntheticDocuments(t *testing.T) {
	docs := SyntheticDocuments(3, 500, 123)
	require.Len(t, docs, 3)
	for i, d := range docs {
		assert.Equal(t, fmt.Sprintf("gen_%04d.txt", i+1), d.Name)
		require.NotNil(t, d.Synthetic)
		assert.Equal(t, uint32(123+i), d.Synthetic.Seed)
		assert.Equal(t, uint64(500), d.Synthetic.WordCount)
	}

	wrapped := SyntheticDocuments(2, 1, ^uint32(0))
	assert.Equal(t, uint32(0), wrapped[1].Synthetic.Seed)

	assert.Empty(t, SyntheticDocuments(0, 10, 1))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	paths := make([]string, 10)
	for i := range paths {
		paths[i] = filepath.Join(dir, fmt.Sprintf("f%02d.txt", i))
		writeFile(t, paths[i], fmt.Sprintf("file %d", i))
	}

	docs, err := NewLoader(WithConcurrency(3)).LoadFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, docs, len(paths))
	for i, d := range docs {
		assert.Equal(t, paths[i], d.Name)
		assert.Equal(t, fmt.Sprintf("file %d", i), d.Text.Text)
	}
}

func TestLoadFiles_InvalidUTF8(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.txt")
	require.NoError(t, os.WriteFile(path, []byte("ok\xffthen"), 0644))

	docs, err := NewLoader().LoadFiles(context.Background(), []string{path})
	require.NoError(t, err)
	assert.Equal(t, "ok\uFFFDthen", docs[0].Text.Text)
}

func TestLoadFiles_MissingFileFailsLoad(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.txt")
	writeFile(t, ok, "fine")

	docs, err := NewLoader().LoadFiles(context.Background(), []string{ok, filepath.Join(dir, "missing.txt")})
	assert.Error(t, err)
	assert.Nil(t, docs)
}

const page = `<html><head><title>T</title></head><body>
<article><p>alpha beta gamma alpha</p></article></body></html>`

func TestLoadURLs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	docs, err := NewLoader().LoadURLs(context.Background(), []string{srv.URL + "/one", " " + srv.URL + "/two,"})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, srv.URL+"/one", docs[0].Name)
	assert.Equal(t, srv.URL+"/two", docs[1].Name)
	assert.Contains(t, docs[0].Text.Text, "alpha beta gamma alpha")
	assert.Equal(t, models.ModeText, models.DetectMode(docs))
}

func TestLoadURLs_InvalidURL(t *testing.T) {
	_, err := NewLoader().LoadURLs(context.Background(), []string{"ftp://example.com"})
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestLoadURLs_FetchFailureFailsLoad(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/bad" {
			http.Error(w, "boom", http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	docs, err := NewLoader().LoadURLs(context.Background(), []string{srv.URL + "/good", srv.URL + "/bad"})
	assert.Error(t, err)
	assert.Nil(t, docs)
}

func TestLoadURLs_UsesCache(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	cache, err := caching.NewCache(t.TempDir(), time.Hour)
	require.NoError(t, err)
	l := NewLoader(WithCache(cache))

	for range 3 {
		_, err := l.LoadURLs(context.Background(), []string{srv.URL + "/cached"})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), hits.Load())
}

type stubFetcher map[string]string

func (s stubFetcher) GetHtmlBytes(_ context.Context, url string) ([]byte, error) {
	body, ok := s[url]
	if !ok {
		return nil, fmt.Errorf("no page for %s", url)
	}
	return []byte(body), nil
}

func TestLoadURLs_CustomFetcher(t *testing.T) {
	l := NewLoader(WithFetcher(stubFetcher{"https://example.com/x": page}))

	docs, err := l.LoadURLs(context.Background(), []string{"https://example.com/x"})
	require.NoError(t, err)
	assert.Contains(t, docs[0].Text.Text, "gamma")
}

func TestReadURLList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	writeFile(t, path, "# seeds\nhttps://example.com/a\n\n  https://example.com/b  \n#https://skip.me\n")

	urls, err := ReadURLList(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, urls)

	_, err = ReadURLList(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestWriteSyntheticFiles_MatchesDescriptors(t *testing.T) {
	dir := t.TempDir()
	cfg := models.VocabularyConfig{Seed: 9, Size: 150, MinLen: 3, MaxLen: 8}
	docs := append(SyntheticDocuments(2, 4500, 77), models.NewTextDocument("skip.txt", "x"))

	paths, err := WriteSyntheticFiles(dir, docs, cfg)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "gen_0001.txt"), filepath.Join(dir, "gen_0002.txt")}, paths)

	raw, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(raw), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Len(t, strings.Fields(lines[0]), wordsPerLine)
	assert.Len(t, strings.Fields(lines[2]), 500)

	written, err := NewLoader().LoadFiles(context.Background(), paths)
	require.NoError(t, err)
	vocab, err := synth.BuildVocabulary(cfg)
	require.NoError(t, err)
	a := analytics.New()
	for i, d := range written {
		want := a.SyntheticFrequency(docs[i].Synthetic.Seed, docs[i].Synthetic.WordCount, vocab)
		got := a.WordFrequency(d.Text.Text)
		assert.Equal(t, want.Counts, got.Counts, d.Name)
	}
}

func TestWriteSyntheticFiles_InvalidVocabulary(t *testing.T) {
	_, err := WriteSyntheticFiles(t.TempDir(), SyntheticDocuments(1, 10, 1), models.VocabularyConfig{Size: 5, MinLen: 1, MaxLen: 2})
	assert.ErrorIs(t, err, synth.ErrInvalidConfig)
}
