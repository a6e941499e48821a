package models

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordhist.yaml")
	body := "workers: 8\ntop: 10\nvocabulary:\n  seed: 7\n  size: 500\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, 10, cfg.Top)
	assert.Equal(t, uint32(7), cfg.Vocabulary.Seed)
	assert.Equal(t, uint32(500), cfg.Vocabulary.Size)
	// untouched keys keep their defaults
	assert.Equal(t, 3, cfg.Vocabulary.MinLen)
	assert.Equal(t, 10, cfg.Vocabulary.MaxLen)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [1,"), 0644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestClampWorkers(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{16, 16},
		{32, 32},
		{33, 32},
		{1000, 32},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampWorkers(tt.in), "ClampWorkers(%d)", tt.in)
	}
}

func TestHistogram_AddKeepsFirstSeenOrder(t *testing.T) {
	h := NewHistogram()
	h.Add("b", 1)
	h.Add("a", 2)
	h.Add("b", 3)

	assert.Equal(t, []string{"b", "a"}, h.Words())
	assert.Equal(t, uint64(4), h.Counts["b"])
	assert.Equal(t, uint64(6), h.Tokens)
	assert.Equal(t, h.Tokens, h.Sum())
	assert.Equal(t, 2, h.Unique())
}

func TestHistogram_Merge(t *testing.T) {
	left := NewHistogram()
	left.Add("x", 1)
	left.Add("y", 1)

	right := NewHistogram()
	right.Add("z", 5)
	right.Add("x", 2)

	left.Merge(right)
	left.Merge(nil)

	assert.Equal(t, []string{"x", "y", "z"}, left.Words())
	assert.Equal(t, map[string]uint64{"x": 3, "y": 1, "z": 5}, left.Counts)
	assert.Equal(t, uint64(9), left.Tokens)
}

func TestDetectMode(t *testing.T) {
	text := NewTextDocument("a.txt", "hello")
	synth := NewSyntheticDocument("gen_0001.txt", 1, 10)

	assert.Equal(t, ModeText, DetectMode([]Document{text}))
	assert.Equal(t, ModeSynthetic, DetectMode([]Document{synth, synth}))
	assert.Equal(t, ModeMixed, DetectMode([]Document{text, synth}))
}
