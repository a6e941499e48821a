// Package models defines data structures for configuration, documents and reports.
package models

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTop          = 30
	DefaultOutput       = "output/histogram.json"
	DefaultFormat       = "json"
	DefaultDBPath       = "wordhist.db"
	DefaultFiles        = 80
	DefaultWordsPerFile = 300_000
	DefaultWorkloadSeed = 123
	MinWorkers          = 1
	MaxWorkers          = 32
)

// VocabularyConfig describes the shared synthetic vocabulary. Workers rebuild
// the vocabulary from it instead of receiving the words.
type VocabularyConfig struct {
	Seed   uint32 `yaml:"seed"`
	Size   uint32 `yaml:"size"`
	MinLen int    `yaml:"min_len"`
	MaxLen int    `yaml:"max_len"`
}

// DefaultVocabulary returns seed 123, 8000 words of 3..10 letters.
func DefaultVocabulary() VocabularyConfig {
	return VocabularyConfig{Seed: 123, Size: 8000, MinLen: 3, MaxLen: 10}
}

// SyntheticConfig sizes the generated benchmark workload.
type SyntheticConfig struct {
	Files        int    `yaml:"files"`
	WordsPerFile uint64 `yaml:"words_per_file"`
	Seed         uint32 `yaml:"seed"`
}

// Config holds runtime configuration. Values come from an optional YAML file
// and are overridden by CLI flags.
type Config struct {
	Workers    int              `yaml:"workers"`
	Top        int              `yaml:"top"`
	Output     string           `yaml:"output"`
	Format     string           `yaml:"format"`
	DBPath     string           `yaml:"db_path"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Synthetic  SyntheticConfig  `yaml:"synthetic"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Workers:    4,
		Top:        DefaultTop,
		Output:     DefaultOutput,
		Format:     DefaultFormat,
		DBPath:     DefaultDBPath,
		Vocabulary: DefaultVocabulary(),
		Synthetic: SyntheticConfig{
			Files:        DefaultFiles,
			WordsPerFile: DefaultWordsPerFile,
			Seed:         DefaultWorkloadSeed,
		},
	}
}

// LoadConfig reads a YAML config file on top of the defaults. A missing file
// is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ClampWorkers forces a requested worker count into [MinWorkers, MaxWorkers].
func ClampWorkers(n int) int {
	if n < MinWorkers {
		return MinWorkers
	}
	if n > MaxWorkers {
		return MaxWorkers
	}
	return n
}
