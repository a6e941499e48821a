package app

import (
	"errors"
	"fmt"
	"math"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/engine"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/dtnitsch/wordhist/pkg/storage"
	"github.com/urfave/cli/v2"
)

// Exit codes.
const (
	ExitInvalidInput = 1
	ExitFailure      = 2
)

var (
	// ErrNoInput is returned when a command found nothing to analyse. It is a
	// runtime failure, not a usage error.
	ErrNoInput = errors.New("no input documents")
	// ErrInvalidArgs is returned for unusable command line arguments.
	ErrInvalidArgs = errors.New("invalid arguments")
)

// ResolveConfig loads the config file and applies any flags that were set on
// the command line. Workers is clamped to [1, 32].
func ResolveConfig(c *cli.Context) (models.Config, error) {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return cfg, err
	}

	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("top") {
		cfg.Top = c.Int("top")
	}
	if c.IsSet("out") {
		cfg.Output = c.String("out")
	}
	if c.IsSet("format") {
		cfg.Format = c.String("format")
	}
	if c.IsSet("db") {
		cfg.DBPath = c.String("db")
	}
	if c.IsSet("vocab-seed") {
		if cfg.Vocabulary.Seed, err = uint32Flag(c, "vocab-seed", engine.ErrGeneratorConfig); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("vocab-size") {
		if cfg.Vocabulary.Size, err = uint32Flag(c, "vocab-size", engine.ErrGeneratorConfig); err != nil {
			return cfg, err
		}
	}
	if c.IsSet("min-len") {
		cfg.Vocabulary.MinLen = c.Int("min-len")
	}
	if c.IsSet("max-len") {
		cfg.Vocabulary.MaxLen = c.Int("max-len")
	}
	if c.IsSet("files") {
		cfg.Synthetic.Files = c.Int("files")
	}
	if c.IsSet("words-per-file") {
		cfg.Synthetic.WordsPerFile = c.Uint64("words-per-file")
	}
	if c.IsSet("seed") {
		if cfg.Synthetic.Seed, err = uint32Flag(c, "seed", engine.ErrInvalidInput); err != nil {
			return cfg, err
		}
	}

	cfg.Workers = models.ClampWorkers(cfg.Workers)
	if cfg.Top <= 0 {
		cfg.Top = models.DefaultTop
	}
	return cfg, nil
}

// uint32Flag reads a uint flag that must fit in 32 bits.
func uint32Flag(c *cli.Context, name string, kind error) (uint32, error) {
	v := c.Uint(name)
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: --%s %d exceeds %d", kind, name, v, uint64(math.MaxUint32))
	}
	return uint32(v), nil
}

// Exit maps err to a cli exit error: 1 for bad input, 2 for anything else,
// including an input set with no documents.
func Exit(err error) error {
	if err == nil {
		return nil
	}
	code := ExitFailure
	switch {
	case errors.Is(err, ErrInvalidArgs),
		errors.Is(err, engine.ErrInvalidInput),
		errors.Is(err, engine.ErrGeneratorConfig),
		errors.Is(err, inputs.ErrInvalidURL),
		errors.Is(err, storage.ErrUnknownFormat):
		code = ExitInvalidInput
	}
	return cli.Exit(fmt.Sprintf("Error: %v", err), code)
}
