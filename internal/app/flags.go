// Package app is the plumbing shared by the CLI commands: flags, config
// resolution, exit codes and the analyse-and-persist environment.
package app

import (
	"time"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/caching"
	"github.com/dtnitsch/wordhist/pkg/fetcher"
	"github.com/urfave/cli/v2"
)

// GlobalFlags are accepted by every command.
func GlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "config",
			Value: "wordhist.yaml",
			Usage: "YAML config file; a missing file means defaults",
		},
		&cli.BoolFlag{
			Name:    "quiet",
			Aliases: []string{"q"},
			Usage:   "Only log errors",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "Log debug detail, including per-chunk completion",
		},
		&cli.StringFlag{
			Name:  "db",
			Usage: "Run history database (default from config, then " + models.DefaultDBPath + ")",
		},
		&cli.BoolFlag{
			Name:  "no-db",
			Usage: "Do not record runs in the history database",
		},
	}
}

// AnalysisFlags control a single engine run and where its output goes.
func AnalysisFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:    "workers",
			Aliases: []string{"w"},
			Usage:   "Parallel workers, clamped to [1, 32] (default from config, then 4)",
		},
		&cli.IntFlag{
			Name:  "top",
			Usage: "Number of top words to report (default from config, then 30)",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Usage:   "Output file (default from config, then " + models.DefaultOutput + ")",
		},
		&cli.StringFlag{
			Name:  "format",
			Usage: "Output format: json or yaml (default from the file extension)",
		},
		&cli.BoolFlag{
			Name:  "chart",
			Usage: "Print a bar chart of the top words",
		},
	}
}

// VocabularyFlags override the synthetic vocabulary.
func VocabularyFlags() []cli.Flag {
	return []cli.Flag{
		&cli.UintFlag{Name: "vocab-seed", Usage: "Vocabulary seed"},
		&cli.UintFlag{Name: "vocab-size", Usage: "Vocabulary size, at least 100"},
		&cli.IntFlag{Name: "min-len", Usage: "Shortest vocabulary word, at least 1"},
		&cli.IntFlag{Name: "max-len", Usage: "Longest vocabulary word, at least 2"},
	}
}

// SyntheticFlags size the generated workload.
func SyntheticFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "files", Usage: "Synthetic documents to generate (default 80)"},
		&cli.Uint64Flag{Name: "words-per-file", Usage: "Words per synthetic document (default 300000)"},
		&cli.UintFlag{Name: "seed", Usage: "Seed of the first synthetic document (default 123)"},
	}
}

// FetchFlags add URL inputs.
func FetchFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "url",
			Aliases: []string{"u"},
			Usage:   "Page to fetch and count (repeatable)",
		},
		&cli.StringFlag{
			Name:  "urls-file",
			Usage: "File with one URL per line",
		},
		&cli.DurationFlag{
			Name:  "fetch-timeout",
			Value: fetcher.DefaultTimeout,
			Usage: "Per-request timeout",
		},
		&cli.StringFlag{
			Name:  "cache-dir",
			Usage: "Cache fetched pages in this directory",
		},
		&cli.DurationFlag{
			Name:  "cache-ttl",
			Value: caching.DefaultTTL,
			Usage: "How long cached pages stay fresh",
		},
	}
}

// Merge concatenates flag groups.
func Merge(groups ...[]cli.Flag) []cli.Flag {
	var out []cli.Flag
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

// DefaultDebounce is how long watch waits for file events to settle.
const DefaultDebounce = 500 * time.Millisecond
