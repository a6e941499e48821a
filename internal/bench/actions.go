package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/internal/common"
	"github.com/dtnitsch/wordhist/models"
	benchpkg "github.com/dtnitsch/wordhist/pkg/bench"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/dtnitsch/wordhist/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func Flags() []cli.Flag {
	return app.Merge(
		[]cli.Flag{
			&cli.IntFlag{Name: "min", Value: 1, Usage: "Smallest worker count"},
			&cli.IntFlag{Name: "max", Value: 8, Usage: "Largest worker count"},
			&cli.StringFlag{Name: "out-dir", Value: "output/bench", Usage: "Directory for the per-run outputs"},
			&cli.StringFlag{Name: "summary-out", Usage: "Summary JSON path (default <out-dir>/summary.json)"},
			&cli.IntFlag{Name: "top", Usage: "Number of top words per run"},
			&cli.BoolFlag{Name: "synthetic", Usage: "Benchmark the synthetic workload instead of files"},
		},
		app.SyntheticFlags(),
		app.VocabularyFlags(),
		app.FetchFlags(),
	)
}

// savingRunner writes every run's output as hist_w<N>.json into dir.
type savingRunner struct {
	runner  benchpkg.Runner
	storage *storage.Storage
	dir     string
	mode    string
}

func (s *savingRunner) Run(ctx context.Context, docs []models.Document, workers int) (models.AggregateReport, error) {
	report, err := s.runner.Run(ctx, docs, workers)
	if err != nil {
		return report, err
	}
	path := filepath.Join(s.dir, fmt.Sprintf("hist_w%d.json", workers))
	if err := s.storage.SaveOutput(path, storage.FormatJSON, manifest.Build(report, s.mode, workers)); err != nil {
		return report, err
	}
	return report, nil
}

// BenchAction runs the analysis once per worker count and prints a table.
func BenchAction(c *cli.Context) error {
	env, err := app.Setup(c)
	if err != nil {
		return app.Exit(err)
	}
	defer env.Close()

	var docs []models.Document
	input := "synthetic"
	if c.Bool("synthetic") {
		s := env.Config.Synthetic
		docs = inputs.SyntheticDocuments(s.Files, s.WordsPerFile, s.Seed)
	} else {
		loader, err := env.Loader(c)
		if err != nil {
			return app.Exit(err)
		}
		if docs, err = app.CollectDocuments(c.Context, c, loader); err != nil {
			return app.Exit(err)
		}
		input = fmt.Sprint(c.Args().Slice())
	}
	if len(docs) == 0 {
		return app.Exit(app.ErrNoInput)
	}

	outDir := c.String("out-dir")
	runner := &savingRunner{
		runner:  env.Coordinator(),
		storage: env.Storage,
		dir:     outDir,
		mode:    models.DetectMode(docs),
	}

	quiet := c.Bool("quiet")
	opts := benchpkg.Options{
		Input:     input,
		Top:       env.Config.Top,
		Logger:    env.Logger,
		InputHash: common.DocumentsHash(docs),
		OnRow: func(i, total int, r benchpkg.Row) {
			if !quiet {
				fmt.Printf("[%d/%d] workers=%d: done (%d ms, tok/s=%s)\n",
					i, total, r.Workers, r.ElapsedMs, humanize.Comma(r.TokPerS))
			}
		},
	}
	if env.History != nil {
		opts.Recorder = env.History
	}

	summary, err := benchpkg.Sweep(c.Context, runner, docs, c.Int("min"), c.Int("max"), opts)
	if err != nil {
		return app.Exit(err)
	}

	summaryPath := c.String("summary-out")
	if summaryPath == "" {
		summaryPath = filepath.Join(outDir, "summary.json")
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return app.Exit(fmt.Errorf("error marshalling summary: %w", err))
	}
	if err := env.Storage.SaveFile(summaryPath, append(data, '\n')); err != nil {
		return app.Exit(err)
	}

	if !quiet {
		fmt.Printf("Summary JSON: %s\n", summaryPath)
		if env.History != nil {
			fmt.Printf("Bench id: %s (wordhist history list)\n", summary.Meta.BenchID)
		}
		fmt.Println()
	}
	fmt.Println(benchpkg.FormatTable(summary.Rows))
	return nil
}
