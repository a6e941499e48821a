package main

import (
	"fmt"
	"os"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/internal/bench"
	"github.com/dtnitsch/wordhist/internal/count"
	"github.com/dtnitsch/wordhist/internal/history"
	"github.com/dtnitsch/wordhist/internal/show"
	"github.com/dtnitsch/wordhist/internal/synth"
	"github.com/dtnitsch/wordhist/internal/watch"
	"github.com/urfave/cli/v2"
)

func main() {
	cliApp := &cli.App{
		Name:  "wordhist",
		Usage: "Parallel word-frequency histograms over text files, web pages or a synthetic workload",
		Flags: app.GlobalFlags(),
		Commands: []*cli.Command{
			{
				Name:      "count",
				Usage:     "Count words in .txt files and URLs",
				ArgsUsage: "[paths...]",
				Flags:     count.Flags(),
				Action:    count.CountAction,
			},
			{
				Name:   "synth",
				Usage:  "Count a generated workload",
				Flags:  synth.Flags(),
				Action: synth.SynthAction,
			},
			{
				Name:      "bench",
				Usage:     "Run the same input across a range of worker counts",
				ArgsUsage: "[paths...]",
				Flags:     bench.Flags(),
				Action:    bench.BenchAction,
			},
			{
				Name:  "history",
				Usage: "Inspect recorded runs",
				Subcommands: []*cli.Command{
					{
						Name:   "list",
						Usage:  "List recent runs",
						Flags:  history.ListFlags(),
						Action: history.ListAction,
					},
					{
						Name:      "show",
						Usage:     "Show one run",
						ArgsUsage: "<run-id>",
						Flags:     history.ShowFlags(),
						Action:    history.ShowAction,
					},
					{
						Name:      "delete",
						Usage:     "Delete runs",
						ArgsUsage: "<run-id...>",
						Action:    history.DeleteAction,
					},
				},
			},
			{
				Name:      "show",
				Usage:     "Chart an output file",
				ArgsUsage: "<output-file>",
				Flags:     show.Flags(),
				Action:    show.ShowAction,
			},
			{
				Name:      "watch",
				Usage:     "Re-count directories whenever their .txt files change",
				ArgsUsage: "<dir...>",
				Flags:     watch.Flags(),
				Action:    watch.WatchAction,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(app.ExitFailure)
	}
}
