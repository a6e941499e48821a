package synth

import (
	"fmt"
	"os"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/urfave/cli/v2"
)

func Flags() []cli.Flag {
	return app.Merge(
		app.AnalysisFlags(),
		app.SyntheticFlags(),
		app.VocabularyFlags(),
		[]cli.Flag{
			&cli.StringFlag{
				Name:  "write-dir",
				Usage: "Also write the generated documents as .txt files into this directory",
			},
		},
	)
}

// SynthAction analyses a generated workload. The documents are produced
// inside the workers, so nothing is read from disk.
func SynthAction(c *cli.Context) error {
	env, err := app.Setup(c)
	if err != nil {
		return app.Exit(err)
	}
	defer env.Close()

	s := env.Config.Synthetic
	docs := inputs.SyntheticDocuments(s.Files, s.WordsPerFile, s.Seed)

	if dir := c.String("write-dir"); dir != "" {
		paths, err := inputs.WriteSyntheticFiles(dir, docs, env.Config.Vocabulary)
		if err != nil {
			return app.Exit(err)
		}
		fmt.Printf("Generated %d files in: %s\n", len(paths), dir)
	}

	res, err := env.Analyze(c.Context, docs)
	if err != nil {
		return app.Exit(err)
	}
	app.PrintSummary(os.Stdout, res, c.Bool("chart"))
	return nil
}
