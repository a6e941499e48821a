package count

import (
	"os"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/urfave/cli/v2"
)

// Flags for the count command.
func Flags() []cli.Flag {
	return app.Merge(
		app.AnalysisFlags(),
		app.FetchFlags(),
		[]cli.Flag{
			&cli.BoolFlag{
				Name:  "synthetic",
				Usage: "Add the synthetic workload sized by --files, --words-per-file and --seed",
			},
		},
		app.SyntheticFlags(),
		app.VocabularyFlags(),
	)
}

// CountAction counts words in .txt files, directories and fetched pages.
func CountAction(c *cli.Context) error {
	env, err := app.Setup(c)
	if err != nil {
		return app.Exit(err)
	}
	defer env.Close()

	loader, err := env.Loader(c)
	if err != nil {
		return app.Exit(err)
	}
	docs, err := app.CollectDocuments(c.Context, c, loader)
	if err != nil {
		return app.Exit(err)
	}
	if c.Bool("synthetic") {
		s := env.Config.Synthetic
		docs = append(docs, inputs.SyntheticDocuments(s.Files, s.WordsPerFile, s.Seed)...)
	}
	if len(docs) == 0 {
		env.Logger.Errorw("No .txt files or URLs to analyse", "args", c.Args().Slice())
		return app.Exit(app.ErrNoInput)
	}

	res, err := env.Analyze(c.Context, docs)
	if err != nil {
		return app.Exit(err)
	}
	app.PrintSummary(os.Stdout, res, c.Bool("chart"))
	return nil
}
