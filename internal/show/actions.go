package show

import (
	"fmt"
	"io"
	"os"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/chart"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/urfave/cli/v2"
)

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "top", Usage: "Only chart the first N words (0 = all)"},
		&cli.IntFlag{Name: "width", Value: chart.DefaultWidth, Usage: "Chart width in columns"},
		&cli.BoolFlag{Name: "files", Usage: "Also chart per-file elapsed time"},
	}
}

// ShowAction renders a saved output file as bar charts.
func ShowAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: show takes exactly one output file", app.ExitInvalidInput)
	}

	path := c.Args().First()
	store := app.NewStorage()
	if !store.HasFile(path) {
		return cli.Exit(fmt.Sprintf("Error: no such output file: %s", path), app.ExitInvalidInput)
	}
	out, err := store.LoadOutput(path)
	if err != nil {
		return app.Exit(err)
	}
	render(os.Stdout, out, c.Int("top"), c.Int("width"), c.Bool("files"))
	return nil
}

func render(w io.Writer, out manifest.Output, top, width int, withFiles bool) {
	words := out.TopWords
	if top > 0 && len(words) > top {
		words = words[:top]
	}
	m := out.Meta
	fmt.Fprintln(w, chart.Bars(chart.Title(m.Mode, m.Files, m.TotalTokens), words, width))

	if withFiles {
		fmt.Fprintln(w)
		fmt.Fprintln(w, chart.Bars("Elapsed per file [ms]", fileBars(out.PerFile), width))
	}
}

// fileBars reuses the word chart for per-file timings.
func fileBars(files []models.DocumentStat) []models.WordCount {
	bars := make([]models.WordCount, len(files))
	for i, f := range files {
		ms := f.ElapsedMs
		if ms < 0 {
			ms = 0
		}
		bars[i] = models.WordCount{Word: f.Name, Count: uint64(ms)}
	}
	return bars
}
