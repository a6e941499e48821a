package history

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dtnitsch/wordhist/internal/app"
	dbpkg "github.com/dtnitsch/wordhist/pkg/db"
	"github.com/dtnitsch/wordhist/pkg/chart"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
)

func ListFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "limit", Value: 20, Usage: "Show at most this many runs"},
		&cli.StringFlag{Name: "bench", Usage: "Only show the runs of this bench sweep, by worker count"},
		&cli.StringFlag{Name: "input", Usage: "Only show runs over the input set with this hash"},
	}
}

func ShowFlags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{Name: "files", Value: 10, Usage: "Per-file rows to print, 0 for all"},
		&cli.BoolFlag{Name: "chart", Usage: "Print a bar chart of the top words"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Write the run back out as an output file"},
		&cli.StringFlag{Name: "format", Usage: "Output format for --out: json or yaml"},
	}
}

// openHistory opens the database named by --db or the config.
func openHistory(c *cli.Context) (*dbpkg.DB, error) {
	cfg, err := app.ResolveConfig(c)
	if err != nil {
		return nil, err
	}
	database, err := dbpkg.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// ListAction prints recent runs, newest first.
func ListAction(c *cli.Context) error {
	database, err := openHistory(c)
	if err != nil {
		return app.Exit(err)
	}
	defer database.Close()

	var runs []dbpkg.Run
	if benchID := c.String("bench"); benchID != "" {
		runs, err = database.ListBenchRuns(benchID)
	} else if hash := c.String("input"); hash != "" {
		runs, err = database.FindRunsByInput(hash)
	} else {
		runs, err = database.ListRuns(c.Int("limit"))
	}
	if err != nil {
		return app.Exit(err)
	}

	printRuns(os.Stdout, runs)
	fmt.Printf("Database: %s\n", database.Path())
	return nil
}

func printRuns(w io.Writer, runs []dbpkg.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs found")
		return
	}

	fmt.Fprintf(w, "%-36s  %-19s  %-9s  %-7s  %-6s  %-12s  %-8s  %-10s\n",
		"Run", "Created", "Mode", "Workers", "Files", "Tokens", "Unique", "Elapsed")
	fmt.Fprintln(w, strings.Repeat("-", 120))
	for _, r := range runs {
		fmt.Fprintf(w, "%-36s  %-19s  %-9s  %-7d  %-6d  %-12s  %-8s  %-10s\n",
			r.RunID,
			r.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			r.Mode,
			r.Workers,
			r.Files,
			humanize.Comma(int64(r.TotalTokens)),
			humanize.Comma(int64(r.UniqueTokens)),
			fmt.Sprintf("%d ms", r.TotalElapsedMs),
		)
	}
	fmt.Fprintf(w, "\nTotal: %d runs\n", len(runs))
}

// ShowAction prints one run. With --out it also writes the run back out in
// the output file format.
func ShowAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Error: history show takes exactly one run id", app.ExitInvalidInput)
	}

	database, err := openHistory(c)
	if err != nil {
		return app.Exit(err)
	}
	defer database.Close()

	run, err := database.GetRun(c.Args().First())
	if errors.Is(err, dbpkg.ErrRunNotFound) {
		return cli.Exit(fmt.Sprintf("Error: %v", err), app.ExitInvalidInput)
	}
	if err != nil {
		return app.Exit(err)
	}

	printRun(os.Stdout, run, c.Int("files"))
	if c.Bool("chart") {
		fmt.Println()
		fmt.Println(chart.Bars(chart.Title(run.Mode, run.Files, run.TotalTokens), run.TopWords, chart.DefaultWidth))
	}

	if out := c.String("out"); out != "" {
		cfg, err := app.ResolveConfig(c)
		if err != nil {
			return app.Exit(err)
		}
		if err := app.NewStorage().SaveOutput(out, cfg.Format, run.Output()); err != nil {
			return app.Exit(err)
		}
		fmt.Printf("\nOutput: %s\n", out)
	}
	return nil
}

// DeleteAction removes the given runs.
func DeleteAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.Exit("Error: history delete takes at least one run id", app.ExitInvalidInput)
	}

	database, err := openHistory(c)
	if err != nil {
		return app.Exit(err)
	}
	defer database.Close()

	for _, runID := range c.Args().Slice() {
		if err := database.DeleteRun(runID); err != nil {
			if errors.Is(err, dbpkg.ErrRunNotFound) {
				return cli.Exit(fmt.Sprintf("Error: %v", err), app.ExitInvalidInput)
			}
			return app.Exit(err)
		}
		fmt.Printf("Deleted run %s\n", runID)
	}
	return nil
}

func printRun(w io.Writer, r *dbpkg.Run, maxFiles int) {
	out := r.Output()
	fmt.Fprintf(w, "Run %s\n", r.RunID)
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintf(w, "Created:     %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "Mode:        %s\n", r.Mode)
	fmt.Fprintf(w, "Workers:     %d\n", r.Workers)
	fmt.Fprintf(w, "Files:       %d\n", r.Files)
	fmt.Fprintf(w, "Tokens:      %s (%s unique)\n", humanize.Comma(int64(r.TotalTokens)), humanize.Comma(int64(r.UniqueTokens)))
	fmt.Fprintf(w, "Elapsed:     %d ms (avg %s per file)\n", r.TotalElapsedMs, avgString(r.AvgElapsedMs))
	if r.BenchID != "" {
		fmt.Fprintf(w, "Bench:       %s\n", r.BenchID)
	}
	fmt.Fprintf(w, "Input hash:  %s\n", r.InputHash)

	fmt.Fprintf(w, "\nTop words (%d):\n", len(out.TopWords))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	fmt.Fprintln(w, strings.Join(out.Keywords(0), ", "))

	files := out.PerFile
	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	fmt.Fprintf(w, "\nSlowest files (%d of %d):\n", len(files), len(out.PerFile))
	fmt.Fprintln(w, strings.Repeat("-", 60))
	for i, f := range files {
		fmt.Fprintf(w, "%3d. %s  tokens=%s  %d ms\n", i+1, f.Name, humanize.Comma(int64(f.Tokens)), f.ElapsedMs)
	}
}

func avgString(v *int64) string {
	if v == nil {
		return "n/a"
	}
	return fmt.Sprintf("%d ms", *v)
}
