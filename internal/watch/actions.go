package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dtnitsch/wordhist/internal/app"
	"github.com/dtnitsch/wordhist/internal/tui"
	"github.com/dtnitsch/wordhist/pkg/events"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func Flags() []cli.Flag {
	return app.Merge(
		app.AnalysisFlags(),
		[]cli.Flag{
			&cli.DurationFlag{
				Name:  "debounce",
				Value: app.DefaultDebounce,
				Usage: "Wait this long after the last change before re-running",
			},
			&cli.BoolFlag{
				Name:  "tui",
				Usage: "Show a live chart instead of printing one line per run",
			},
		},
	)
}

// WatchAction analyses the .txt files under the given directories and
// re-analyses them on every change until interrupted.
func WatchAction(c *cli.Context) error {
	dirs := c.Args().Slice()
	if len(dirs) == 0 {
		return app.Exit(fmt.Errorf("%w: watch needs at least one directory", app.ErrInvalidArgs))
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			return app.Exit(fmt.Errorf("%w: %s is not a directory", app.ErrInvalidArgs, dir))
		}
	}

	env, err := app.Setup(c)
	if err != nil {
		return app.Exit(err)
	}
	defer env.Close()

	useTUI := c.Bool("tui")
	if useTUI {
		// log lines would tear the alternate screen
		env.Logger = zap.NewNop().Sugar()
	}

	loader := inputs.NewLoader(inputs.WithLoaderLogger(env.Logger))
	analyze := func(ctx context.Context) (manifest.Output, error) {
		paths, err := inputs.DiscoverAll(dirs)
		if err != nil {
			return manifest.Output{}, err
		}
		docs, err := loader.LoadFiles(ctx, paths)
		if err != nil {
			return manifest.Output{}, err
		}
		res, err := env.Analyze(ctx, docs)
		if err != nil {
			return manifest.Output{}, err
		}
		return res.Output, nil
	}

	store := events.NewStore()
	w, err := NewWatcher(dirs, store, analyze, WithLogger(env.Logger), WithDebounce(c.Duration("debounce")))
	if err != nil {
		return app.Exit(err)
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !useTUI {
		unsubscribe := store.SubscribeAll(lineReporter(c.App.Writer, env.Config.Output))
		defer unsubscribe()
		return app.Exit(w.Run(ctx))
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	tuiErr := tui.Run(ctx, dirs[0], store)
	cancel()
	return app.Exit(errors.Join(tuiErr, <-done))
}

// lineReporter prints one line per finished or failed run.
func lineReporter(out io.Writer, path string) events.Handler {
	return func(key string, value any) {
		switch key {
		case events.KeyReport:
			o, ok := value.(manifest.Output)
			if !ok {
				return
			}
			keywords := o.Keywords(5)
			fmt.Fprintf(out, "files=%d tokens=%d unique=%d elapsed=%dms top=%v -> %s\n",
				o.Meta.Files, o.Meta.TotalTokens, o.Meta.UniqueTokens, o.Meta.TotalElapsedMs, keywords, path)
		case events.KeyError:
			fmt.Fprintf(out, "error: %v\n", value)
		}
	}
}
