package app

import (
	"context"
	"fmt"
	"io"

	"github.com/dtnitsch/wordhist/internal/common"
	"github.com/dtnitsch/wordhist/internal/logging"
	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/caching"
	"github.com/dtnitsch/wordhist/pkg/chart"
	"github.com/dtnitsch/wordhist/pkg/db"
	"github.com/dtnitsch/wordhist/pkg/engine"
	"github.com/dtnitsch/wordhist/pkg/fetcher"
	"github.com/dtnitsch/wordhist/pkg/inputs"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/dtnitsch/wordhist/pkg/storage"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

// Env is what a command needs to analyse documents and persist the result.
type Env struct {
	Logger  *zap.SugaredLogger
	Config  models.Config
	History *db.DB // nil with --no-db
	Storage *storage.Storage
}

// Result is one persisted run.
type Result struct {
	Output manifest.Output
	Path   string
	RunID  string
	Bytes  int64
}

// Setup builds the logger, resolves the config and opens the history
// database. Callers must Close the returned Env.
func Setup(c *cli.Context) (*Env, error) {
	logger, err := logging.New(c.Bool("quiet"), c.Bool("verbose"))
	if err != nil {
		return nil, err
	}
	cfg, err := ResolveConfig(c)
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	env := &Env{Logger: logger, Config: cfg, Storage: NewStorage()}
	if !c.Bool("no-db") {
		history, err := db.Open(cfg.DBPath)
		if err != nil {
			_ = logger.Sync()
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		env.History = history
		logger.Debugw("Recording runs", "db", history.Path())
	}
	logger.Debugw("Configuration resolved", "workers", cfg.Workers, "top", cfg.Top, "output", cfg.Output, "db", cfg.DBPath)
	return env, nil
}

// Close releases the database and flushes the logger.
func (e *Env) Close() {
	if e.History != nil {
		if err := e.History.Close(); err != nil {
			e.Logger.Warnw("Failed to close database", "error", err)
		}
	}
	_ = e.Logger.Sync()
}

// Coordinator returns an engine configured from Env.
func (e *Env) Coordinator() *engine.Coordinator {
	return engine.New(
		engine.WithLogger(e.Logger),
		engine.WithTop(e.Config.Top),
		engine.WithVocabulary(e.Config.Vocabulary),
	)
}

// Loader returns an input loader using the fetch flags on c.
func (e *Env) Loader(c *cli.Context) (*inputs.Loader, error) {
	opts := []inputs.LoaderOption{
		inputs.WithLoaderLogger(e.Logger),
		inputs.WithFetcher(fetcher.NewFetcher(fetcher.WithTimeout(c.Duration("fetch-timeout")))),
	}
	if dir := c.String("cache-dir"); dir != "" {
		cache, err := caching.NewCache(dir, c.Duration("cache-ttl"))
		if err != nil {
			return nil, err
		}
		opts = append(opts, inputs.WithCache(cache))
	}
	return inputs.NewLoader(opts...), nil
}

// CollectDocuments loads every .txt file under the positional arguments and
// every URL given by --url or --urls-file, files first.
func CollectDocuments(ctx context.Context, c *cli.Context, loader *inputs.Loader) ([]models.Document, error) {
	paths, err := inputs.DiscoverAll(c.Args().Slice())
	if err != nil {
		return nil, err
	}
	docs, err := loader.LoadFiles(ctx, paths)
	if err != nil {
		return nil, err
	}

	urls := c.StringSlice("url")
	if file := c.String("urls-file"); file != "" {
		listed, err := inputs.ReadURLList(file)
		if err != nil {
			return nil, err
		}
		urls = append(urls, listed...)
	}
	if len(urls) > 0 {
		pages, err := loader.LoadURLs(ctx, urls)
		if err != nil {
			return nil, err
		}
		docs = append(docs, pages...)
	}
	return docs, nil
}

// Analyze runs the engine over docs, writes the output file and records the
// run in the history database.
func (e *Env) Analyze(ctx context.Context, docs []models.Document) (Result, error) {
	if len(docs) == 0 {
		return Result{}, ErrNoInput
	}
	report, err := e.Coordinator().Run(ctx, docs, e.Config.Workers)
	if err != nil {
		return Result{}, err
	}

	res := Result{
		Output: manifest.Build(report, models.DetectMode(docs), e.Config.Workers),
		Path:   e.Config.Output,
	}
	if err := e.Storage.SaveOutput(res.Path, e.Config.Format, res.Output); err != nil {
		return res, err
	}
	if stats, err := e.Storage.GetFileStats(res.Path); err == nil {
		res.Bytes = stats.SizeBytes
	}
	res.RunID = e.Record(res.Output, docs, "")
	return res, nil
}

// Record stores out in the history database. Failures are logged, not
// returned; the output file is already written. Returns the run id or "".
func (e *Env) Record(out manifest.Output, docs []models.Document, benchID string) string {
	if e.History == nil {
		return ""
	}
	runID, err := e.History.InsertRun(db.NewRun(out, common.DocumentsHash(docs), benchID))
	if err != nil {
		e.Logger.Warnw("Failed to record run", "error", err)
		return ""
	}
	return runID
}

// PrintSummary writes the human readable run summary.
func PrintSummary(w io.Writer, res Result, withChart bool) {
	m := res.Output.Meta
	fmt.Fprintf(w, "Files: %s | Tokens: %s | Unique: %s\n",
		humanize.Comma(int64(m.Files)), humanize.Comma(int64(m.TotalTokens)), humanize.Comma(int64(m.UniqueTokens)))
	fmt.Fprintf(w, "Total time: %d ms | workers=%d | mode=%s\n", m.TotalElapsedMs, m.Workers, m.Mode)
	if res.Bytes > 0 {
		fmt.Fprintf(w, "Output: %s (%s)\n", res.Path, humanize.Bytes(uint64(res.Bytes)))
	} else {
		fmt.Fprintf(w, "Output: %s\n", res.Path)
	}
	if res.RunID != "" {
		fmt.Fprintf(w, "Run: %s\n", res.RunID)
	}
	if withChart {
		fmt.Fprintln(w)
		fmt.Fprintln(w, chart.Bars(chart.Title(m.Mode, m.Files, m.TotalTokens), res.Output.TopWords, chart.DefaultWidth))
	}
}

// NewStorage returns the output file store.
func NewStorage() *storage.Storage {
	return &storage.Storage{}
}
