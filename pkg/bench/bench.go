// Package bench times the engine across a range of worker counts.
package bench

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/db"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner runs one analysis. *engine.Coordinator satisfies it.
type Runner interface {
	Run(ctx context.Context, docs []models.Document, workers int) (models.AggregateReport, error)
}

// Recorder stores a finished run. *db.DB satisfies it.
type Recorder interface {
	InsertRun(r db.Run) (string, error)
}

// Row is one worker count of a sweep.
type Row struct {
	Workers      int      `json:"workers"`
	ElapsedMs    int64    `json:"elapsed_ms"`
	Files        int      `json:"files"`
	TotalTokens  uint64   `json:"total_tokens"`
	UniqueTokens int      `json:"unique_tokens"`
	TokPerS      int64    `json:"tok_per_s"`
	SpeedupVs1   *float64 `json:"speedup_vs_1"`
	RunID        string   `json:"run_id,omitempty"`
}

// Meta describes a sweep.
type Meta struct {
	BenchID    string `json:"bench_id"`
	Mode       string `json:"mode"`
	Input      string `json:"input,omitempty"`
	WorkersMin int    `json:"workers_min"`
	WorkersMax int    `json:"workers_max"`
	Top        int    `json:"top"`
}

// Summary is the sweep result, written as JSON next to the per-run outputs.
type Summary struct {
	Meta Meta  `json:"meta"`
	Rows []Row `json:"rows"`
}

// Options tune a sweep. Zero values are fine.
type Options struct {
	Input     string
	Top       int
	Logger    *zap.SugaredLogger
	Recorder  Recorder
	InputHash string
	// OnRow is called after each worker count finishes.
	OnRow func(index, total int, row Row)
}

// Sweep runs docs once per worker count in [minWorkers, maxWorkers], both
// clamped to [1, 32]. The first failing run aborts the sweep.
func Sweep(ctx context.Context, runner Runner, docs []models.Document, minWorkers, maxWorkers int, opts Options) (Summary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	lo := models.ClampWorkers(minWorkers)
	hi := max(lo, models.ClampWorkers(maxWorkers))
	mode := models.DetectMode(docs)

	summary := Summary{
		Meta: Meta{
			BenchID:    uuid.NewString(),
			Mode:       mode,
			Input:      opts.Input,
			WorkersMin: lo,
			WorkersMax: hi,
			Top:        opts.Top,
		},
		Rows: make([]Row, 0, hi-lo+1),
	}

	total := hi - lo + 1
	for workers := lo; workers <= hi; workers++ {
		logger.Infow("Bench run starting", "bench_id", summary.Meta.BenchID, "workers", workers)
		report, err := runner.Run(ctx, docs, workers)
		if err != nil {
			return summary, fmt.Errorf("bench run with %d workers: %w", workers, err)
		}

		row := Row{
			Workers:      workers,
			ElapsedMs:    report.TotalElapsedMs,
			Files:        len(report.Documents),
			TotalTokens:  report.TotalTokens,
			UniqueTokens: report.UniqueTokens,
			TokPerS:      TokensPerSecond(report.TotalTokens, report.TotalElapsedMs),
		}

		if opts.Recorder != nil {
			out := manifest.Build(report, mode, workers)
			id, err := opts.Recorder.InsertRun(db.NewRun(out, opts.InputHash, summary.Meta.BenchID))
			if err != nil {
				logger.Warnw("Failed to record bench run", "workers", workers, "error", err)
			}
			row.RunID = id
		}

		summary.Rows = append(summary.Rows, row)
		if opts.OnRow != nil {
			opts.OnRow(workers-lo+1, total, row)
		}
	}

	fillSpeedup(summary.Rows)
	return summary, nil
}

// TokensPerSecond floors the elapsed time at one millisecond.
func TokensPerSecond(tokens uint64, elapsedMs int64) int64 {
	secs := max(0.001, float64(elapsedMs)/1000)
	return int64(float64(tokens) / secs)
}

// fillSpeedup sets each row's speedup against the first row. It stays nil
// when either time is zero.
func fillSpeedup(rows []Row) {
	if len(rows) == 0 {
		return
	}
	base := rows[0].ElapsedMs
	for i := range rows {
		if base > 0 && rows[i].ElapsedMs > 0 {
			s := float64(base) / float64(rows[i].ElapsedMs)
			rows[i].SpeedupVs1 = &s
		}
	}
}

// FormatTable renders rows as a left-aligned plain text table.
func FormatTable(rows []Row) string {
	headers := []string{"workers", "elapsed_ms", "files", "tokens", "unique", "tok/s", "speedup"}
	cells := make([][]string, len(rows))
	for i, r := range rows {
		speedup := "-"
		if r.SpeedupVs1 != nil {
			speedup = strconv.FormatFloat(*r.SpeedupVs1, 'f', 2, 64)
		}
		cells[i] = []string{
			strconv.Itoa(r.Workers),
			strconv.FormatInt(r.ElapsedMs, 10),
			strconv.Itoa(r.Files),
			strconv.FormatUint(r.TotalTokens, 10),
			strconv.Itoa(r.UniqueTokens),
			strconv.FormatInt(r.TokPerS, 10),
			speedup,
		}
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range cells {
		for i, c := range row {
			widths[i] = max(widths[i], len(c))
		}
	}

	line := func(parts []string) string {
		padded := make([]string, len(parts))
		for i, p := range parts {
			padded[i] = p + strings.Repeat(" ", widths[i]-len(p))
		}
		return strings.TrimRight(strings.Join(padded, "  "), " ")
	}

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	out := []string{line(headers), line(sep)}
	for _, row := range cells {
		out = append(out, line(row))
	}
	return strings.Join(out, "\n")
}
