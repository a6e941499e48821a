// Package engine runs a word-frequency analysis across a pool of isolated
// workers and merges their partial results.
//
// Run splits the documents round-robin into one chunk per worker, starts one
// goroutine per chunk and waits for all of them. Workers share no mutable
// state: each gets its chunk and the vocabulary config by value and hands
// back one PartialResult. Partials are merged in chunk index order after the
// barrier, which fixes the tie order of the top-word list.
//
// The first worker error ends the run. Workers still in flight are not
// cancelled; they finish into a buffered channel and their results are
// dropped.
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/mapreduce"
	"github.com/dtnitsch/wordhist/pkg/synth"
	"go.uber.org/zap"
)

// State is the coordinator's run state.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateDone
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDone:
		return "done"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

type chunkFunc func(index int, docs []models.Document, vocab models.VocabularyConfig) (models.PartialResult, error)

// Option customizes a Coordinator.
type Option func(*Coordinator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTop sets how many top words the report keeps. Default 30.
func WithTop(n int) Option {
	return func(c *Coordinator) {
		if n > 0 {
			c.top = n
		}
	}
}

// WithVocabulary sets the vocabulary used for synthetic documents.
func WithVocabulary(cfg models.VocabularyConfig) Option {
	return func(c *Coordinator) {
		c.vocab = cfg
	}
}

// Coordinator dispatches chunks to workers and aggregates their results.
// A Coordinator runs one analysis at a time but may be reused afterwards.
type Coordinator struct {
	logger  *zap.SugaredLogger
	top     int
	vocab   models.VocabularyConfig
	process chunkFunc

	mu    sync.Mutex
	state State
}

// New returns an idle coordinator.
func New(opts ...Option) *Coordinator {
	c := &Coordinator{
		logger:  zap.NewNop().Sugar(),
		top:     models.DefaultTop,
		vocab:   models.DefaultVocabulary(),
		process: processChunk,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// State reports the current run state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Coordinator) begin() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateRunning {
		return ErrAlreadyRunning
	}
	c.state = StateRunning
	return nil
}

func (c *Coordinator) finish(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		return
	}
	c.state = StateDone
}

type chunkResult struct {
	index   int
	partial models.PartialResult
	err     error
}

// Run analyses docs with workers parallel workers and returns the merged
// report. It fails as a whole: on any error the report is the zero value.
//
// Validation errors (ErrInvalidInput, ErrGeneratorConfig) are returned before
// any worker starts. A worker error is returned as soon as it arrives as a
// *WorkerError. If ctx is done before every worker has reported, Run returns
// ctx.Err(); workers are not interrupted.
func (c *Coordinator) Run(ctx context.Context, docs []models.Document, workers int) (report models.AggregateReport, err error) {
	if err := c.begin(); err != nil {
		return models.AggregateReport{}, err
	}
	defer func() { c.finish(err) }()

	if err := c.validate(docs, workers); err != nil {
		c.logger.Warnw("Run rejected", "documents", len(docs), "workers", workers, "error", err)
		return models.AggregateReport{}, err
	}

	start := time.Now()
	chunks := mapreduce.Split(docs, workers)
	c.logger.Infow("Starting run", "documents", len(docs), "workers", workers, "chunks", len(chunks))

	// buffered so stragglers never block after an early return
	results := make(chan chunkResult, len(chunks))
	for i, chunk := range chunks {
		go c.runChunk(i, chunk, results)
	}

	partials := make([]models.PartialResult, len(chunks))
	for received := 0; received < len(chunks); received++ {
		select {
		case r := <-results:
			if r.err != nil {
				c.logger.Errorw("Worker failed", "chunk", r.index, "error", r.err)
				return models.AggregateReport{}, r.err
			}
			c.logger.Debugw("Chunk finished", "chunk", r.index, "documents", len(r.partial.Documents), "tokens", r.partial.TokenCount())
			partials[r.index] = r.partial
		case <-ctx.Done():
			c.logger.Warnw("Run abandoned before all chunks finished", "received", received, "chunks", len(chunks), "error", ctx.Err())
			return models.AggregateReport{}, ctx.Err()
		}
	}

	report = mapreduce.Reduce(partials, c.top)
	report.TotalElapsedMs = time.Since(start).Milliseconds()
	c.logger.Infow("Run finished",
		"total_tokens", report.TotalTokens,
		"unique_tokens", report.UniqueTokens,
		"elapsed_ms", report.TotalElapsedMs,
	)
	return report, nil
}

func (c *Coordinator) validate(docs []models.Document, workers int) error {
	if len(docs) == 0 {
		return fmt.Errorf("%w: no documents", ErrInvalidInput)
	}
	if workers < models.MinWorkers || workers > models.MaxWorkers {
		return fmt.Errorf("%w: worker count %d outside [%d, %d]", ErrInvalidInput, workers, models.MinWorkers, models.MaxWorkers)
	}
	for _, d := range docs {
		if d.IsSynthetic() {
			return synth.Validate(c.vocab)
		}
	}
	return nil
}

func (c *Coordinator) runChunk(index int, docs []models.Document, results chan<- chunkResult) {
	defer func() {
		if p := recover(); p != nil {
			results <- chunkResult{index: index, err: &WorkerError{Chunk: index, Err: fmt.Errorf("panic: %v", p)}}
		}
	}()
	partial, err := c.process(index, docs, c.vocab)
	var we *WorkerError
	if err != nil && !errors.As(err, &we) {
		err = &WorkerError{Chunk: index, Err: err}
	}
	results <- chunkResult{index: index, partial: partial, err: err}
}
