package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dtnitsch/wordhist/models"
	"github.com/dtnitsch/wordhist/pkg/manifest"
	"github.com/google/uuid"
)

// ErrRunNotFound is returned by GetRun for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded analysis. TopWords and PerFile are only filled by GetRun.
type Run struct {
	RunID          string
	CreatedAt      time.Time
	Mode           string
	Workers        int
	Files          int
	TotalTokens    uint64
	UniqueTokens   int
	TotalElapsedMs int64
	AvgElapsedMs   *int64
	InputHash      string
	BenchID        string
	TopWords       []models.WordCount
	PerFile        []models.DocumentStat
}

// NewRun builds a run record from a finished output.
func NewRun(out manifest.Output, inputHash, benchID string) Run {
	return Run{
		Mode:           out.Meta.Mode,
		Workers:        out.Meta.Workers,
		Files:          out.Meta.Files,
		TotalTokens:    out.Meta.TotalTokens,
		UniqueTokens:   out.Meta.UniqueTokens,
		TotalElapsedMs: out.Meta.TotalElapsedMs,
		AvgElapsedMs:   out.Meta.AvgElapsedMsPerFile,
		InputHash:      inputHash,
		BenchID:        benchID,
		TopWords:       out.TopWords,
		PerFile:        out.PerFile,
	}
}

// Output converts the run back to the output contract.
func (r Run) Output() manifest.Output {
	top := r.TopWords
	if top == nil {
		top = []models.WordCount{}
	}
	files := r.PerFile
	if files == nil {
		files = []models.DocumentStat{}
	}
	return manifest.Output{
		Meta: manifest.Meta{
			Mode:                r.Mode,
			Workers:             r.Workers,
			Files:               r.Files,
			TotalTokens:         r.TotalTokens,
			UniqueTokens:        r.UniqueTokens,
			TotalElapsedMs:      r.TotalElapsedMs,
			AvgElapsedMsPerFile: r.AvgElapsedMs,
		},
		TopWords: top,
		PerFile:  files,
	}
}

// InsertRun stores r with its top words and per-file stats in one
// transaction. A run id and creation time are assigned when missing.
// Returns the run id.
func (db *DB) InsertRun(r Run) (string, error) {
	if r.RunID == "" {
		r.RunID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	tx, err := db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`
		INSERT INTO runs (run_id, created_at, mode, workers, files, total_tokens,
		                  unique_tokens, total_elapsed_ms, avg_elapsed_ms, input_hash, bench_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.RunID, r.CreatedAt.Format(time.RFC3339Nano), r.Mode, r.Workers, r.Files,
		int64(r.TotalTokens), r.UniqueTokens, r.TotalElapsedMs,
		newNullInt64(r.AvgElapsedMs), r.InputHash, NewNullString(r.BenchID))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, wc := range r.TopWords {
		if _, err := tx.Exec(`INSERT INTO run_top_words (run_id, rank, word, count) VALUES (?, ?, ?, ?)`,
			r.RunID, i+1, wc.Word, int64(wc.Count)); err != nil {
			return "", fmt.Errorf("failed to insert top word: %w", err)
		}
	}
	for i, f := range r.PerFile {
		if _, err := tx.Exec(`INSERT INTO run_files (run_id, position, name, tokens, elapsed_ms) VALUES (?, ?, ?, ?, ?)`,
			r.RunID, i, f.Name, int64(f.Tokens), f.ElapsedMs); err != nil {
			return "", fmt.Errorf("failed to insert run file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return r.RunID, nil
}

const runColumns = `run_id, created_at, mode, workers, files, total_tokens, unique_tokens,
	total_elapsed_ms, avg_elapsed_ms, input_hash, bench_id`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (Run, error) {
	var (
		r       Run
		created string
		tokens  int64
		avg     sql.NullInt64
		benchID sql.NullString
	)
	if err := s.Scan(&r.RunID, &created, &r.Mode, &r.Workers, &r.Files, &tokens,
		&r.UniqueTokens, &r.TotalElapsedMs, &avg, &r.InputHash, &benchID); err != nil {
		return Run{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, created)
	if err != nil {
		return Run{}, fmt.Errorf("bad created_at %q: %w", created, err)
	}
	r.CreatedAt = t
	r.TotalTokens = uint64(tokens)
	if avg.Valid {
		v := avg.Int64
		r.AvgElapsedMs = &v
	}
	r.BenchID = benchID.String
	return r, nil
}

// ListRuns returns the most recent runs first. limit <= 0 returns all.
func (db *DB) ListRuns(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY created_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}
	return db.queryRuns(query)
}

// ListBenchRuns returns the runs recorded by one benchmark sweep, ordered by
// worker count.
func (db *DB) ListBenchRuns(benchID string) ([]Run, error) {
	return db.queryRuns(`SELECT `+runColumns+` FROM runs WHERE bench_id = ? ORDER BY workers`, benchID)
}

// FindRunsByInput returns earlier runs over the same input set, newest first.
func (db *DB) FindRunsByInput(inputHash string) ([]Run, error) {
	return db.queryRuns(`SELECT `+runColumns+` FROM runs WHERE input_hash = ? ORDER BY created_at DESC`, inputHash)
}

func (db *DB) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun loads a run with its top words and per-file stats.
func (db *DB) GetRun(runID string) (*Run, error) {
	r, err := scanRun(db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	if r.TopWords, err = db.runTopWords(runID); err != nil {
		return nil, err
	}
	if r.PerFile, err = db.runFiles(runID); err != nil {
		return nil, err
	}
	return &r, nil
}

func (db *DB) runTopWords(runID string) ([]models.WordCount, error) {
	rows, err := db.Query(`SELECT word, count FROM run_top_words WHERE run_id = ? ORDER BY rank`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get top words: %w", err)
	}
	defer rows.Close()

	words := []models.WordCount{}
	for rows.Next() {
		var (
			wc    models.WordCount
			count int64
		)
		if err := rows.Scan(&wc.Word, &count); err != nil {
			return nil, fmt.Errorf("failed to scan top word: %w", err)
		}
		wc.Count = uint64(count)
		words = append(words, wc)
	}
	return words, rows.Err()
}

func (db *DB) runFiles(runID string) ([]models.DocumentStat, error) {
	rows, err := db.Query(`SELECT name, tokens, elapsed_ms FROM run_files WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run files: %w", err)
	}
	defer rows.Close()

	files := []models.DocumentStat{}
	for rows.Next() {
		var (
			f      models.DocumentStat
			tokens int64
		)
		if err := rows.Scan(&f.Name, &tokens, &f.ElapsedMs); err != nil {
			return nil, fmt.Errorf("failed to scan run file: %w", err)
		}
		f.Tokens = uint64(tokens)
		files = append(files, f)
	}
	return files, rows.Err()
}

// DeleteRun removes a run with its top words and per-file stats.
func (db *DB) DeleteRun(runID string) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// children first; foreign_keys is a per-connection pragma
	for _, table := range []string{"run_top_words", "run_files"} {
		if _, err := tx.Exec(`DELETE FROM `+table+` WHERE run_id = ?`, runID); err != nil {
			return fmt.Errorf("failed to delete from %s: %w", table, err)
		}
	}
	res, err := tx.Exec(`DELETE FROM runs WHERE run_id = ?`, runID)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return tx.Commit()
}

// NewNullString maps "" to NULL.
func NewNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func newNullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
