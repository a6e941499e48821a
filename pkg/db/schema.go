package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- One row per completed analysis run
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    mode TEXT NOT NULL,              -- text, synthetic, mixed
    workers INTEGER NOT NULL,
    files INTEGER NOT NULL,
    total_tokens INTEGER NOT NULL,
    unique_tokens INTEGER NOT NULL,
    total_elapsed_ms INTEGER NOT NULL,
    avg_elapsed_ms INTEGER,          -- NULL when the run had no files
    input_hash TEXT NOT NULL,
    bench_id TEXT                    -- set for runs recorded by a benchmark sweep
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
CREATE INDEX IF NOT EXISTS idx_runs_input_hash ON runs(input_hash);
CREATE INDEX IF NOT EXISTS idx_runs_bench ON runs(bench_id) WHERE bench_id IS NOT NULL;

-- Ranked top words of a run
CREATE TABLE IF NOT EXISTS run_top_words (
    run_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, rank),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

-- Per-file statistics, in report order
CREATE TABLE IF NOT EXISTS run_files (
    run_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    name TEXT NOT NULL,
    tokens INTEGER NOT NULL,
    elapsed_ms INTEGER NOT NULL,
    PRIMARY KEY (run_id, position),
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);
`
