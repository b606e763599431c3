package db

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;

-- Runs: one row per pipeline invocation
CREATE TABLE IF NOT EXISTS runs (
    run_id TEXT PRIMARY KEY,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    duration_ms INTEGER NOT NULL DEFAULT 0,
    model TEXT,
    doc_count INTEGER NOT NULL DEFAULT 0,
    success_count INTEGER NOT NULL DEFAULT 0,
    failed_count INTEGER NOT NULL DEFAULT 0,
    total_chars INTEGER NOT NULL DEFAULT 0,
    total_words INTEGER NOT NULL DEFAULT 0,
    unique_keywords INTEGER NOT NULL DEFAULT 0,
    language TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);

-- Per-document outcomes for each run
CREATE TABLE IF NOT EXISTS run_documents (
    document_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    name TEXT NOT NULL,
    source_type TEXT,
    status TEXT NOT NULL,
    char_count INTEGER NOT NULL DEFAULT 0,
    page_count INTEGER NOT NULL DEFAULT 0,
    summarized BOOLEAN NOT NULL DEFAULT 0,
    error_type TEXT,
    error_message TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_run_documents_run ON run_documents(run_id);

-- Keyword ranking snapshot for each run
CREATE TABLE IF NOT EXISTS run_keywords (
    keyword_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL,
    rank INTEGER NOT NULL,
    word TEXT NOT NULL,
    count INTEGER NOT NULL,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, rank)
);

CREATE INDEX IF NOT EXISTS idx_run_keywords_run ON run_keywords(run_id);
`
