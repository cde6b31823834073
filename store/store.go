// Package store keeps a SQLite ledger of scan runs: one row per run, one
// per page classified, and one per figure found.
//
// The ledger uses the pure Go modernc.org/sqlite driver and opens the
// database with these pragmas:
//
//	foreign_keys = ON
//	journal_mode = WAL
//	busy_timeout = 10000
//	synchronous  = NORMAL
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/tsawler/figscan/figures"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	pdf_path    TEXT NOT NULL,
	total_pages INTEGER NOT NULL,
	page_offset INTEGER NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT,
	status      TEXT NOT NULL DEFAULT 'running'
);
CREATE TABLE IF NOT EXISTS pages (
	run_id   TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	pdf_page INTEGER NOT NULL,
	colored  INTEGER NOT NULL,
	signal   TEXT NOT NULL DEFAULT '',
	figures  INTEGER NOT NULL DEFAULT 0,
	error    TEXT NOT NULL DEFAULT '',
	PRIMARY KEY (run_id, pdf_page)
);
CREATE TABLE IF NOT EXISTS figures (
	run_id    TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	seq       INTEGER NOT NULL,
	number    TEXT NOT NULL,
	chapter   INTEGER NOT NULL,
	idx       INTEGER NOT NULL,
	caption   TEXT NOT NULL,
	pdf_page  INTEGER NOT NULL,
	book_page INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// Run statuses.
const (
	StatusRunning = "running"
	StatusDone    = "done"
	StatusFailed  = "failed"
)

// Ledger is an open run ledger.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the ledger at path, creating parent directories.
// ":memory:" gives a private in-memory ledger.
func Open(path string) (*Ledger, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("store: mkdir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}
	if path == ":memory:" {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: schema: %w", err)
	}
	return &Ledger{db: db, now: time.Now}, nil
}

// Close closes the database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) timestamp() string {
	return l.now().UTC().Format(time.RFC3339Nano)
}

// BeginRun records the start of a scan and returns its ID, a UUIDv7.
func (l *Ledger) BeginRun(ctx context.Context, pdfPath string, totalPages, pageOffset int) (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("store: run id: %w", err)
	}
	_, err = l.db.ExecContext(ctx,
		`INSERT INTO runs (id, pdf_path, total_pages, page_offset, started_at, status) VALUES (?, ?, ?, ?, ?, ?)`,
		id.String(), pdfPath, totalPages, pageOffset, l.timestamp(), StatusRunning)
	if err != nil {
		return "", fmt.Errorf("store: begin run: %w", err)
	}
	return id.String(), nil
}

// PageEntry is the ledger row for one page.
type PageEntry struct {
	PDFPage int
	Colored bool
	Signal  string
	Figures int
	Err     string
}

// RecordPage stores the outcome for one page, replacing an earlier entry
// for the same page.
func (l *Ledger) RecordPage(ctx context.Context, runID string, p PageEntry) error {
	_, err := l.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO pages (run_id, pdf_page, colored, signal, figures, error) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, p.PDFPage, p.Colored, p.Signal, p.Figures, p.Err)
	if err != nil {
		return fmt.Errorf("store: record page %d: %w", p.PDFPage, err)
	}
	return nil
}

// RecordFigures appends figures to the run, after any recorded earlier.
func (l *Ledger) RecordFigures(ctx context.Context, runID string, records []figures.Record) error {
	if len(records) == 0 {
		return nil
	}
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: record figures: %w", err)
	}
	defer tx.Rollback()

	var seq int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM figures WHERE run_id = ?`, runID).Scan(&seq); err != nil {
		return fmt.Errorf("store: record figures: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO figures (run_id, seq, number, chapter, idx, caption, pdf_page, book_page) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: record figures: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		seq++
		if _, err := stmt.ExecContext(ctx, runID, seq, r.Number, r.Chapter, r.Index, r.Caption, r.PDFPage, r.BookPage); err != nil {
			return fmt.Errorf("store: record figure %s: %w", r.Number, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: record figures: %w", err)
	}
	return nil
}

// FinishRun marks the run done or failed.
func (l *Ledger) FinishRun(ctx context.Context, runID, status string) error {
	res, err := l.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ? WHERE id = ?`, l.timestamp(), status, runID)
	if err != nil {
		return fmt.Errorf("store: finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("store: finish run: unknown run %s", runID)
	}
	return nil
}

// Run is a stored run.
type Run struct {
	ID         string
	PDFPath    string
	TotalPages int
	PageOffset int
	StartedAt  time.Time
	FinishedAt time.Time // zero while running
	Status     string
}

// Runs lists runs, most recent first.
func (l *Ledger) Runs(ctx context.Context) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, pdf_path, total_pages, page_offset, started_at, COALESCE(finished_at, ''), status FROM runs ORDER BY started_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("store: runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var started, finished string
		if err := rows.Scan(&r.ID, &r.PDFPath, &r.TotalPages, &r.PageOffset, &started, &finished, &r.Status); err != nil {
			return nil, fmt.Errorf("store: runs: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		if finished != "" {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Pages returns the page entries of a run in page order.
func (l *Ledger) Pages(ctx context.Context, runID string) ([]PageEntry, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT pdf_page, colored, signal, figures, error FROM pages WHERE run_id = ? ORDER BY pdf_page`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: pages: %w", err)
	}
	defer rows.Close()

	var pages []PageEntry
	for rows.Next() {
		var p PageEntry
		if err := rows.Scan(&p.PDFPage, &p.Colored, &p.Signal, &p.Figures, &p.Err); err != nil {
			return nil, fmt.Errorf("store: pages: %w", err)
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// Figures returns the figures of a run in the order they were recorded.
func (l *Ledger) Figures(ctx context.Context, runID string) ([]figures.Record, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT number, chapter, idx, caption, pdf_page, book_page FROM figures WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("store: figures: %w", err)
	}
	defer rows.Close()

	var out []figures.Record
	for rows.Next() {
		var r figures.Record
		if err := rows.Scan(&r.Number, &r.Chapter, &r.Index, &r.Caption, &r.PDFPage, &r.BookPage); err != nil {
			return nil, fmt.Errorf("store: figures: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
