// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records the outcome of every rendered document in a SQLite
// database so later runs (and the status command) can report which PDFs
// rendered, how many pages they produced, and why failures happened.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pdfpages/pkg/types"
)

// Ledger is a SQLite-backed log of document results. It implements
// convert.Recorder.
type Ledger struct {
	db *sql.DB
}

// Open opens or creates the ledger database at path, creating its parent
// directory and schema as needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			pdf_path TEXT NOT NULL,
			output_dir TEXT NOT NULL,
			pages INTEGER NOT NULL,
			status TEXT NOT NULL,
			error TEXT,
			rendered_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_pdf_path ON documents(pdf_path)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one document result.
func (l *Ledger) Record(ctx context.Context, res types.DocumentResult) error {
	renderedAt := res.RenderedAt
	if renderedAt.IsZero() {
		renderedAt = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO documents (run_id, pdf_path, output_dir, pages, status, error, rendered_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		res.RunID, res.PDFPath, res.OutputDir, res.Pages, string(res.Status),
		nullString(res.Error), renderedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", res.PDFPath, err)
	}
	return nil
}

// Latest returns the most recent result for each PDF path, ordered by path.
func (l *Ledger) Latest(ctx context.Context) ([]types.DocumentResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, pdf_path, output_dir, pages, status, error, rendered_at
		 FROM documents
		 WHERE id IN (SELECT MAX(id) FROM documents GROUP BY pdf_path)
		 ORDER BY pdf_path`)
	if err != nil {
		return nil, fmt.Errorf("querying ledger: %w", err)
	}
	defer rows.Close()
	return scanResults(rows)
}

// Run returns every result recorded under runID, in processing order.
func (l *Ledger) Run(ctx context.Context, runID string) ([]types.DocumentResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT run_id, pdf_path, output_dir, pages, status, error, rendered_at
		 FROM documents WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying run %s: %w", runID, err)
	}
	defer rows.Close()
	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]types.DocumentResult, error) {
	var results []types.DocumentResult
	for rows.Next() {
		var (
			res        types.DocumentResult
			status     string
			errText    sql.NullString
			renderedAt string
		)
		if err := rows.Scan(&res.RunID, &res.PDFPath, &res.OutputDir, &res.Pages,
			&status, &errText, &renderedAt); err != nil {
			return nil, fmt.Errorf("scanning ledger row: %w", err)
		}
		res.Status = types.RenderStatus(status)
		res.Error = errText.String
		t, err := time.Parse(time.RFC3339Nano, renderedAt)
		if err != nil {
			return nil, fmt.Errorf("parsing rendered_at %q: %w", renderedAt, err)
		}
		res.RenderedAt = t
		results = append(results, res)
	}
	return results, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
