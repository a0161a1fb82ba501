// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger keeps a SQLite history of conversion runs: one row per
// run, one per annotation file, and the class index each run produced.
// The history is informational; it is never consulted to skip files.
package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/voc2yolo/pkg/types"
)

const defaultRecent = 20

// Ledger wraps the run history database.
type Ledger struct {
	db *sql.DB
}

// Run is a summary row from the runs table.
type Run struct {
	ID         int64     `json:"id" yaml:"id"`
	StartedAt  time.Time `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time `json:"finished_at" yaml:"finished_at"`
	XMLDir     string    `json:"xml_dir" yaml:"xml_dir"`
	LabelDir   string    `json:"yolo_dir" yaml:"yolo_dir"`
	Converted  int       `json:"converted" yaml:"converted"`
	NoImage    int       `json:"no_image" yaml:"no_image"`
	Failed     int       `json:"failed" yaml:"failed"`
	Classes    int       `json:"classes" yaml:"classes"`
}

// Open opens or creates the ledger database at path and creates its
// schema if needed.
func Open(path string) (*Ledger, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating ledger directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening ledger: %w", err)
	}

	l := &Ledger{db: db}
	if err := l.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return l, nil
}

// Close releases the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

func (l *Ledger) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at TEXT NOT NULL,
			finished_at TEXT,
			xml_dir TEXT,
			img_dir TEXT,
			yolo_dir TEXT,
			classes_txt_dir TEXT,
			error_dir TEXT,
			converted INTEGER,
			no_image INTEGER,
			failed INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS files (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			xml_file TEXT NOT NULL,
			image TEXT,
			label_path TEXT,
			objects INTEGER,
			status TEXT NOT NULL,
			error TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_files_run_id ON files(run_id)`,
		`CREATE TABLE IF NOT EXISTS classes (
			run_id INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			class_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			PRIMARY KEY (run_id, class_id)
		)`,
	}

	for _, stmt := range statements {
		if _, err := l.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores a run report and returns its run id.
func (l *Ledger) Record(ctx context.Context, r types.RunReport) (int64, error) {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, finished_at, xml_dir, img_dir, yolo_dir, classes_txt_dir, error_dir, converted, no_image, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(r.StartedAt), formatTime(r.FinishedAt),
		r.Config.XMLDir, r.Config.ImageDir, r.Config.LabelDir, r.Config.ClassesDir, r.Config.ErrorDir,
		r.Converted, r.NoImage, r.Failed,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	fileStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO files (run_id, xml_file, image, label_path, objects, status, error)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing file insert: %w", err)
	}
	defer fileStmt.Close()

	for _, f := range r.Files {
		if _, err := fileStmt.ExecContext(ctx,
			runID, f.XMLFile, f.Image, f.LabelPath, f.Objects, string(f.Status), f.Error,
		); err != nil {
			return 0, fmt.Errorf("inserting file %s: %w", f.XMLFile, err)
		}
	}

	classStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO classes (run_id, class_id, name) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing class insert: %w", err)
	}
	defer classStmt.Close()

	for id, name := range r.Classes {
		if _, err := classStmt.ExecContext(ctx, runID, id, name); err != nil {
			return 0, fmt.Errorf("inserting class %q: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Recent returns up to limit runs, newest first. A limit of zero or less
// uses the default of 20.
func (l *Ledger) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = defaultRecent
	}

	rows, err := l.db.QueryContext(ctx,
		`SELECT r.id, r.started_at, COALESCE(r.finished_at, ''), COALESCE(r.xml_dir, ''), COALESCE(r.yolo_dir, ''),
			COALESCE(r.converted, 0), COALESCE(r.no_image, 0), COALESCE(r.failed, 0),
			(SELECT count(*) FROM classes c WHERE c.run_id = r.id)
		 FROM runs r
		 ORDER BY r.id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
		)
		if err := rows.Scan(&run.ID, &started, &finished, &run.XMLDir, &run.LabelDir,
			&run.Converted, &run.NoImage, &run.Failed, &run.Classes); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Classes returns the class index recorded for a run, ordered by id.
func (l *Ledger) Classes(ctx context.Context, runID int64) ([]string, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT name FROM classes WHERE run_id = ? ORDER BY class_id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying classes: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning class: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Files returns the per-file results recorded for a run.
func (l *Ledger) Files(ctx context.Context, runID int64) ([]types.FileResult, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT xml_file, COALESCE(image, ''), COALESCE(label_path, ''), COALESCE(objects, 0), status, COALESCE(error, '')
		 FROM files WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying files: %w", err)
	}
	defer rows.Close()

	var files []types.FileResult
	for rows.Next() {
		var (
			f      types.FileResult
			status string
		)
		if err := rows.Scan(&f.XMLFile, &f.Image, &f.LabelPath, &f.Objects, &status, &f.Error); err != nil {
			return nil, fmt.Errorf("scanning file: %w", err)
		}
		f.Status = types.FileStatus(status)
		files = append(files, f)
	}
	return files, rows.Err()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
