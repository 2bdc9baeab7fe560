// Package history keeps the metric tables of past runs in a SQLite database
// so a subject's numbers can be compared across runs.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/flowtests/internal/models"
)

//go:embed schema.sql
var schemaSQL string

// Run is one recorded harness run
type Run struct {
	ID         string
	StartedAt  time.Time
	ReportPath string
}

// SubjectRecord is one subject's metric table as recorded in a run
type SubjectRecord struct {
	Run   Run
	Table models.MetricTable
}

// Store manages the metric history database
type Store struct {
	db     *sql.DB
	dbPath string
	now    func() time.Time
}

// NewStore opens (creating if needed) the history database at dbPath.
// ":memory:" opens a private in-memory database.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath, now: time.Now}, nil
}

// execWithRetry executes a SQL statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores every subject's table from metrics under a new run id
// and returns that id. Subjects with an empty table are recorded with no
// rows, so they do not appear in their history.
func (s *Store) RecordRun(ctx context.Context, reportPath string, metrics *models.Metrics) (string, error) {
	runID := uuid.New().String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, report_path) VALUES (?, ?, ?)`,
		runID, s.now().UnixNano(), reportPath,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO metrics (run_id, subject, size_key, v0, v1, v2, v3) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("prepare metrics insert: %w", err)
	}
	defer stmt.Close()

	if metrics != nil {
		for _, sm := range metrics.Entries() {
			for _, entry := range sm.Table {
				v := entry.Value
				if _, err := stmt.ExecContext(ctx, runID, sm.Subject, entry.Key, v[0], v[1], v[2], v[3]); err != nil {
					return "", fmt.Errorf("insert metrics for %s: %w", sm.Subject, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// SubjectHistory returns the recorded tables for subject, newest run first.
// Keys within each table are in descending size order.
func (s *Store) SubjectHistory(ctx context.Context, subject string) ([]SubjectRecord, error) {
	query := `SELECT r.id, r.started_at, r.report_path, m.size_key, m.v0, m.v1, m.v2, m.v3
		FROM metrics m
		JOIN runs r ON r.id = m.run_id
		WHERE m.subject = ?
		ORDER BY r.started_at DESC, r.rowid DESC, m.size_key DESC`

	rows, err := s.db.QueryContext(ctx, query, subject)
	if err != nil {
		return nil, fmt.Errorf("query subject history: %w", err)
	}
	defer rows.Close()

	var records []SubjectRecord
	for rows.Next() {
		var (
			run     Run
			started int64
			key     int
			tuple   models.MetricTuple
		)
		if err := rows.Scan(&run.ID, &started, &run.ReportPath, &key, &tuple[0], &tuple[1], &tuple[2], &tuple[3]); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		run.StartedAt = time.Unix(0, started)

		if n := len(records); n == 0 || records[n-1].Run.ID != run.ID {
			records = append(records, SubjectRecord{Run: run})
		}
		last := &records[len(records)-1]
		last.Table = append(last.Table, models.MetricEntry{Key: key, Value: tuple})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history rows: %w", err)
	}

	return records, nil
}

// RunCount returns the number of recorded runs
func (s *Store) RunCount(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return count, nil
}
