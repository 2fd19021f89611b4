package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"vidsub/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; existing databases must then be deleted.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database schema version doesn't match the
// expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

// Run statuses recorded in the database.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is one pipeline invocation.
type Run struct {
	ID                string
	Operation         string
	InputPath         string
	OutputPath        string
	Language          string
	SubtitleCount     int
	DurationSeconds   float64
	CostUSD           float64
	ProcessingSeconds float64
	Status            string
	ErrorMessage      string
	CreatedAt         time.Time
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database under the configured
// data directory.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return OpenPath(filepath.Join(cfg.Paths.DataDir, "history.db"))
}

// OpenPath initializes or connects to the history database at dbPath.
func OpenPath(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	err = s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun inserts a run and returns it with its generated ID and
// timestamp filled in.
func (s *Store) RecordRun(ctx context.Context, run Run) (Run, error) {
	if strings.TrimSpace(run.Operation) == "" {
		return Run{}, errors.New("history record: operation required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Status == "" {
		run.Status = StatusCompleted
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}
	run.CreatedAt = run.CreatedAt.UTC()

	const query = `INSERT INTO runs
		(id, operation, input_path, output_path, language, subtitle_count,
		 duration_seconds, cost_usd, processing_seconds, status, error_message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.Operation, run.InputPath, run.OutputPath, run.Language,
		run.SubtitleCount, run.DurationSeconds, run.CostUSD, run.ProcessingSeconds,
		run.Status, run.ErrorMessage, run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Run{}, fmt.Errorf("history record: %w", err)
	}
	return run, nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	const query = `SELECT id, operation, input_path, output_path, language,
		subtitle_count, duration_seconds, cost_usd, processing_seconds,
		status, error_message, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("history recent: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history recent: %w", err)
	}
	return runs, nil
}

// TotalCost sums the recorded API spend across all completed runs.
func (s *Store) TotalCost(ctx context.Context) (float64, error) {
	var total sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		"SELECT SUM(cost_usd) FROM runs WHERE status = ?", StatusCompleted,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("history total cost: %w", err)
	}
	return total.Float64, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var createdAt string
	err := rows.Scan(
		&run.ID, &run.Operation, &run.InputPath, &run.OutputPath, &run.Language,
		&run.SubtitleCount, &run.DurationSeconds, &run.CostUSD, &run.ProcessingSeconds,
		&run.Status, &run.ErrorMessage, &createdAt,
	)
	if err != nil {
		return Run{}, fmt.Errorf("history scan: %w", err)
	}
	if parsed, parseErr := time.Parse(time.RFC3339Nano, createdAt); parseErr == nil {
		run.CreatedAt = parsed
	}
	return run, nil
}
