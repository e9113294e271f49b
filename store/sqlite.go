package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/immunomesh/core"
)

// SQLiteStore is a core.RunStore backed by a SQLite database file. Init must
// be called before any other operation.
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteStore constructs a store for the given database path. The file is
// created on Init if it does not exist.
func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

// Init opens the database and creates the schema. Idempotent.
func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errors.New("sqlite store is not initialized")
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			scenario TEXT NOT NULL,
			started_at TEXT NOT NULL,
			finished_at TEXT NOT NULL,
			activated INTEGER NOT NULL
		);
		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL,
			step INTEGER NOT NULL,
			system_activated INTEGER NOT NULL,
			active_dcs INTEGER NOT NULL,
			primed_dcs INTEGER NOT NULL,
			levels TEXT NOT NULL,
			PRIMARY KEY (run_id, step)
		);
	`)
	return err
}

// SaveRun inserts or updates a run record.
func (s *SQLiteStore) SaveRun(ctx context.Context, run core.RunRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, started_at, finished_at, activated)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			scenario = excluded.scenario,
			started_at = excluded.started_at,
			finished_at = excluded.finished_at,
			activated = excluded.activated
	`, run.ID, run.Scenario, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano), boolToInt(run.Activated))
	return err
}

// GetRun returns a run record by id.
func (s *SQLiteStore) GetRun(ctx context.Context, id string) (core.RunRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return core.RunRecord{}, false, err
	}

	var (
		run                 core.RunRecord
		startedAt, finished string
		activated           int
	)
	err = db.QueryRowContext(ctx, `SELECT id, scenario, started_at, finished_at, activated FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &run.Scenario, &startedAt, &finished, &activated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.RunRecord{}, false, nil
		}
		return core.RunRecord{}, false, err
	}

	if run.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
		return core.RunRecord{}, false, fmt.Errorf("parse started_at for run %s: %w", id, err)
	}
	if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return core.RunRecord{}, false, fmt.Errorf("parse finished_at for run %s: %w", id, err)
	}
	run.Activated = activated != 0
	return run, true, nil
}

// AppendSnapshot stores a per-step snapshot; the cytokine levels are encoded
// as JSON.
func (s *SQLiteStore) AppendSnapshot(ctx context.Context, runID string, snapshot core.Snapshot) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	levels, err := json.Marshal(snapshot.CytokineLevels)
	if err != nil {
		return fmt.Errorf("encode snapshot levels: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO snapshots (run_id, step, system_activated, active_dcs, primed_dcs, levels)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, step) DO UPDATE SET
			system_activated = excluded.system_activated,
			active_dcs = excluded.active_dcs,
			primed_dcs = excluded.primed_dcs,
			levels = excluded.levels
	`, runID, snapshot.Step, boolToInt(snapshot.SystemActivated), snapshot.ActiveDendriticCells, snapshot.PrimedDendriticCells, string(levels))
	return err
}

// GetSnapshots returns a run's snapshots ordered by step.
func (s *SQLiteStore) GetSnapshots(ctx context.Context, runID string) ([]core.Snapshot, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT step, system_activated, active_dcs, primed_dcs, levels
		FROM snapshots WHERE run_id = ? ORDER BY step
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var snapshots []core.Snapshot
	for rows.Next() {
		var (
			snap      core.Snapshot
			activated int
			levels    string
		)
		if err := rows.Scan(&snap.Step, &activated, &snap.ActiveDendriticCells, &snap.PrimedDendriticCells, &levels); err != nil {
			return nil, err
		}
		snap.SystemActivated = activated != 0
		if err := json.Unmarshal([]byte(levels), &snap.CytokineLevels); err != nil {
			return nil, fmt.Errorf("decode snapshot levels for run %s: %w", runID, err)
		}
		snapshots = append(snapshots, snap)
	}
	return snapshots, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
