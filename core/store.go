package core

import (
	"context"
	"time"
)

// RunRecord identifies one simulation run in the run-history store.
type RunRecord struct {
	ID         string
	Scenario   string
	StartedAt  time.Time
	FinishedAt time.Time
	Activated  bool
}

// Snapshot captures the innate system status after one scenario step.
// CytokineLevels is keyed by the cytokine wire name so records stay readable
// outside the process.
type Snapshot struct {
	Step                 int
	SystemActivated      bool
	ActiveDendriticCells int
	PrimedDendriticCells int
	CytokineLevels       map[string]float64
}

// RunStore persists run records and their per-step snapshots. The simulation
// never reads these back mid-run; they are an audit trail for inspection
// after the fact. Implementations live in the store package.
type RunStore interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	AppendSnapshot(ctx context.Context, runID string, snapshot Snapshot) error
	GetSnapshots(ctx context.Context, runID string) ([]Snapshot, error)
}
