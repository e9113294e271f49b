package store

import (
	"context"
	"sync"

	"github.com/hupe1980/immunomesh/core"
)

// MemoryStore is a volatile core.RunStore implementation keeping run records
// and snapshots in process-local maps. Safe for concurrent access and best
// suited for tests or single-shot CLI runs. Returned snapshots are cloned to
// prevent external mutation of internal state.
type MemoryStore struct {
	mu        sync.RWMutex
	runs      map[string]core.RunRecord
	snapshots map[string][]core.Snapshot
}

// NewMemoryStore constructs an empty in-memory run store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Init prepares the internal maps. Calling Init twice resets the store.
func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs = make(map[string]core.RunRecord)
	s.snapshots = make(map[string][]core.Snapshot)
	return nil
}

// SaveRun stores or overwrites a run record.
func (s *MemoryStore) SaveRun(_ context.Context, run core.RunRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.runs == nil {
		s.runs = make(map[string]core.RunRecord)
	}
	s.runs[run.ID] = run
	return nil
}

// GetRun returns a run record by id.
func (s *MemoryStore) GetRun(_ context.Context, id string) (core.RunRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, ok := s.runs[id]
	return run, ok, nil
}

// AppendSnapshot adds a per-step snapshot to a run's history.
func (s *MemoryStore) AppendSnapshot(_ context.Context, runID string, snapshot core.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snapshots == nil {
		s.snapshots = make(map[string][]core.Snapshot)
	}
	s.snapshots[runID] = append(s.snapshots[runID], cloneSnapshot(snapshot))
	return nil
}

// GetSnapshots returns the snapshots recorded for a run, in append order.
func (s *MemoryStore) GetSnapshots(_ context.Context, runID string) ([]core.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.snapshots[runID]
	out := make([]core.Snapshot, 0, len(stored))
	for _, snap := range stored {
		out = append(out, cloneSnapshot(snap))
	}
	return out, nil
}

func cloneSnapshot(snapshot core.Snapshot) core.Snapshot {
	clone := snapshot
	clone.CytokineLevels = make(map[string]float64, len(snapshot.CytokineLevels))
	for name, level := range snapshot.CytokineLevels {
		clone.CytokineLevels[name] = level
	}
	return clone
}
