package cytokine

import (
	"sync"

	"github.com/hupe1980/immunomesh/core"
)

// Environment is the shared cytokine medium. The zero value is not usable;
// construct with NewEnvironment. Safe for concurrent access, although the
// core simulation is sequential by design — the mutex mirrors the store
// implementations so a concurrent driver does not corrupt the level table.
type Environment struct {
	mu        sync.RWMutex
	levels    map[core.Cytokine]float64
	observers []core.CytokineObserver
}

// NewEnvironment constructs an empty environment with no observers.
func NewEnvironment() *Environment {
	return &Environment{levels: make(map[core.Cytokine]float64)}
}

// GetLevel returns the accumulated level for a cytokine, or 0 if it has
// never been written.
func (e *Environment) GetLevel(name core.Cytokine) float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.levels[name]
}

// Add accumulates amount onto the cytokine's level, then notifies every
// registered observer exactly once, in registration order, with the new
// absolute level. The fan-out completes before Add returns.
//
// Writes under names outside the closed vocabulary and negative amounts are
// rejected as no-ops: levels are cumulative exposure and never decrease.
func (e *Environment) Add(name core.Cytokine, amount float64) {
	if !name.Valid() || amount < 0 {
		return
	}

	e.mu.Lock()
	e.levels[name] += amount
	newLevel := e.levels[name]
	observers := append([]core.CytokineObserver(nil), e.observers...)
	e.mu.Unlock()

	// Observers react outside the lock so they may read levels during the
	// notification. They must not write back into the environment here (see
	// core.CytokineObserver).
	for _, o := range observers {
		o.OnCytokineChanged(name, newLevel)
	}
}

// Register adds an observer to the fan-out set. Registration is idempotent:
// a handle already present (identity comparison) is not added twice.
// Insertion order is preserved and determines notification order.
func (e *Environment) Register(o core.CytokineObserver) {
	if o == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.observers {
		if existing == o {
			return
		}
	}
	e.observers = append(e.observers, o)
}

// Levels returns a copy of all current levels. Mutating the returned map
// does not affect the environment.
func (e *Environment) Levels() map[core.Cytokine]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snapshot := make(map[core.Cytokine]float64, len(e.levels))
	for name, level := range e.levels {
		snapshot[name] = level
	}
	return snapshot
}
