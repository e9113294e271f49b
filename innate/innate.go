package innate

import (
	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
	"github.com/hupe1980/immunomesh/logging"
	"github.com/hupe1980/immunomesh/pattern"
)

// Status is a point-in-time snapshot of the innate system.
type Status struct {
	// SystemActivated reports whether any exposure has ever been recognized.
	SystemActivated bool
	// ActiveDendriticCells counts cells currently in the activated state.
	ActiveDendriticCells int
	// PrimedDendriticCells counts cells currently in the primed state.
	PrimedDendriticCells int
	// CytokineLevels is a copy of the environment's accumulated levels.
	CytokineLevels map[core.Cytokine]float64
}

// InnateImmuneSystemOptions configures the aggregator.
type InnateImmuneSystemOptions struct {
	// Logger receives exposure outcomes. Defaults to NoOpLogger.
	Logger logging.Logger
}

// InnateImmuneSystem owns the shared cytokine environment and a set of
// dendritic cells. Exposure events enter here: the system performs its own
// pattern match and independently lets every registered cell recognize the
// antigen, so one cell's broadcast can prime its siblings before Expose
// returns.
type InnateImmuneSystem struct {
	env       *cytokine.Environment
	cells     []*DendriticCell
	activated bool
	logger    logging.Logger
}

// NewInnateImmuneSystem constructs the aggregator around an existing shared
// environment.
func NewInnateImmuneSystem(env *cytokine.Environment, optFns ...func(o *InnateImmuneSystemOptions)) *InnateImmuneSystem {
	opts := InnateImmuneSystemOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &InnateImmuneSystem{env: env, logger: opts.Logger}
}

// Environment returns the shared environment the system owns.
func (s *InnateImmuneSystem) Environment() *cytokine.Environment { return s.env }

// AddDendriticCell joins a cell to the system: it is registered as an
// environment observer (idempotent) and attached to the environment for
// cytokine production. The join is one-time per cell.
func (s *InnateImmuneSystem) AddDendriticCell(dc *DendriticCell) {
	if dc == nil {
		return
	}
	dc.JoinEnvironment(s.env)
	if s.env != nil {
		s.env.Register(dc)
	}
	s.cells = append(s.cells, dc)
}

// DendriticCells returns the registered cells in join order.
func (s *InnateImmuneSystem) DendriticCells() []*DendriticCell {
	return append([]*DendriticCell(nil), s.cells...)
}

// Expose runs an exposure event through the system. The aggregate pattern
// match and every cell-level recognition are evaluated independently; any
// success marks the system activated. Cell recognitions run synchronously,
// so cytokines broadcast by an early cell can already have primed later
// cells (and siblings) by the time Expose returns.
func (s *InnateImmuneSystem) Expose(a *antigen.Antigen) bool {
	if a == nil {
		return false
	}

	recognized := pattern.Recognize(a)
	for _, dc := range s.cells {
		if dc.Recognize(a) {
			recognized = true
		}
	}

	if recognized {
		s.activated = true
	}
	s.logger.Debug("antigen exposure", "category", a.Category().String(), "recognized", recognized)
	return recognized
}

// IsActivated reports whether any exposure has ever been recognized.
func (s *InnateImmuneSystem) IsActivated() bool { return s.activated }

// Status returns a snapshot of the aggregate flag, per-state cell counts and
// a copy of all cytokine levels.
func (s *InnateImmuneSystem) Status() Status {
	status := Status{
		SystemActivated: s.activated,
		CytokineLevels:  map[core.Cytokine]float64{},
	}
	if s.env != nil {
		status.CytokineLevels = s.env.Levels()
	}
	for _, dc := range s.cells {
		switch dc.State() {
		case DCActivated:
			status.ActiveDendriticCells++
		case DCPrimed:
			status.PrimedDendriticCells++
		}
	}
	return status
}
