// Package immunomesh provides a high-level façade over the cytokine
// environment and the cell populations (dendritic cells, macrophages,
// T cells) enabling rapid construction of immune signaling simulations.
// Most applications interact with this package by:
//  1. Creating an ImmunoMesh via New() (optionally overriding the logger)
//  2. Adding cells (AddDendriticCells, AddMacrophages, AddTCell)
//  3. Exposing antigens (AntigenExposure) and driving the population
//     (ProduceCytokines, ScanAll, DifferentiateAll)
//
// The façade delegates sensing to innate.InnateImmuneSystem while keeping
// setup and usage ergonomics concise. All defaults are safe for local
// development and testing; longer experiments typically supply a structured
// logger and persist snapshots through a store.RunStore implementation.
package immunomesh

import (
	"github.com/hupe1980/immunomesh/adaptive"
	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
	"github.com/hupe1980/immunomesh/innate"
	"github.com/hupe1980/immunomesh/logging"
)

// Options configures the ImmunoMesh instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// ImmunoMesh is the high-level façade aggregating the shared cytokine
// environment and the cell populations living in it.
type ImmunoMesh struct {
	opts        Options
	env         *cytokine.Environment
	innate      *innate.InnateImmuneSystem
	macrophages []*innate.Macrophage
	tcells      []*adaptive.TCell
}

// New creates a new ImmunoMesh instance with optional overrides. The
// environment starts empty; cells are added afterwards.
func New(optFns ...func(o *Options)) *ImmunoMesh {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}

	env := cytokine.NewEnvironment()

	sys := innate.NewInnateImmuneSystem(env, func(o *innate.InnateImmuneSystemOptions) {
		o.Logger = opts.Logger
	})

	return &ImmunoMesh{opts: opts, env: env, innate: sys}
}

// Environment returns the shared cytokine environment.
func (m *ImmunoMesh) Environment() *cytokine.Environment { return m.env }

// AddDendriticCells adds n sentinel cells to the innate system, each joined
// to the environment and registered as a cytokine observer.
func (m *ImmunoMesh) AddDendriticCells(n int) {
	for i := 0; i < n; i++ {
		dc := innate.NewDendriticCell(func(o *innate.DendriticCellOptions) {
			o.Logger = m.opts.Logger
		})
		m.innate.AddDendriticCell(dc)
	}
}

// AddMacrophages adds n phagocytes, each joined to the environment and
// registered as a cytokine observer.
func (m *ImmunoMesh) AddMacrophages(n int) {
	for i := 0; i < n; i++ {
		mp := innate.NewMacrophage(func(o *innate.MacrophageOptions) {
			o.Logger = m.opts.Logger
		})
		mp.JoinEnvironment(m.env)
		m.env.Register(mp)
		m.macrophages = append(m.macrophages, mp)
	}
}

// AddTCell adds a responder cell with the given specificity, joined to the
// environment and registered as a cytokine observer so a shifting cytokine
// balance can trigger differentiation.
func (m *ImmunoMesh) AddTCell(specificity core.PeptideComplex) *adaptive.TCell {
	tc := adaptive.NewTCell(specificity, func(o *adaptive.TCellOptions) {
		o.Logger = m.opts.Logger
	})
	tc.JoinEnvironment(m.env)
	m.env.Register(tc)
	m.tcells = append(m.tcells, tc)
	return tc
}

// DendriticCells returns the sentinel population.
func (m *ImmunoMesh) DendriticCells() []*innate.DendriticCell {
	return m.innate.DendriticCells()
}

// Macrophages returns the phagocyte population.
func (m *ImmunoMesh) Macrophages() []*innate.Macrophage {
	out := make([]*innate.Macrophage, len(m.macrophages))
	copy(out, m.macrophages)
	return out
}

// TCells returns the responder population.
func (m *ImmunoMesh) TCells() []*adaptive.TCell {
	out := make([]*adaptive.TCell, len(m.tcells))
	copy(out, m.tcells)
	return out
}

// AntigenExposure forwards an antigen to the innate system and reports
// whether any component recognized it as a threat.
func (m *ImmunoMesh) AntigenExposure(a *antigen.Antigen) bool {
	return m.innate.Expose(a)
}

// Phagocytose feeds an antigen to every phagocyte: dendritic cells pick up a
// presentation pair, macrophages additionally gain activation level.
func (m *ImmunoMesh) Phagocytose(a *antigen.Antigen) {
	for _, dc := range m.innate.DendriticCells() {
		dc.Phagocytose(a)
	}
	for _, mp := range m.macrophages {
		mp.Phagocytose(a)
	}
}

// ProduceCytokines asks every macrophage and every T cell to secrete into
// the environment according to its current state.
func (m *ImmunoMesh) ProduceCytokines() {
	for _, mp := range m.macrophages {
		mp.ProduceCytokines()
	}
	for _, tc := range m.tcells {
		tc.ProduceCytokines()
	}
}

// ScanAll lets every T cell scan every presenting cell (dendritic cells
// first, then macrophages) and reports how many activations occurred.
func (m *ImmunoMesh) ScanAll() int {
	activations := 0
	for _, tc := range m.tcells {
		for _, dc := range m.innate.DendriticCells() {
			if tc.Scan(dc) {
				activations++
			}
		}
		for _, mp := range m.macrophages {
			if tc.Scan(mp) {
				activations++
			}
		}
	}
	return activations
}

// DifferentiateAll asks every T cell to attempt lineage commitment against
// the current cytokine balance.
func (m *ImmunoMesh) DifferentiateAll() {
	for _, tc := range m.tcells {
		tc.Differentiate()
	}
}

// IsActivated reports whether any innate component has recognized a threat
// since construction.
func (m *ImmunoMesh) IsActivated() bool { return m.innate.IsActivated() }

// Status returns the innate system's aggregate view.
func (m *ImmunoMesh) Status() innate.Status { return m.innate.Status() }

// Snapshot captures the current aggregate state for persistence.
func (m *ImmunoMesh) Snapshot(step int) core.Snapshot {
	status := m.innate.Status()
	levels := make(map[string]float64, len(status.CytokineLevels))
	for name, level := range status.CytokineLevels {
		levels[string(name)] = level
	}
	return core.Snapshot{
		Step:                 step,
		SystemActivated:      status.SystemActivated,
		ActiveDendriticCells: status.ActiveDendriticCells,
		PrimedDendriticCells: status.PrimedDendriticCells,
		CytokineLevels:       levels,
	}
}
