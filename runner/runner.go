package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/immunomesh"
	"github.com/hupe1980/immunomesh/adaptive"
	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/config"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/logging"
	"github.com/hupe1980/immunomesh/store"
)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// Store persists run records and per-step snapshots. Defaults to an
	// in-memory store.
	Store core.RunStore
	// Logger receives per-step progress. Defaults to NoOpLogger.
	Logger logging.Logger
	// Clock supplies run timestamps; overridable for tests.
	Clock func() time.Time
}

// Report summarizes a completed run.
type Report struct {
	RunID     string
	Scenario  string
	Steps     int
	Activated bool
	// ActivatedTCells counts responders activated by the end of the run.
	ActivatedTCells int
	// Lineages maps committed lineage names to responder counts.
	Lineages map[string]int
	Final    core.Snapshot
}

// Runner drives scenarios. Each Run call builds a fresh ImmunoMesh, so runs
// never share cytokine state.
type Runner struct {
	store  core.RunStore
	logger logging.Logger
	clock  func() time.Time
}

// New constructs a Runner with optional overrides.
func New(optFns ...func(o *Options)) *Runner {
	opts := Options{
		Store:  store.NewMemoryStore(),
		Logger: logging.NoOpLogger{},
		Clock:  time.Now,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	if opts.Store == nil {
		opts.Store = store.NewMemoryStore()
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	return &Runner{store: opts.Store, logger: opts.Logger, clock: opts.Clock}
}

// Run executes the scenario from step 0 to completion, appending a snapshot
// after every step and saving the run record at the end. The context bounds
// store access and cancels the loop between steps.
func (r *Runner) Run(ctx context.Context, scenario config.Scenario) (Report, error) {
	if err := scenario.Validate(); err != nil {
		return Report{}, fmt.Errorf("invalid scenario: %w", err)
	}
	if err := r.store.Init(ctx); err != nil {
		return Report{}, fmt.Errorf("init store: %w", err)
	}

	mesh := immunomesh.New(func(o *immunomesh.Options) {
		o.Logger = r.logger
	})
	mesh.AddDendriticCells(scenario.Cells.DendriticCells)
	mesh.AddMacrophages(scenario.Cells.Macrophages)
	for _, tc := range scenario.Cells.TCells {
		mesh.AddTCell(tc.Specificity())
	}

	runID := core.NewID()
	startedAt := r.clock().UTC()
	r.logger.Info("run started",
		"run_id", runID,
		"scenario", scenario.Name,
		"steps", len(scenario.Steps),
	)

	var inoculum []*antigen.Antigen
	var last core.Snapshot

	for i, step := range scenario.Steps {
		if err := ctx.Err(); err != nil {
			return Report{}, err
		}

		// Antigens from earlier steps lose concentration before this step's
		// events land; fully cleared antigens leave the inoculum.
		if i > 0 && scenario.DecayRate > 0 {
			live := inoculum[:0]
			for _, a := range inoculum {
				a.Decay(scenario.DecayRate)
				if a.Concentration() > 0 {
					live = append(live, a)
				}
			}
			inoculum = live
		}

		if step.Reexpose {
			for _, a := range inoculum {
				mesh.AntigenExposure(a)
			}
		}

		if err := r.runStep(mesh, step, &inoculum); err != nil {
			return Report{}, fmt.Errorf("step %d: %w", i, err)
		}

		last = mesh.Snapshot(i)
		if err := r.store.AppendSnapshot(ctx, runID, last); err != nil {
			return Report{}, fmt.Errorf("step %d: append snapshot: %w", i, err)
		}
		r.logger.Debug("step complete",
			"run_id", runID,
			"step", i,
			"activated", last.SystemActivated,
		)
	}

	record := core.RunRecord{
		ID:         runID,
		Scenario:   scenario.Name,
		StartedAt:  startedAt,
		FinishedAt: r.clock().UTC(),
		Activated:  mesh.IsActivated(),
	}
	if err := r.store.SaveRun(ctx, record); err != nil {
		return Report{}, fmt.Errorf("save run: %w", err)
	}

	report := Report{
		RunID:     runID,
		Scenario:  scenario.Name,
		Steps:     len(scenario.Steps),
		Activated: mesh.IsActivated(),
		Lineages:  map[string]int{},
		Final:     last,
	}
	for _, tc := range mesh.TCells() {
		if tc.IsActivated() {
			report.ActivatedTCells++
		}
		if tc.Lineage() != adaptive.LineageNone {
			report.Lineages[tc.Lineage().String()]++
		}
	}

	r.logger.Info("run finished",
		"run_id", runID,
		"activated", report.Activated,
		"activated_t_cells", report.ActivatedTCells,
	)
	return report, nil
}

func (r *Runner) runStep(mesh *immunomesh.ImmunoMesh, step config.Step, inoculum *[]*antigen.Antigen) error {
	for _, ac := range step.Expose {
		a, err := ac.Antigen()
		if err != nil {
			return err
		}
		*inoculum = append(*inoculum, a)
		mesh.AntigenExposure(a)
	}

	for _, ac := range step.Phagocytose {
		a, err := ac.Antigen()
		if err != nil {
			return err
		}
		*inoculum = append(*inoculum, a)
		mesh.Phagocytose(a)
	}

	if step.Produce {
		mesh.ProduceCytokines()
	}
	if step.Scan {
		mesh.ScanAll()
	}
	if step.Differentiate {
		mesh.DifferentiateAll()
	}
	return nil
}
