package adaptive

import (
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
	"github.com/hupe1980/immunomesh/logging"
)

// Lineage is a T cell's committed differentiation outcome.
type Lineage int

const (
	// LineageNone marks an undifferentiated cell.
	LineageNone Lineage = iota
	// LineageTh1 is the IFN-γ producing lineage, driven by IL-12.
	LineageTh1
	// LineageTh2 is the IL-4 producing lineage, driven by IL-4.
	LineageTh2
)

// String returns the lineage name.
func (l Lineage) String() string {
	switch l {
	case LineageTh1:
		return "Th1"
	case LineageTh2:
		return "Th2"
	default:
		return "undifferentiated"
	}
}

const (
	// differentiationThreshold is the minimum level the dominant cytokine
	// must reach before a lineage commits.
	differentiationThreshold = 5.0
	// costimulationThreshold is the Signal 2 gate: CD80 or CD86 must reach
	// it when the scanned target exposes a co-stimulation contract.
	costimulationThreshold = 0.3

	th1IFNGammaAmount = 5.0
	th2IL4Amount      = 3.0
)

// TCellOptions configures a TCell.
type TCellOptions struct {
	// Logger receives activation and differentiation events. Defaults to
	// NoOpLogger.
	Logger logging.Logger
}

// TCell is the adaptive responder. Its specificity is fixed at creation;
// activation is one-way; differentiation commits at most once. The cell
// implements core.CytokineObserver so a changing cytokine balance can
// trigger differentiation attempts after activation.
type TCell struct {
	id          string
	specificity core.PeptideComplex
	activated   bool
	lineage     Lineage
	env         *cytokine.Environment
	logger      logging.Logger
}

// NewTCell constructs a naive T cell with the given specificity. A zero
// specificity (empty peptide) produces a cell that never matches a scan.
func NewTCell(specificity core.PeptideComplex, optFns ...func(o *TCellOptions)) *TCell {
	opts := TCellOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &TCell{id: core.NewID(), specificity: specificity, logger: opts.Logger}
}

// ID returns the cell's unique identifier.
func (t *TCell) ID() string { return t.id }

// Specificity returns the fixed MHC-peptide pair the cell recognizes and
// whether one is set.
func (t *TCell) Specificity() (core.PeptideComplex, bool) {
	return t.specificity, t.specificity.Peptide != ""
}

// IsActivated reports whether the cell has been activated.
func (t *TCell) IsActivated() bool { return t.activated }

// Activate flips the one-way activation flag. Idempotent.
func (t *TCell) Activate() {
	if t.activated {
		return
	}
	t.activated = true
	t.logger.Info("t cell activated", "cell_id", t.id, "peptide", t.specificity.Peptide)
}

// Lineage returns the committed lineage, or LineageNone.
func (t *TCell) Lineage() Lineage { return t.lineage }

// JoinEnvironment attaches the cell to the shared environment used for
// differentiation reads and cytokine production. Joining is one-time.
func (t *TCell) JoinEnvironment(env *cytokine.Environment) {
	if t.env != nil || env == nil {
		return
	}
	t.env = env
}

// Scan searches a presenting cell's displayed complexes for this cell's
// specificity. When the target exposes a co-stimulation contract
// (core.CostimulatoryPresenter) the match is additionally gated on
// CD80 or CD86 reaching the co-stimulation threshold; targets without the
// contract (dendritic cells) activate on the presentation match alone.
//
// Scanning is a no-op returning false for a nil target, a cell without
// specificity, or a cell that is already activated.
func (t *TCell) Scan(presenter core.AntigenPresenter) bool {
	if presenter == nil || t.specificity.Peptide == "" || t.activated {
		return false
	}

	matched := false
	for _, pc := range presenter.Presentations() {
		if pc == t.specificity {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}

	if cp, ok := presenter.(core.CostimulatoryPresenter); ok {
		signals := cp.Costimulation()
		if signals[core.CD80] < costimulationThreshold && signals[core.CD86] < costimulationThreshold {
			t.logger.Debug("t cell scan failed co-stimulation gate", "cell_id", t.id, "cd80", signals[core.CD80], "cd86", signals[core.CD86])
			return false
		}
	}

	t.Activate()
	return true
}

// Differentiate commits the cell to a lineage based on the antagonistic
// IL-12/IL-4 balance: the dominant cytokine wins if it reaches the
// differentiation threshold. A tie or an insufficient level leaves the cell
// undifferentiated, free to retry on a later call; once committed, further
// calls are no-ops.
func (t *TCell) Differentiate() {
	if !t.activated || t.lineage != LineageNone || t.env == nil {
		return
	}

	il12 := t.env.GetLevel(core.CytokineIL12)
	il4 := t.env.GetLevel(core.CytokineIL4)

	switch {
	case il12 > il4 && il12 >= differentiationThreshold:
		t.lineage = LineageTh1
	case il4 > il12 && il4 >= differentiationThreshold:
		t.lineage = LineageTh2
	default:
		return
	}
	t.logger.Info("t cell differentiated", "cell_id", t.id, "lineage", t.lineage.String(), "il12", il12, "il4", il4)
}

// ProduceCytokines writes the lineage's signature cytokine into the
// environment. Explicitly driver-invoked, repeatable, and a no-op for
// undifferentiated or unjoined cells.
func (t *TCell) ProduceCytokines() {
	if t.env == nil {
		return
	}
	switch t.lineage {
	case LineageTh1:
		t.env.Add(core.CytokineIFNGamma, th1IFNGammaAmount)
	case LineageTh2:
		t.env.Add(core.CytokineIL4, th2IL4Amount)
	}
}

// OnCytokineChanged retries differentiation while the cell is activated and
// uncommitted. It never writes back into the environment.
func (t *TCell) OnCytokineChanged(core.Cytokine, float64) {
	if t.activated && t.lineage == LineageNone {
		t.Differentiate()
	}
}
