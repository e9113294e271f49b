package innate

import (
	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
	"github.com/hupe1980/immunomesh/logging"
	"github.com/hupe1980/immunomesh/pattern"
)

// DendriticCellState enumerates the biological states of a dendritic cell.
type DendriticCellState int

const (
	// DCResting is the initial surveillance state.
	DCResting DendriticCellState = iota
	// DCPrimed is the heightened-alert state entered from Resting on
	// environmental priming signals (IFN-γ, TNF-α).
	DCPrimed
	// DCActivated is full activation after pathogen recognition.
	DCActivated
	// DCSuppressed blocks recognition (IL-10 driven). There is no recovery
	// transition back to Resting; suppression persists for the run unless
	// escalated to Exhausted.
	DCSuppressed
	// DCExhausted blocks recognition and all cytokine reactions except IL-2
	// recovery (TGF-β driven).
	DCExhausted
)

// String returns the lower-case state name.
func (s DendriticCellState) String() string {
	switch s {
	case DCResting:
		return "resting"
	case DCPrimed:
		return "primed"
	case DCActivated:
		return "activated"
	case DCSuppressed:
		return "suppressed"
	case DCExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Cytokine thresholds governing dendritic cell state transitions. All are
// strictly-greater-than except the TNF-α priming threshold, which is
// greater-or-equal.
const (
	dcPrimingIFNGammaThreshold   = 5.0
	dcPrimingTNFAlphaThreshold   = 15.0
	dcSuppressionIL10Threshold   = 10.0
	dcExhaustionTGFBetaThreshold = 30.0
	dcRecoveryIL2Threshold       = 10.0
)

// Signal processing constants: threat normalization, per-signature
// multipliers, the production cap and the per-cytokine output weights.
const (
	threatConcentrationScale = 10.0
	lpsThreatMultiplier      = 2.0
	dsRNAThreatMultiplier    = 1.5
	maxCytokineProduction    = 10.0
	primedAmplification      = 2.0
	il12ProductionWeight     = 2.0
	tnfProductionWeight      = 1.5
	il6ProductionWeight      = 1.8
)

// DendriticCellOptions configures a DendriticCell.
type DendriticCellOptions struct {
	// Logger receives state transition and recognition events. Defaults to
	// NoOpLogger.
	Logger logging.Logger
}

// DendriticCell is the alarm cell of the innate system: it recognizes
// pathogen-associated molecular patterns, broadcasts alarm cytokines into
// the shared environment and accumulates MHC-II peptide presentations
// through phagocytic uptake.
//
// It implements core.AntigenPresenter and core.CytokineObserver. It does not
// expose a co-stimulation contract; responder scans against it match on
// presentation alone.
type DendriticCell struct {
	id            string
	state         DendriticCellState
	buffer        []*antigen.Antigen
	presentations []core.PeptideComplex
	env           *cytokine.Environment
	logger        logging.Logger
}

// NewDendriticCell constructs a resting dendritic cell with a fresh id.
func NewDendriticCell(optFns ...func(o *DendriticCellOptions)) *DendriticCell {
	opts := DendriticCellOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &DendriticCell{
		id:     core.NewID(),
		state:  DCResting,
		logger: opts.Logger,
	}
}

// ID returns the cell's unique identifier.
func (d *DendriticCell) ID() string { return d.id }

// State returns the current state.
func (d *DendriticCell) State() DendriticCellState { return d.state }

// IsActivated reports whether the cell is fully activated.
func (d *DendriticCell) IsActivated() bool { return d.state == DCActivated }

// IsPrimed reports whether the cell is in the heightened-alert state.
func (d *DendriticCell) IsPrimed() bool { return d.state == DCPrimed }

// JoinEnvironment attaches the cell to the shared environment it will
// produce cytokines into. Joining is one-time; subsequent calls are ignored.
// Joining does not register the cell as an observer — the aggregator (or the
// driver) does that, keeping registration order explicit.
func (d *DendriticCell) JoinEnvironment(env *cytokine.Environment) {
	if d.env != nil || env == nil {
		return
	}
	d.env = env
}

// Recognize attempts pattern recognition on the antigen. Suppressed and
// exhausted cells never recognize, self antigens never activate. On a
// successful match the antigen is buffered and the whole buffer is processed
// synchronously before Recognize returns.
func (d *DendriticCell) Recognize(a *antigen.Antigen) bool {
	if a == nil {
		return false
	}
	if d.state == DCSuppressed || d.state == DCExhausted {
		return false
	}
	if a.Category() == antigen.Self {
		return false
	}

	recognized := pattern.Recognize(a)
	d.logger.Debug("dendritic cell recognition", "cell_id", d.id, "category", a.Category().String(), "recognized", recognized)
	if recognized {
		d.buffer = append(d.buffer, a)
		d.processSignals()
	}
	return recognized
}

// processSignals consumes the recognition buffer: it computes the aggregate
// threat, activates the cell on any positive threat, and broadcasts alarm
// cytokines scaled by the priming amplification. The buffer is cleared
// unconditionally, regardless of the threat outcome.
func (d *DendriticCell) processSignals() {
	if len(d.buffer) == 0 {
		return
	}

	total := 0.0
	for _, a := range d.buffer {
		threat := a.Concentration() / threatConcentrationScale
		if sig, ok := a.ExactSignature(); ok {
			switch sig {
			case "LPS":
				threat *= lpsThreatMultiplier
			case "dsRNA":
				threat *= dsRNAThreatMultiplier
			}
		}
		total += threat
	}

	if total > 0 {
		// The amplification depends on the state before this activation.
		wasPrimed := d.state == DCPrimed
		prev := d.state
		d.state = DCActivated
		if prev != DCActivated {
			d.logger.Info("dendritic cell activated", "cell_id", d.id, "from", prev.String(), "threat", total)
		}

		if d.env != nil {
			production := total
			if production > maxCytokineProduction {
				production = maxCytokineProduction
			}
			amplification := 1.0
			if wasPrimed {
				amplification = primedAmplification
			}
			d.env.Add(core.CytokineIL12, production*il12ProductionWeight*amplification)
			d.env.Add(core.CytokineTNFAlpha, production*tnfProductionWeight*amplification)
			d.env.Add(core.CytokineIL6, production*il6ProductionWeight*amplification)
		}
	}

	d.buffer = d.buffer[:0]
}

// Phagocytose takes up an antigen and derives an MHC-II presentation pair
// from its category. Uptake is orthogonal to recognition: it succeeds for
// any non-nil antigen in any state and never activates the cell.
func (d *DendriticCell) Phagocytose(a *antigen.Antigen) bool {
	if a == nil {
		return false
	}
	d.present(core.NewPeptideComplex(a.Category().String()))
	return true
}

// present appends a complex unless an identical one is already displayed.
func (d *DendriticCell) present(pc core.PeptideComplex) {
	for _, existing := range d.presentations {
		if existing == pc {
			return
		}
	}
	d.presentations = append(d.presentations, pc)
}

// Presentations returns the ordered, duplicate-free complexes accumulated
// over the cell's life.
func (d *DendriticCell) Presentations() []core.PeptideComplex {
	return append([]core.PeptideComplex(nil), d.presentations...)
}

// OnCytokineChanged reacts to environment broadcasts. Exhaustion (TGF-β) is
// checked first and short-circuits every other reaction; IL-2 recovery is
// the only signal an exhausted cell still processes.
func (d *DendriticCell) OnCytokineChanged(name core.Cytokine, level float64) {
	if name == core.CytokineTGFBeta && level > dcExhaustionTGFBetaThreshold {
		d.transition(DCExhausted, name)
		return
	}

	if name == core.CytokineIL2 && level > dcRecoveryIL2Threshold && d.state == DCExhausted {
		d.transition(DCResting, name)
		return
	}

	if d.state == DCExhausted {
		return
	}

	if name == core.CytokineIL10 && level > dcSuppressionIL10Threshold {
		d.transition(DCSuppressed, name)
		return
	}

	if name == core.CytokineIFNGamma && level > dcPrimingIFNGammaThreshold && d.state == DCResting {
		d.transition(DCPrimed, name)
	}

	if name == core.CytokineTNFAlpha && level >= dcPrimingTNFAlphaThreshold && d.state == DCResting {
		d.transition(DCPrimed, name)
	}
}

func (d *DendriticCell) transition(to DendriticCellState, trigger core.Cytokine) {
	if d.state == to {
		return
	}
	d.logger.Info("dendritic cell state changed", "cell_id", d.id, "from", d.state.String(), "to", to.String(), "trigger", trigger.String())
	d.state = to
}
