package innate

import (
	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
	"github.com/hupe1980/immunomesh/logging"
)

// Macrophage activation model constants. The activation level lives on a
// 0-100 scale; phagocytosis alone can never push it past the basal ceiling.
const (
	macrophageActivatedThreshold = 50.0
	macrophageBasalCeiling       = 30.0
	macrophagePhagocytosisBoost  = 10.0
	macrophageActivatedBoost     = 5.0
	macrophageMaxLevel           = 100.0

	macrophageIFNGammaThreshold = 5.0
	macrophageIL10Threshold     = 10.0

	macrophageTNFDivisor  = 20.0
	macrophageIL1Divisor  = 25.0
	macrophageIL12Trigger = 75.0
	macrophageIL12Amount  = 3.0
)

// MacrophageOptions configures a Macrophage.
type MacrophageOptions struct {
	// Logger receives activation and production events. Defaults to NoOpLogger.
	Logger logging.Logger
}

// Macrophage is a phagocyte with a continuous activation level. It engulfs
// antigens (raising its level slightly), is strongly activated by IFN-γ and
// suppressed by IL-10, and — unlike the dendritic cell — exposes a
// co-stimulation contract, so responder scans against it are gated on
// Signal 2.
//
// It implements core.CostimulatoryPresenter and core.CytokineObserver.
type Macrophage struct {
	id            string
	level         float64
	phagocytosed  int
	presentations []core.PeptideComplex
	env           *cytokine.Environment
	logger        logging.Logger
}

// NewMacrophage constructs a resting macrophage with a fresh id.
func NewMacrophage(optFns ...func(o *MacrophageOptions)) *Macrophage {
	opts := MacrophageOptions{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Macrophage{id: core.NewID(), logger: opts.Logger}
}

// ID returns the cell's unique identifier.
func (m *Macrophage) ID() string { return m.id }

// IsActivated reports whether the activation level has crossed the
// activation threshold.
func (m *Macrophage) IsActivated() bool { return m.level > macrophageActivatedThreshold }

// ActivationLevel returns the current activation level on the 0-100 scale.
func (m *Macrophage) ActivationLevel() float64 { return m.level }

// PhagocytosedCount returns how many antigens the cell has engulfed.
func (m *Macrophage) PhagocytosedCount() int { return m.phagocytosed }

// JoinEnvironment attaches the cell to the shared environment. Joining is
// one-time; subsequent calls are ignored.
func (m *Macrophage) JoinEnvironment(env *cytokine.Environment) {
	if m.env != nil || env == nil {
		return
	}
	m.env = env
}

// Phagocytose engulfs an antigen: it derives an MHC-II presentation pair,
// appends it if new, and raises the activation level mildly. Phagocytosis
// alone caps at the basal ceiling; an already activated cell gains a further
// small boost for more efficient uptake.
func (m *Macrophage) Phagocytose(a *antigen.Antigen) bool {
	if a == nil {
		return false
	}

	m.phagocytosed++
	m.present(core.NewPeptideComplex(a.Category().String()))

	boost := macrophagePhagocytosisBoost
	if remaining := macrophageMaxLevel - m.level; remaining < boost {
		boost = remaining
	}
	m.level += boost
	if m.level > macrophageBasalCeiling {
		m.level = macrophageBasalCeiling
	}

	if m.IsActivated() {
		m.level += macrophageActivatedBoost
		if m.level > macrophageMaxLevel {
			m.level = macrophageMaxLevel
		}
	}
	return true
}

func (m *Macrophage) present(pc core.PeptideComplex) {
	for _, existing := range m.presentations {
		if existing == pc {
			return
		}
	}
	m.presentations = append(m.presentations, pc)
}

// Presentations returns the ordered, duplicate-free complexes accumulated
// over the cell's life.
func (m *Macrophage) Presentations() []core.PeptideComplex {
	return append([]core.PeptideComplex(nil), m.presentations...)
}

// OnCytokineChanged reacts to environment broadcasts: IFN-γ activates
// (monotonic — it never lowers an already higher level), IL-10 suppresses.
func (m *Macrophage) OnCytokineChanged(name core.Cytokine, level float64) {
	switch {
	case name == core.CytokineIFNGamma && level > macrophageIFNGammaThreshold:
		activation := 50 + level*5
		if activation > macrophageMaxLevel {
			activation = macrophageMaxLevel
		}
		if activation > m.level {
			m.logger.Info("macrophage activated by IFN-gamma", "cell_id", m.id, "level", activation)
			m.level = activation
		}
	case name == core.CytokineIL10 && level > macrophageIL10Threshold:
		suppression := level * 2
		if suppression > 50 {
			suppression = 50
		}
		m.level -= suppression
		if m.level < 0 {
			m.level = 0
		}
	}
}

// ProduceCytokines writes inflammation cytokines into the environment in
// proportion to the activation level. Explicitly driver-invoked; the cell
// never schedules production itself. Highly activated macrophages also
// contribute a flat amount of IL-12, reinforcing Th1 differentiation.
func (m *Macrophage) ProduceCytokines() {
	if m.env == nil || !m.IsActivated() {
		return
	}

	m.env.Add(core.CytokineTNFAlpha, m.level/macrophageTNFDivisor)
	m.env.Add(core.CytokineIL1Beta, m.level/macrophageIL1Divisor)

	if m.level > macrophageIL12Trigger {
		m.env.Add(core.CytokineIL12, macrophageIL12Amount)
	}
}

// Costimulation returns the Signal 2 intensities. Activated cells present
// strong CD80/CD86; resting cells only a fraction, below any responder gate.
func (m *Macrophage) Costimulation() map[string]float64 {
	if m.IsActivated() {
		cd80 := m.level / 100
		if cd80 > 1.0 {
			cd80 = 1.0
		}
		cd86 := m.level / 120
		if cd86 > 0.8 {
			cd86 = 0.8
		}
		return map[string]float64{core.CD80: cd80, core.CD86: cd86}
	}
	return map[string]float64{core.CD80: m.level / 200, core.CD86: m.level / 250}
}
