package innate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
)

func joinedMacrophage(t *testing.T) (*Macrophage, *cytokine.Environment) {
	t.Helper()
	env := cytokine.NewEnvironment()
	m := NewMacrophage()
	m.JoinEnvironment(env)
	env.Register(m)
	return m, env
}

func TestNewMacrophageIsResting(t *testing.T) {
	m := NewMacrophage()
	assert.Equal(t, 0.0, m.ActivationLevel())
	assert.False(t, m.IsActivated())
	assert.Zero(t, m.PhagocytosedCount())
}

func TestPhagocytoseRaisesLevelUpToBasalCeiling(t *testing.T) {
	m := NewMacrophage()
	bacterial := antigen.New(antigen.Bacterial, antigen.WithSignature("LPS"))

	require.True(t, m.Phagocytose(bacterial))
	assert.Equal(t, 10.0, m.ActivationLevel())

	for i := 0; i < 10; i++ {
		m.Phagocytose(bacterial)
	}
	assert.Equal(t, 30.0, m.ActivationLevel(), "phagocytosis alone cannot activate")
	assert.False(t, m.IsActivated())
	assert.Equal(t, 11, m.PhagocytosedCount())
}

func TestPhagocytoseNilFails(t *testing.T) {
	m := NewMacrophage()
	assert.False(t, m.Phagocytose(nil))
	assert.Zero(t, m.PhagocytosedCount())
}

func TestPhagocytosePresentsMHCII(t *testing.T) {
	m := NewMacrophage()
	require.True(t, m.Phagocytose(antigen.New(antigen.Viral, antigen.WithSignatures("dsRNA"))))

	presentations := m.Presentations()
	require.Len(t, presentations, 1)
	assert.Equal(t, core.PeptideComplex{MHC: core.MHCClassII, Peptide: "viral_peptide"}, presentations[0])

	// Same category again: no duplicate.
	m.Phagocytose(antigen.New(antigen.Viral))
	assert.Len(t, m.Presentations(), 1)
}

func TestIFNGammaActivation(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 10.0)

	assert.Equal(t, 100.0, m.ActivationLevel()) // min(50 + 5*10, 100)
	assert.True(t, m.IsActivated())
}

func TestIFNGammaActivationIsMonotonic(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 10.0)
	require.Equal(t, 100.0, m.ActivationLevel())

	// A later, lower cumulative level cannot happen (levels only grow), but
	// the reaction must never lower an already higher activation.
	m.OnCytokineChanged(core.CytokineIFNGamma, 6.0)
	assert.Equal(t, 100.0, m.ActivationLevel())
}

func TestIL10Suppression(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 6.0) // level = 80
	require.Equal(t, 80.0, m.ActivationLevel())

	env.Add(core.CytokineIL10, 12.0) // suppression = min(24, 50)
	assert.Equal(t, 56.0, m.ActivationLevel())
}

func TestIL10SuppressionFloorsAtZero(t *testing.T) {
	m := NewMacrophage()
	m.Phagocytose(antigen.New(antigen.Bacterial)) // level = 10
	m.OnCytokineChanged(core.CytokineIL10, 30.0)  // suppression capped at 50
	assert.Equal(t, 0.0, m.ActivationLevel())
}

func TestProduceCytokinesWhenActivated(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 10.0) // level = 100
	require.True(t, m.IsActivated())

	m.ProduceCytokines()

	assert.InDelta(t, 5.0, env.GetLevel(core.CytokineTNFAlpha), 1e-9) // 100/20
	assert.InDelta(t, 4.0, env.GetLevel(core.CytokineIL1Beta), 1e-9) // 100/25
	assert.InDelta(t, 3.0, env.GetLevel(core.CytokineIL12), 1e-9)    // level > 75
}

func TestProduceCytokinesNoOpWhenResting(t *testing.T) {
	m, env := joinedMacrophage(t)
	m.Phagocytose(antigen.New(antigen.Bacterial))
	m.ProduceCytokines()

	assert.Equal(t, 0.0, env.GetLevel(core.CytokineTNFAlpha))
	assert.Equal(t, 0.0, env.GetLevel(core.CytokineIL1Beta))
}

func TestProduceCytokinesWithoutEnvironmentIsNoOp(t *testing.T) {
	m := NewMacrophage()
	m.OnCytokineChanged(core.CytokineIFNGamma, 10.0)
	require.True(t, m.IsActivated())
	m.ProduceCytokines() // must not panic
}

func TestCostimulationActivated(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 10.0) // level = 100

	signals := m.Costimulation()
	assert.InDelta(t, 1.0, signals[core.CD80], 1e-9)
	assert.InDelta(t, 0.8, signals[core.CD86], 1e-9)
	assert.GreaterOrEqual(t, signals[core.CD80], 0.3, "activated macrophages satisfy the responder gate")
}

func TestCostimulationResting(t *testing.T) {
	m := NewMacrophage()
	m.Phagocytose(antigen.New(antigen.Bacterial)) // level = 10

	signals := m.Costimulation()
	assert.InDelta(t, 0.05, signals[core.CD80], 1e-9)
	assert.InDelta(t, 0.04, signals[core.CD86], 1e-9)
	assert.Less(t, signals[core.CD80], 0.3, "resting macrophages fail the responder gate")
}

func TestPhagocytosisClampsActivatedCellToCeiling(t *testing.T) {
	m, env := joinedMacrophage(t)
	env.Add(core.CytokineIFNGamma, 6.0) // level = 80
	require.True(t, m.IsActivated())

	// The basal clamp applies to the result of every uptake, so even a
	// highly activated cell drops back to the ceiling when it phagocytoses.
	m.Phagocytose(antigen.New(antigen.Bacterial))
	assert.Equal(t, 30.0, m.ActivationLevel())
	assert.False(t, m.IsActivated())
}
