package innate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
	"github.com/hupe1980/immunomesh/cytokine"
)

// joinedDC returns a dendritic cell registered with and joined to a fresh
// environment.
func joinedDC(t *testing.T) (*DendriticCell, *cytokine.Environment) {
	t.Helper()
	env := cytokine.NewEnvironment()
	dc := NewDendriticCell()
	dc.JoinEnvironment(env)
	env.Register(dc)
	return dc, env
}

func TestNewDendriticCellStartsResting(t *testing.T) {
	dc := NewDendriticCell()
	assert.Equal(t, DCResting, dc.State())
	assert.False(t, dc.IsActivated())
	assert.False(t, dc.IsPrimed())
	assert.NotEmpty(t, dc.ID())
}

func TestRecognizeKnownPAMPActivates(t *testing.T) {
	dc := NewDendriticCell()
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))

	assert.True(t, dc.Recognize(lps))
	assert.Equal(t, DCActivated, dc.State())
}

func TestRecognizeSelfNeverActivates(t *testing.T) {
	dc := NewDendriticCell()

	selfProtein := antigen.New(antigen.Self, antigen.WithSignature("self_protein"))
	assert.False(t, dc.Recognize(selfProtein))

	// Even a PAMP signature on a self antigen is tolerated.
	selfWithPAMP := antigen.New(antigen.Self, antigen.WithSignature("LPS"))
	assert.False(t, dc.Recognize(selfWithPAMP))

	assert.Equal(t, DCResting, dc.State())
}

func TestRecognizeNilAndUnsignedAntigens(t *testing.T) {
	dc := NewDendriticCell()
	assert.False(t, dc.Recognize(nil))
	assert.False(t, dc.Recognize(antigen.New(antigen.Viral)))
	assert.Equal(t, DCResting, dc.State())
}

func TestRecognizeClearsBuffer(t *testing.T) {
	dc, _ := joinedDC(t)
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))

	require.True(t, dc.Recognize(lps))
	assert.Empty(t, dc.buffer, "buffer must be cleared after processing")

	// A second recognition must not double-count the first antigen.
	env2 := cytokine.NewEnvironment()
	dc2 := NewDendriticCell()
	dc2.JoinEnvironment(env2)
	require.True(t, dc2.Recognize(lps))
	require.True(t, dc2.Recognize(lps))
	// Each processing cycle saw exactly one antigen: production is capped
	// per cycle, so two cycles of a concentration-50 LPS yield exactly twice
	// one cycle's output.
	assert.InDelta(t, 2*10*2.0, env2.GetLevel(core.CytokineIL12), 1e-9)
}

func TestPrimingByIFNGamma(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIFNGamma, 10.0)
	assert.True(t, dc.IsPrimed())
}

func TestPrimingByTNFAlphaAtThreshold(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineTNFAlpha, 15.0) // >= threshold
	assert.True(t, dc.IsPrimed())
}

func TestNoPrimingBelowThresholds(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIFNGamma, 5.0) // strictly-greater-than required
	env.Add(core.CytokineTNFAlpha, 9.0)
	assert.Equal(t, DCResting, dc.State())
}

func TestPrimingOnlyFromResting(t *testing.T) {
	dc, env := joinedDC(t)
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	require.True(t, dc.Recognize(lps))
	require.Equal(t, DCActivated, dc.State())

	env.Add(core.CytokineIFNGamma, 10.0)
	assert.Equal(t, DCActivated, dc.State(), "activated cells do not drop back to primed")
}

func TestPrimedAmplification(t *testing.T) {
	// Two otherwise-identical cells in separate environments; one primed.
	primed, primedEnv := joinedDC(t)
	primedEnv.Add(core.CytokineIFNGamma, 10.0)
	require.True(t, primed.IsPrimed())
	il12Before := primedEnv.GetLevel(core.CytokineIL12)

	resting, restingEnv := joinedDC(t)

	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	require.True(t, primed.Recognize(lps))
	require.True(t, resting.Recognize(lps))

	primedIL12 := primedEnv.GetLevel(core.CytokineIL12) - il12Before
	restingIL12 := restingEnv.GetLevel(core.CytokineIL12)
	require.Greater(t, restingIL12, 0.0)
	assert.GreaterOrEqual(t, primedIL12, 1.5*restingIL12)
}

func TestCytokineProductionAmounts(t *testing.T) {
	dc, env := joinedDC(t)
	// Concentration 50, exact LPS: threat = 50/10*2 = 10, capped at 10.
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	require.True(t, dc.Recognize(lps))

	assert.InDelta(t, 20.0, env.GetLevel(core.CytokineIL12), 1e-9)
	assert.InDelta(t, 15.0, env.GetLevel(core.CytokineTNFAlpha), 1e-9)
	assert.InDelta(t, 18.0, env.GetLevel(core.CytokineIL6), 1e-9)
}

func TestListSignatureGetsNoExactMultiplier(t *testing.T) {
	dc, env := joinedDC(t)
	// List-shaped LPS matches but does not trigger the exact-LPS multiplier:
	// threat = 50/10 = 5.
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignatures("LPS"))
	require.True(t, dc.Recognize(lps))
	assert.InDelta(t, 10.0, env.GetLevel(core.CytokineIL12), 1e-9)
}

func TestSuppressionBlocksRecognition(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIL10, 11.0)
	require.Equal(t, DCSuppressed, dc.State())

	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	assert.False(t, dc.Recognize(lps))
	assert.Equal(t, DCSuppressed, dc.State())
}

func TestSuppressionHasNoRecoveryPath(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIL10, 11.0)
	require.Equal(t, DCSuppressed, dc.State())

	// Neither priming nor recovery cytokines release suppression.
	env.Add(core.CytokineIFNGamma, 10.0)
	env.Add(core.CytokineIL2, 20.0)
	assert.Equal(t, DCSuppressed, dc.State())
}

func TestExhaustionTakesPriorityAndBlocksSignals(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineTGFBeta, 31.0)
	require.Equal(t, DCExhausted, dc.State())

	// Exhausted cells ignore suppression and priming.
	env.Add(core.CytokineIL10, 20.0)
	env.Add(core.CytokineIFNGamma, 10.0)
	assert.Equal(t, DCExhausted, dc.State())

	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	assert.False(t, dc.Recognize(lps))
}

func TestExhaustionOverridesSuppression(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIL10, 11.0)
	require.Equal(t, DCSuppressed, dc.State())

	env.Add(core.CytokineTGFBeta, 31.0)
	assert.Equal(t, DCExhausted, dc.State())
}

func TestIL2RecoversExhaustion(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineTGFBeta, 31.0)
	require.Equal(t, DCExhausted, dc.State())

	env.Add(core.CytokineIL2, 11.0)
	assert.Equal(t, DCResting, dc.State())

	// Recovered cells recognize again.
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	assert.True(t, dc.Recognize(lps))
}

func TestIL2OnlyRecoversExhausted(t *testing.T) {
	dc, env := joinedDC(t)
	env.Add(core.CytokineIFNGamma, 10.0)
	require.True(t, dc.IsPrimed())

	env.Add(core.CytokineIL2, 20.0)
	assert.True(t, dc.IsPrimed(), "IL-2 must not touch non-exhausted states")
}

func TestPhagocytosisPresentsMHCII(t *testing.T) {
	dc := NewDendriticCell()
	assert.Empty(t, dc.Presentations())

	viral := antigen.New(antigen.Viral, antigen.WithSignature("dsRNA"))
	require.True(t, dc.Phagocytose(viral))

	presentations := dc.Presentations()
	require.Len(t, presentations, 1)
	assert.Equal(t, core.MHCClassII, presentations[0].MHC)
	assert.Equal(t, "viral_peptide", presentations[0].Peptide)

	// Duplicate uptake does not duplicate the complex.
	require.True(t, dc.Phagocytose(viral))
	assert.Len(t, dc.Presentations(), 1)

	// A different category derives a different peptide.
	require.True(t, dc.Phagocytose(antigen.New(antigen.Bacterial, antigen.WithSignature("LPS"))))
	assert.Len(t, dc.Presentations(), 2)

	assert.False(t, dc.Phagocytose(nil))
}

func TestRecognizeWithoutEnvironmentStillActivates(t *testing.T) {
	dc := NewDendriticCell()
	lps := antigen.New(antigen.Bacterial, antigen.WithConcentration(50), antigen.WithSignature("LPS"))
	assert.True(t, dc.Recognize(lps))
	assert.True(t, dc.IsActivated(), "production is skipped, activation is not")
}
