package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCytokine(t *testing.T) {
	c, err := ParseCytokine("IFN-gamma")
	require.NoError(t, err)
	assert.Equal(t, CytokineIFNGamma, c)

	_, err = ParseCytokine("IFN-gama")
	assert.ErrorIs(t, err, ErrUnknownCytokine)

	_, err = ParseCytokine("")
	assert.Error(t, err)
}

func TestCytokineTableClosed(t *testing.T) {
	for _, c := range Cytokines() {
		assert.True(t, c.Valid(), "table entry %s must be valid", c)
	}
	assert.False(t, Cytokine("CD80").Valid(), "co-stimulation names are not cytokines")
}

func TestNewPeptideComplex(t *testing.T) {
	pc := NewPeptideComplex("viral")
	assert.Equal(t, MHCClassII, pc.MHC)
	assert.Equal(t, "viral_peptide", pc.Peptide)

	// Deterministic: same category, same complex.
	assert.Equal(t, pc, NewPeptideComplex("viral"))
}
