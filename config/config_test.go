package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
)

const sepsisScenario = `
name: sepsis
decay_rate: 0.1
cells:
  dendritic_cells: 2
  macrophages: 1
  t_cells:
    - peptide: bacterial_peptide
steps:
  - expose:
      - category: bacterial
        concentration: 50
        signature: LPS
  - phagocytose:
      - category: bacterial
        signature: LPS
    produce: true
  - scan: true
    differentiate: true
`

func TestParseScenario(t *testing.T) {
	s, err := Parse([]byte(sepsisScenario))
	require.NoError(t, err)

	assert.Equal(t, "sepsis", s.Name)
	assert.Equal(t, 0.1, s.DecayRate)
	assert.Equal(t, 2, s.Cells.DendriticCells)
	assert.Equal(t, 1, s.Cells.Macrophages)
	require.Len(t, s.Cells.TCells, 1)
	require.Len(t, s.Steps, 3)

	assert.Len(t, s.Steps[0].Expose, 1)
	assert.True(t, s.Steps[1].Produce)
	assert.True(t, s.Steps[2].Scan)
	assert.True(t, s.Steps[2].Differentiate)
}

func TestLoadScenarioFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sepsis.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sepsisScenario), 0o600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "sepsis", s.Name)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestTCellSpecificityDefaultsMHC(t *testing.T) {
	spec := TCellConfig{Peptide: "viral_peptide"}.Specificity()
	assert.Equal(t, core.PeptideComplex{MHC: core.MHCClassII, Peptide: "viral_peptide"}, spec)

	spec = TCellConfig{MHC: "MHC-I", Peptide: "viral_peptide"}.Specificity()
	assert.Equal(t, "MHC-I", spec.MHC)
}

func TestAntigenConfigBuildsAntigen(t *testing.T) {
	a, err := AntigenConfig{Category: "bacterial", Concentration: 50, Signature: "LPS"}.Antigen()
	require.NoError(t, err)
	assert.Equal(t, antigen.Bacterial, a.Category())
	assert.Equal(t, 50.0, a.Concentration())
	sig, exact := a.ExactSignature()
	assert.True(t, exact)
	assert.Equal(t, "LPS", sig)

	// Zero concentration keeps the construction default.
	a, err = AntigenConfig{Category: "viral", Signatures: []string{"dsRNA", "spike"}}.Antigen()
	require.NoError(t, err)
	assert.Equal(t, 1.0, a.Concentration())
	_, exact = a.ExactSignature()
	assert.False(t, exact)
	assert.Equal(t, []string{"dsRNA", "spike"}, a.Signatures())
}

func TestValidateRejectsBadScenarios(t *testing.T) {
	tests := []struct {
		name     string
		scenario Scenario
	}{
		{
			name:     "missing name",
			scenario: Scenario{},
		},
		{
			name:     "negative decay",
			scenario: Scenario{Name: "x", DecayRate: -0.1},
		},
		{
			name:     "negative cell count",
			scenario: Scenario{Name: "x", Cells: CellConfig{Macrophages: -1}},
		},
		{
			name:     "t cell without peptide",
			scenario: Scenario{Name: "x", Cells: CellConfig{TCells: []TCellConfig{{}}}},
		},
		{
			name: "unknown category",
			scenario: Scenario{Name: "x", Steps: []Step{
				{Expose: []AntigenConfig{{Category: "prion"}}},
			}},
		},
		{
			name: "conflicting signatures",
			scenario: Scenario{Name: "x", Steps: []Step{
				{Expose: []AntigenConfig{{Category: "viral", Signature: "dsRNA", Signatures: []string{"spike"}}}},
			}},
		},
		{
			name: "negative concentration",
			scenario: Scenario{Name: "x", Steps: []Step{
				{Phagocytose: []AntigenConfig{{Category: "viral", Concentration: -1}}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.scenario.Validate())
		})
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("name: [unclosed"))
	assert.Error(t, err)
}
