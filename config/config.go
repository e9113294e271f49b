package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/hupe1980/immunomesh/antigen"
	"github.com/hupe1980/immunomesh/core"
)

// Scenario describes a complete simulation run: the cell population and the
// ordered steps the driver executes.
type Scenario struct {
	Name string `yaml:"name"`
	// DecayRate is applied to every live antigen at the start of each step
	// after the first. Zero disables decay.
	DecayRate float64    `yaml:"decay_rate"`
	Cells     CellConfig `yaml:"cells"`
	Steps     []Step     `yaml:"steps"`
}

// CellConfig sizes the cell population.
type CellConfig struct {
	DendriticCells int           `yaml:"dendritic_cells"`
	Macrophages    int           `yaml:"macrophages"`
	TCells         []TCellConfig `yaml:"t_cells"`
}

// TCellConfig fixes one responder cell's specificity. MHC defaults to
// MHC-II when omitted.
type TCellConfig struct {
	MHC     string `yaml:"mhc"`
	Peptide string `yaml:"peptide"`
}

// Specificity returns the configured MHC-peptide pair.
func (c TCellConfig) Specificity() core.PeptideComplex {
	mhc := c.MHC
	if mhc == "" {
		mhc = core.MHCClassII
	}
	return core.PeptideComplex{MHC: mhc, Peptide: c.Peptide}
}

// Step is one driver cycle: new exposures, optional macrophage uptake, and
// the explicit driver actions agents never schedule themselves.
type Step struct {
	// Expose lists antigens entering the innate system this step.
	Expose []AntigenConfig `yaml:"expose"`
	// Phagocytose lists antigens fed to every phagocyte this step.
	Phagocytose []AntigenConfig `yaml:"phagocytose"`
	// Reexpose re-runs every live antigen from earlier steps through the
	// innate system, after decay. Cleared antigens no longer count.
	Reexpose bool `yaml:"reexpose"`
	// Scan lets every T cell scan every presenting cell.
	Scan bool `yaml:"scan"`
	// Differentiate invokes Differentiate on every T cell.
	Differentiate bool `yaml:"differentiate"`
	// Produce invokes ProduceCytokines on macrophages and T cells.
	Produce bool `yaml:"produce"`
}

// AntigenConfig describes one antigen. Signature and Signatures are
// mutually exclusive; a zero concentration means the default of 1.0.
type AntigenConfig struct {
	Category      string   `yaml:"category"`
	Concentration float64  `yaml:"concentration"`
	Signature     string   `yaml:"signature"`
	Signatures    []string `yaml:"signatures"`
}

// Antigen builds the antigen value described by the config entry.
func (c AntigenConfig) Antigen() (*antigen.Antigen, error) {
	category, err := antigen.ParseCategory(c.Category)
	if err != nil {
		return nil, err
	}

	opts := []antigen.Option{}
	if c.Concentration != 0 {
		opts = append(opts, antigen.WithConcentration(c.Concentration))
	}
	switch {
	case c.Signature != "" && len(c.Signatures) > 0:
		return nil, fmt.Errorf("antigen %q: signature and signatures are mutually exclusive", c.Category)
	case c.Signature != "":
		opts = append(opts, antigen.WithSignature(c.Signature))
	case len(c.Signatures) > 0:
		opts = append(opts, antigen.WithSignatures(c.Signatures...))
	}
	return antigen.New(category, opts...), nil
}

// Load reads and validates a scenario file.
func Load(path string) (Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates scenario YAML.
func Parse(data []byte) (Scenario, error) {
	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Scenario{}, fmt.Errorf("decode scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return Scenario{}, err
	}
	return s, nil
}

// Validate checks the scenario for construction errors: unknown categories,
// conflicting signatures, negative values, empty specificities.
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario name is required")
	}
	if s.DecayRate < 0 {
		return fmt.Errorf("decay_rate must not be negative")
	}
	if s.Cells.DendriticCells < 0 || s.Cells.Macrophages < 0 {
		return fmt.Errorf("cell counts must not be negative")
	}
	for i, tc := range s.Cells.TCells {
		if tc.Peptide == "" {
			return fmt.Errorf("t_cells[%d]: peptide is required", i)
		}
	}
	for i, step := range s.Steps {
		for _, ac := range append(append([]AntigenConfig{}, step.Expose...), step.Phagocytose...) {
			if ac.Concentration < 0 {
				return fmt.Errorf("steps[%d]: concentration must not be negative", i)
			}
			if _, err := ac.Antigen(); err != nil {
				return fmt.Errorf("steps[%d]: %w", i, err)
			}
		}
	}
	return nil
}
