package core

// MHCClassII is the class label under which extracellular antigens are
// presented. The simulation models professional presentation only, so every
// derived complex uses this label.
const MHCClassII = "MHC-II"

// Co-stimulation signal names exposed by presenting cells that implement the
// CostimulatoryPresenter contract.
const (
	CD80 = "CD80"
	CD86 = "CD86"
)

// PeptideComplex is an (MHC class, peptide) pair displayed by a presenting
// cell after antigen uptake. It doubles as a responder cell's specificity.
type PeptideComplex struct {
	MHC     string
	Peptide string
}

// NewPeptideComplex derives the presentation pair for an antigen category.
// The peptide id is deterministic: the category name plus a fixed suffix, so
// two uptakes of the same category yield the same complex.
func NewPeptideComplex(category string) PeptideComplex {
	return PeptideComplex{MHC: MHCClassII, Peptide: category + "_peptide"}
}

// AntigenPresenter is the contract any presenting cell exposes to responder
// cells. Presentations returns the ordered, duplicate-free sequence of
// complexes accumulated over the cell's life.
type AntigenPresenter interface {
	Presentations() []PeptideComplex
	IsActivated() bool
}

// CostimulatoryPresenter extends AntigenPresenter with Signal 2 intensities.
// A responder cell scanning a target that exposes this contract must pass the
// co-stimulation gate in addition to the presentation match; targets exposing
// only AntigenPresenter (dendritic cells) are scanned on presentation alone.
type CostimulatoryPresenter interface {
	AntigenPresenter
	Costimulation() map[string]float64
}
