// Package adaptive contains the adaptive-immune responder cell. A TCell is
// keyed by a fixed MHC-peptide specificity, activates by scanning a
// presenting cell's displayed complexes (gated on co-stimulation when the
// target exposes that contract), and afterwards differentiates into one of
// two lineages based on the cytokine balance of the shared environment.
package adaptive
