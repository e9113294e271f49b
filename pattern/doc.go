// Package pattern implements the pattern-recognition capability shared by
// the innate aggregator and by presenting cells: strict, signature-only
// matching of an antigen's molecular signature against the fixed set of
// known pathogen-associated molecular patterns (PAMPs).
package pattern
