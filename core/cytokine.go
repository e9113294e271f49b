package core

import (
	"errors"
	"fmt"
)

// ErrUnknownCytokine is returned when a name outside the closed vocabulary is
// parsed.
var ErrUnknownCytokine = errors.New("unknown cytokine")

// Cytokine names a signaling molecule accumulated in the shared environment.
// The vocabulary is closed: only the constants below are valid, and the
// environment rejects writes under any other name. This keeps a typo from
// silently becoming an "unknown cytokine, level zero".
type Cytokine string

const (
	// CytokineIL1Beta is produced by activated macrophages (inflammation).
	CytokineIL1Beta Cytokine = "IL-1beta"
	// CytokineIL2 recovers exhausted dendritic cells.
	CytokineIL2 Cytokine = "IL-2"
	// CytokineIL4 drives Th2 differentiation and is produced by Th2 cells.
	CytokineIL4 Cytokine = "IL-4"
	// CytokineIL6 is an acute-phase signal produced by activated dendritic cells.
	CytokineIL6 Cytokine = "IL-6"
	// CytokineIL10 suppresses dendritic cells and macrophages.
	CytokineIL10 Cytokine = "IL-10"
	// CytokineIL12 drives Th1 differentiation.
	CytokineIL12 Cytokine = "IL-12"
	// CytokineTNFAlpha primes dendritic cells and marks inflammation.
	CytokineTNFAlpha Cytokine = "TNF-alpha"
	// CytokineIFNGamma primes dendritic cells and activates macrophages.
	CytokineIFNGamma Cytokine = "IFN-gamma"
	// CytokineTGFBeta exhausts dendritic cells.
	CytokineTGFBeta Cytokine = "TGF-beta"
)

// cytokineTable is the fixed set of recognized names.
var cytokineTable = map[Cytokine]struct{}{
	CytokineIL1Beta:  {},
	CytokineIL2:      {},
	CytokineIL4:      {},
	CytokineIL6:      {},
	CytokineIL10:     {},
	CytokineIL12:     {},
	CytokineTNFAlpha: {},
	CytokineIFNGamma: {},
	CytokineTGFBeta:  {},
}

// Valid reports whether the name is part of the closed cytokine vocabulary.
func (c Cytokine) Valid() bool {
	_, ok := cytokineTable[c]
	return ok
}

// String returns the wire name of the cytokine.
func (c Cytokine) String() string { return string(c) }

// ParseCytokine validates a free-form name (e.g. from a scenario file)
// against the closed vocabulary.
func ParseCytokine(name string) (Cytokine, error) {
	c := Cytokine(name)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCytokine, name)
	}
	return c, nil
}

// Cytokines returns the full vocabulary in stable order. Useful for
// snapshotting and for table-driven validation.
func Cytokines() []Cytokine {
	return []Cytokine{
		CytokineIL1Beta,
		CytokineIL2,
		CytokineIL4,
		CytokineIL6,
		CytokineIL10,
		CytokineIL12,
		CytokineTNFAlpha,
		CytokineIFNGamma,
		CytokineTGFBeta,
	}
}

// CytokineObserver is the contract required of anything registered with the
// cytokine environment. OnCytokineChanged is invoked synchronously, exactly
// once per write per registered observer, in registration order, with the new
// absolute (post-write) level.
//
// Implementations must not write back into the environment from inside
// OnCytokineChanged; production is triggered only by explicit calls
// (Recognize, Phagocytose, ProduceCytokines), never from inside a
// notification. The environment relies on this to keep fan-out
// non-re-entrant and results deterministic.
type CytokineObserver interface {
	OnCytokineChanged(name Cytokine, level float64)
}
