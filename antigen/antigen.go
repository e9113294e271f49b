package antigen

import "fmt"

// Category classifies an antigen's origin. The set is closed.
type Category int

const (
	// Viral antigens originate from viruses.
	Viral Category = iota
	// Bacterial antigens originate from bacteria.
	Bacterial
	// Fungal antigens originate from fungi.
	Fungal
	// Parasitic antigens originate from parasites.
	Parasitic
	// Self marks the body's own material; never treated as a threat.
	Self
	// Tumor marks malignant self-derived material.
	Tumor
)

// String returns the lower-case category name.
func (c Category) String() string {
	switch c {
	case Viral:
		return "viral"
	case Bacterial:
		return "bacterial"
	case Fungal:
		return "fungal"
	case Parasitic:
		return "parasitic"
	case Self:
		return "self"
	case Tumor:
		return "tumor"
	default:
		return "unknown"
	}
}

// ParseCategory maps a free-form name (e.g. from a scenario file) to a
// Category.
func ParseCategory(name string) (Category, error) {
	switch name {
	case "viral":
		return Viral, nil
	case "bacterial":
		return Bacterial, nil
	case "fungal":
		return Fungal, nil
	case "parasitic":
		return Parasitic, nil
	case "self":
		return Self, nil
	case "tumor":
		return Tumor, nil
	default:
		return 0, fmt.Errorf("unknown antigen category: %q", name)
	}
}

// Antigen is an immutable-type, mutable-concentration pathogen signal. The
// molecular signature is either absent, a single identifier, or an ordered
// list of identifiers; the distinction matters because some responses key on
// an exact single signature.
type Antigen struct {
	category      Category
	concentration float64
	exact         string
	signatures    []string
}

// Option mutates construction defaults.
type Option func(*Antigen)

// WithConcentration overrides the default concentration of 1.0. Negative
// values are treated as zero.
func WithConcentration(c float64) Option {
	return func(a *Antigen) {
		if c < 0 {
			c = 0
		}
		a.concentration = c
	}
}

// WithSignature attaches a single molecular signature.
func WithSignature(sig string) Option {
	return func(a *Antigen) {
		a.exact = sig
		a.signatures = []string{sig}
	}
}

// WithSignatures attaches an ordered list of molecular signatures. A list of
// one is still list-shaped: it matches like a single signature but never
// counts as an exact one.
func WithSignatures(sigs ...string) Option {
	return func(a *Antigen) {
		a.exact = ""
		a.signatures = append([]string(nil), sigs...)
	}
}

// New constructs an antigen of the given category with concentration 1.0 and
// no signature unless options say otherwise.
func New(category Category, opts ...Option) *Antigen {
	a := &Antigen{category: category, concentration: 1.0}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Category returns the antigen's origin class.
func (a *Antigen) Category() Category { return a.category }

// Concentration returns the current concentration.
func (a *Antigen) Concentration() float64 { return a.concentration }

// HasSignature reports whether any molecular signature is attached.
func (a *Antigen) HasSignature() bool { return len(a.signatures) > 0 }

// ExactSignature returns the single signature and true when the antigen was
// built with exactly one signature via WithSignature. List-shaped signatures
// return false even when the list holds one entry.
func (a *Antigen) ExactSignature() (string, bool) {
	return a.exact, a.exact != ""
}

// Signatures returns a copy of the attached signatures in order.
func (a *Antigen) Signatures() []string {
	return append([]string(nil), a.signatures...)
}

// Decay reduces the concentration by the given rate:
// concentration *= (1 - rate). Rates above 1 clamp the concentration at zero
// instead of driving it negative.
func (a *Antigen) Decay(rate float64) {
	a.concentration *= 1 - rate
	if a.concentration < 0 {
		a.concentration = 0
	}
}
