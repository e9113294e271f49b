package pattern

import "github.com/hupe1980/immunomesh/antigen"

// knownPAMPs is the fixed set of recognizable molecular signatures.
var knownPAMPs = map[string]struct{}{
	"LPS":           {}, // bacterial lipopolysaccharide
	"dsRNA":         {}, // viral double-stranded RNA
	"flagellin":     {}, // bacterial flagellin
	"peptidoglycan": {}, // bacterial cell wall component
	"beta_glucan":   {}, // fungal cell wall component
}

// IsKnownPAMP reports whether a signature belongs to the fixed PAMP set.
func IsKnownPAMP(signature string) bool {
	_, ok := knownPAMPs[signature]
	return ok
}

// KnownPAMPs returns the recognizable signatures in stable order.
func KnownPAMPs() []string {
	return []string{"LPS", "dsRNA", "flagellin", "peptidoglycan", "beta_glucan"}
}

// Recognize applies strict signature-only matching: it succeeds iff the
// antigen carries a signature and at least one attached identifier is a known
// PAMP. Self antigens are never recognized, whatever their signature, and a
// missing signature always yields non-recognition.
func Recognize(a *antigen.Antigen) bool {
	if a == nil || a.Category() == antigen.Self {
		return false
	}
	for _, sig := range a.Signatures() {
		if IsKnownPAMP(sig) {
			return true
		}
	}
	return false
}
