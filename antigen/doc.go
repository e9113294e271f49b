// Package antigen models the pathogen signal that enters the simulation: a
// fixed category, a mutable concentration, and an optional molecular
// signature (PAMP). Category and signature are set at construction and never
// reassigned; concentration changes only through Decay.
package antigen
