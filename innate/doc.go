// Package innate contains the innate-immune cell agents and their
// aggregator:
//
//  1. DendriticCell — a finite-state machine that recognizes pathogen
//     patterns, broadcasts alarm cytokines and presents peptides
//  2. Macrophage — a phagocyte with a continuous activation level and a
//     co-stimulation contract for responder cells
//  3. InnateImmuneSystem — owns the shared environment and a set of
//     dendritic cells, exposing one entry point for antigen exposure and
//     one status snapshot
//
// Cells communicate exclusively through the cytokine environment they join;
// no cell holds a reference to another cell. Cross-cell effects — one
// dendritic cell priming its siblings, IFN-γ activating macrophages — happen
// through the environment's synchronous observer fan-out.
package innate
