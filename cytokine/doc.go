// Package cytokine implements the shared extracellular environment: a table
// of accumulated signal levels plus an identity-deduplicated observer
// registry. It is the sole communication channel between cells — every write
// fans out synchronously to all registered observers before returning.
//
// The environment is an explicitly shared handle: cells join it via their
// JoinEnvironment methods and it lives exactly as long as the simulation run.
// Levels only ever increase; they represent cumulative exposure, not a
// steady-state concentration.
package cytokine
