// Package runner executes scenarios against an ImmunoMesh. A scenario is a
// fixed sequence of steps (exposures, phagocytosis, production, scanning,
// differentiation); the runner owns the loop, applies antigen decay between
// steps, persists a snapshot after every step, and records the run's outcome
// in the configured store.
package runner
