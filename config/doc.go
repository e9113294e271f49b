// Package config defines the YAML scenario format consumed by the runner
// and the CLI: which cells populate the simulation, which antigens arrive at
// which step, and which driver actions (production, scanning,
// differentiation) run per step. Scenarios are validated on load so a typo
// in a category or cytokine name fails fast instead of silently simulating
// nothing.
package config
