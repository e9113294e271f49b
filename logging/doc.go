// Package logging provides a minimal logging interface and adapters for
// ImmunoMesh.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that cells, the runner and the CLI use for observability.
// This package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - NoOpLogger for silent operation (testing, minimal setups)
//   - ImmunoMeshLogger with contextual helpers (run, cell, component) and
//     domain specific helpers for state transitions and cytokine writes
//
// Usage:
//
//	logger := logging.NewSlogLogger(logging.LogLevelInfo, "json", false)
//	mesh := immunomesh.New(func(o *immunomesh.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor
// lock-in while supporting structured logging where available.
package logging
