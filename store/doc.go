// Package store houses concrete implementations of the core.RunStore.
// The interface itself (and the RunRecord/Snapshot types) live in the core
// package to centralize domain contracts. Keeping only implementations here
// prevents higher level packages (runner, CLI) from depending on concrete
// storage.
//
// Two backends are provided: a volatile in-memory store for tests and demo
// runs, and a SQLite store for keeping run histories across processes.
package store
