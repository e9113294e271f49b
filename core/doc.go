// Package core centralizes the domain contracts shared by every cell and
// service package in ImmunoMesh: the closed cytokine vocabulary, the observer
// contract used by the cytokine environment, the antigen-presenting cell
// contract consumed by responder cells, and the run-history store interface.
//
// Keeping the contracts here prevents higher level packages (innate, adaptive,
// runner) from depending on each other's concrete types — they all meet in
// core, the same way implementations of a store live in their own package
// while the interface lives here.
package core
