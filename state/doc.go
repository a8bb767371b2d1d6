// Package state implements the state cell backing every container.
//
// A Cell exposes three pipelines (get, set and delete) that start empty.
// Behaviors register processors on them: a backing Provider, a default value,
// a mirror to an external store. The cell itself only tracks the value held
// immediately before the last successful Set.
package state
