package syren

import (
	"github.com/nagisham/syren/accessor"
)

// Signal holds a single value. Writes replace it.
type Signal[T any] struct {
	*Core[T]
}

// NewSignal creates a signal.
func NewSignal[T any](optFns ...func(o *Options[T])) *Signal[T] {
	return &Signal[T]{Core: Build(Blueprint[T]{
		Kind:      "signal",
		Accessors: []accessor.Behavior[T]{accessor.Single[T](nil)},
	}, optFns...)}
}

// Get returns the value and whether the signal holds one.
func (s *Signal[T]) Get() (T, bool) { return typed[T](s.Do(accessor.ReadAll())) }

// Set replaces the value.
func (s *Signal[T]) Set(v T) { s.Do(accessor.Patch(v)) }

// Update replaces the value with fn applied to the current one.
func (s *Signal[T]) Update(fn func(T) T) { s.Do(accessor.Patch(fn)) }
