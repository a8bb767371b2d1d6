package syren

import (
	"slices"

	"github.com/nagisham/syren/accessor"
	"github.com/nagisham/syren/engine"
	"github.com/nagisham/syren/state"
)

// Storage holds an ordered list. Its empty form is an empty slice.
type Storage[E any] struct {
	*Core[[]E]
	*engine.Array[E]
}

// NewStorage creates a storage.
func NewStorage[E any](optFns ...func(o *Options[[]E])) *Storage[E] {
	c := Build(Blueprint[[]E]{
		Kind:  "storage",
		State: []state.Behavior[[]E]{state.Default([]E{})},
		Accessors: []accessor.Behavior[[]E]{
			accessor.Single[[]E](nil),
			accessor.Index[E](),
		},
	}, optFns...)

	return &Storage[E]{Core: c, Array: engine.NewArray(c.engineContext(c.logger))}
}

// Get returns a copy of the elements.
func (s *Storage[E]) Get() []E {
	items, _ := typed[[]E](s.Do(accessor.ReadAll()))
	if items == nil {
		return []E{}
	}
	return slices.Clone(items)
}

// At returns the element at index i.
func (s *Storage[E]) At(i int) (E, bool) { return typed[E](s.Do(accessor.At(i))) }

// SetAt replaces the element at index i, appending when i is past the end.
func (s *Storage[E]) SetAt(i int, e E) { s.Do(accessor.SetAt(i, e)) }

// Set replaces every element.
func (s *Storage[E]) Set(items []E) { s.Do(accessor.Patch(items)) }
