package syren

import (
	"maps"

	"github.com/nagisham/syren/accessor"
)

// Slice holds a keyed record. Whole-value writes shallow-merge onto the
// current record.
type Slice[V any] struct {
	*Core[map[string]V]
}

// NewSlice creates a slice.
func NewSlice[V any](optFns ...func(o *Options[map[string]V])) *Slice[V] {
	return &Slice[V]{Core: Build(Blueprint[map[string]V]{
		Kind: "slice",
		Accessors: []accessor.Behavior[map[string]V]{
			accessor.Single[map[string]V](accessor.MergeMap[V]),
			accessor.KeyValue[V](),
		},
	}, optFns...)}
}

// Get returns a copy of the record, or nil when the slice is empty.
func (s *Slice[V]) Get() map[string]V {
	m, _ := typed[map[string]V](s.Do(accessor.ReadAll()))
	return maps.Clone(m)
}

// Key returns one field.
func (s *Slice[V]) Key(key string) (V, bool) { return typed[V](s.Do(accessor.Key(key))) }

// SetKey writes one field.
func (s *Slice[V]) SetKey(key string, v V) { s.Do(accessor.SetKey(key, v)) }

// Merge shallow-merges patch onto the record.
func (s *Slice[V]) Merge(patch map[string]V) { s.Do(accessor.Patch(patch)) }

// Update merges the patch computed by fn from the current record.
func (s *Slice[V]) Update(fn func(map[string]V) map[string]V) { s.Do(accessor.Patch(fn)) }

// Keys lists the field names in no particular order.
func (s *Slice[V]) Keys() []string {
	m, _ := s.Cell().Get()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
