package accessor

import (
	"maps"
	"slices"

	"github.com/nagisham/syren/pipeline"
)

// Processor names. Key and index behaviors patch themselves before the
// single-value names.
const (
	GetSingleHandler = "get-state-as-single-accessor"
	SetSingleHandler = "set-state-as-single-accessor"
	GetKeyHandler    = "get-state-as-key-value-accessor"
	SetKeyHandler    = "set-state-as-key-value-accessor"
	GetIndexHandler  = "get-state-as-index-accessor"
	SetIndexHandler  = "set-state-as-index-accessor"
)

// MergeFunc combines the current value with a write patch.
type MergeFunc[T any] func(current T, patch T) T

// Replace is the MergeFunc of plain values: the patch wins.
func Replace[T any](_ T, patch T) T { return patch }

// MergeMap shallow-merges patch onto a copy of current.
func MergeMap[V any](current, patch map[string]V) map[string]V {
	out := make(map[string]V, len(current)+len(patch))
	maps.Copy(out, current)
	maps.Copy(out, patch)
	return out
}

// Single reads and writes the whole value. A write accepts a T or a
// func(T) T computing the patch from the current value; merge combines the
// patch with the current value (Replace when nil). Single-argument reads no
// other behavior claimed are retried as writes when the argument is a T.
func Single[T any](merge MergeFunc[T]) Behavior[T] {
	if merge == nil {
		merge = Replace[T]
	}

	return func(a *Accessor[T]) {
		cell := a.Cell()

		a.Processors().Add(pipeline.AddOptions[*Context[T]]{
			Name: GetSingleHandler,
			Handle: func(ctx *Context[T], api *pipeline.API) {
				if ctx.Request.Kind != Read {
					return
				}
				if v, ok := cell.Get(); ok {
					ctx.State = v
				}
				api.Abort()
			},
		})

		a.Processors().Add(pipeline.AddOptions[*Context[T]]{
			Name: SetSingleHandler,
			Handle: func(ctx *Context[T], api *pipeline.API) {
				switch ctx.Request.Kind {
				case Write, ReadKey, ReadIndex:
				default:
					return
				}

				current, _ := cell.Get()
				var patch T
				switch v := ctx.Request.Value.(type) {
				case T:
					patch = v
				case func(T) T:
					patch = v(current)
				default:
					return
				}

				next := merge(current, patch)
				cell.Set(next)
				ctx.State = next
				api.Abort()
			},
		})
	}
}

// KeyValue reads and writes single fields of a map value.
func KeyValue[V any]() Behavior[map[string]V] {
	return func(a *Accessor[map[string]V]) {
		cell := a.Cell()

		a.Processors().Add(pipeline.AddOptions[*Context[map[string]V]]{
			Name:   GetKeyHandler,
			Before: GetSingleHandler,
			Handle: func(ctx *Context[map[string]V], api *pipeline.API) {
				if ctx.Request.Kind != ReadKey {
					return
				}
				if m, ok := cell.Get(); ok {
					if v, ok := m[ctx.Request.Key]; ok {
						ctx.State = v
					}
				}
				api.Abort()
			},
		})

		a.Processors().Add(pipeline.AddOptions[*Context[map[string]V]]{
			Name:   SetKeyHandler,
			Before: SetSingleHandler,
			Handle: func(ctx *Context[map[string]V], api *pipeline.API) {
				if ctx.Request.Kind != WriteKey {
					return
				}
				api.Abort()

				v, ok := ctx.Request.Value.(V)
				if !ok && ctx.Request.Value != nil {
					a.Logger().Warn("accessor: value type mismatch", "request", ctx.Request.String())
					return
				}

				current, _ := cell.Get()
				next := make(map[string]V, len(current)+1)
				maps.Copy(next, current)
				next[ctx.Request.Key] = v
				cell.Set(next)
				ctx.State = v
			},
		})
	}
}

// Index reads and writes single elements of a slice value. Writing at an
// index past the end appends; negative indexes are rejected with a warning.
func Index[E any]() Behavior[[]E] {
	return func(a *Accessor[[]E]) {
		cell := a.Cell()

		a.Processors().Add(pipeline.AddOptions[*Context[[]E]]{
			Name:   GetIndexHandler,
			Before: GetSingleHandler,
			Handle: func(ctx *Context[[]E], api *pipeline.API) {
				if ctx.Request.Kind != ReadIndex && ctx.Request.Kind != ReadKey {
					return
				}
				i, ok := ctx.Request.IndexOf()
				if !ok {
					return
				}
				api.Abort()

				items, _ := cell.Get()
				if i < 0 || i >= len(items) {
					return
				}
				ctx.State = items[i]
			},
		})

		a.Processors().Add(pipeline.AddOptions[*Context[[]E]]{
			Name:   SetIndexHandler,
			Before: SetSingleHandler,
			Handle: func(ctx *Context[[]E], api *pipeline.API) {
				if ctx.Request.Kind != WriteIndex && ctx.Request.Kind != WriteKey {
					return
				}
				i, ok := ctx.Request.IndexOf()
				if !ok {
					return
				}
				api.Abort()

				if i < 0 {
					a.Logger().Warn("accessor: invalid index", "request", ctx.Request.String())
					return
				}
				e, ok := ctx.Request.Value.(E)
				if !ok && ctx.Request.Value != nil {
					a.Logger().Warn("accessor: value type mismatch", "request", ctx.Request.String())
					return
				}

				current, _ := cell.Get()
				next := slices.Clone(current)
				if i >= len(next) {
					next = append(next, e)
				} else {
					next[i] = e
				}
				cell.Set(next)
				ctx.State = e
			},
		})
	}
}
