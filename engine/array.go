package engine

import (
	"slices"

	"github.com/nagisham/syren/event"
	"github.com/nagisham/syren/logging"
)

// ArrayEvent is the payload of "insert" and "remove".
type ArrayEvent[E any] struct {
	Index   int
	Element E
}

// Array implements ordered-list operations over a slice-valued cell.
type Array[E any] struct {
	ctx Context[[]E]
}

// NewArray binds the array engine to ctx.
func NewArray[E any](ctx Context[[]E]) *Array[E] {
	ctx.Logger = logging.OrNoOp(ctx.Logger)
	return &Array[E]{ctx: ctx}
}

func (a *Array[E]) items() []E {
	items, _ := a.ctx.Cell.Get()
	return items
}

// Find returns the index of the first element matching pred, or -1.
func (a *Array[E]) Find(pred func(E) bool) int {
	return slices.IndexFunc(a.items(), pred)
}

// Insert appends item.
func (a *Array[E]) Insert(item E) {
	a.InsertAt(len(a.items()), item)
}

// InsertAt inserts item at index i. An index past the end appends; a
// negative index is rejected with a warning.
func (a *Array[E]) InsertAt(i int, item E) {
	current := a.items()
	if i < 0 {
		a.ctx.Logger.Warn("array engine: invalid index", "op", "insert", "index", i, "len", len(current))
		return
	}
	if i > len(current) {
		i = len(current)
	}

	next := slices.Insert(slices.Clone(current), i, item)
	a.ctx.Cell.Set(next)
	a.ctx.Events.Fire(event.Insert, ArrayEvent[E]{Index: i, Element: item})
}

// Remove splices out the element at index i and returns it. An index out of
// range logs a warning and reports false.
func (a *Array[E]) Remove(i int) (E, bool) {
	current := a.items()
	if i < 0 || i >= len(current) {
		var zero E
		a.ctx.Logger.Warn("array engine: invalid index", "op", "remove", "index", i, "len", len(current))
		return zero, false
	}

	element := current[i]
	next := slices.Delete(slices.Clone(current), i, i+1)
	a.ctx.Cell.Set(next)
	a.ctx.Events.Fire(event.Remove, ArrayEvent[E]{Index: i, Element: element})

	return element, true
}

// Len returns the number of elements.
func (a *Array[E]) Len() int { return len(a.items()) }

// Truncate shrinks the array to n elements. Zero fires "cleanup"; any other
// length removes elements from the tail one at a time, each firing "remove".
func (a *Array[E]) Truncate(n int) {
	if n < 0 {
		a.ctx.Logger.Warn("array engine: invalid length", "len", n)
		return
	}
	if n == 0 {
		a.ctx.Events.Fire(event.Cleanup, nil)
		return
	}
	for l := a.Len(); l > n; l-- {
		a.Remove(l - 1)
	}
}

// Each calls fn for every element in order.
func (a *Array[E]) Each(fn func(item E, index int)) {
	for i, item := range a.items() {
		fn(item, i)
	}
}
