package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagisham/syren/pipeline"
)

func newCell[T any](behaviors ...Behavior[T]) *Cell[T] {
	return New(func(o *Options[T]) { o.Behaviors = behaviors })
}

func TestCell_InMemory(t *testing.T) {
	c := newCell(InMemory[int]())

	_, ok := c.Get()
	assert.False(t, ok)

	require.True(t, c.Set(1))
	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestCell_PreviousTracking(t *testing.T) {
	c := newCell(InMemory[string]())

	_, ok := c.Previous()
	assert.False(t, ok)

	c.Set("a")
	_, ok = c.Previous()
	assert.False(t, ok, "cell was empty before the first set")

	c.Set("b")
	prev, ok := c.Previous()
	assert.True(t, ok)
	assert.Equal(t, "a", prev)

	assert.True(t, c.Delete())
	_, ok = c.Get()
	assert.False(t, ok)
	prev, _ = c.Previous()
	assert.Equal(t, "a", prev, "delete leaves previous untouched")

	assert.False(t, c.Delete())
}

func TestCell_DefaultValue(t *testing.T) {
	c := newCell(InMemory[int](), Default(0))

	v, ok := c.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)

	c.Set(3)
	v, _ = c.Get()
	assert.Equal(t, 3, v)

	c.Delete()
	v, ok = c.Get()
	assert.True(t, ok)
	assert.Zero(t, v)
}

func TestCell_TwoSources(t *testing.T) {
	store := NewMemoryProvider[int]()

	first := newCell(InMemory[int](), Backed[int](store), Default(0))
	v, _ := first.Get()
	assert.Equal(t, 0, v)

	first.Set(1)

	second := newCell(InMemory[int](), Backed[int](store), Default(0))
	v, _ = second.Get()
	assert.Equal(t, 1, v, "value persisted in the shared provider")
}

func TestCell_SyncedSeedsAndMirrors(t *testing.T) {
	external := NewMemoryProvider[int]()
	external.Set(5)

	c := newCell(InMemory[int](), Synced[int](external))
	v, ok := c.Get()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	c.Set(6)
	ext, _ := external.Get()
	assert.Equal(t, 6, ext)

	assert.True(t, c.Delete())
	_, ok = external.Get()
	assert.False(t, ok)
}

func TestCell_Initial(t *testing.T) {
	c := newCell(InMemory[int](), Initial(9))
	v, _ := c.Get()
	assert.Equal(t, 9, v)

	store := NewMemoryProvider[int]()
	store.Set(1)
	seeded := newCell(Backed[int](store), Initial(9))
	v, _ = seeded.Get()
	assert.Equal(t, 1, v, "initial does not overwrite a stored value")
}

func TestCell_AbortedSetIsRejected(t *testing.T) {
	c := newCell(InMemory[int]())
	c.Set(1)
	c.Setters().Add(pipeline.AddOptions[*SetContext[int]]{
		Name:   "reject-negative",
		Before: SetToProvider,
		Handle: func(ctx *SetContext[int], api *pipeline.API) {
			if ctx.State < 0 {
				api.Abort()
			}
		},
	})

	assert.False(t, c.Set(-1))
	v, _ := c.Get()
	assert.Equal(t, 1, v)
	_, ok := c.Previous()
	assert.False(t, ok)

	assert.True(t, c.Set(2))
	prev, _ := c.Previous()
	assert.Equal(t, 1, prev)
}

func TestFuncProvider(t *testing.T) {
	var stored []string
	p := FuncProvider[string]{SetFunc: func(v string) { stored = append(stored, v) }}

	_, ok := p.Get()
	assert.False(t, ok)
	assert.False(t, p.Delete())

	c := newCell[string](InMemory[string](), Synced[string](p))
	c.Set("x")
	assert.Equal(t, []string{"x"}, stored)
}
