package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagisham/syren/event"
	"github.com/nagisham/syren/internal/testutil"
	"github.com/nagisham/syren/state"
)

func newContext[T any](t *testing.T, behaviors ...state.Behavior[T]) (Context[T], *testutil.RecordingLogger) {
	t.Helper()
	logger := testutil.NewRecordingLogger()
	cell := state.New(func(o *state.Options[T]) {
		o.Behaviors = append([]state.Behavior[T]{state.InMemory[T]()}, behaviors...)
	})
	return Context[T]{
		Cell:   cell,
		Events: event.New(func(o *event.Options) { o.Logger = logger }),
		Logger: logger,
	}, logger
}

func TestEmitChangeOnSet(t *testing.T) {
	ctx, _ := newContext[int](t)
	Apply(ctx, EmitChangeOnSet[int]())

	var got []int
	ctx.Events.Listen(event.ListenOptions{Type: event.Change, Each: event.Each(func(v int) {
		current, _ := ctx.Cell.Get()
		assert.Equal(t, v, current, "listeners observe the stored value")
		got = append(got, v)
	})})

	ctx.Cell.Set(1)
	ctx.Cell.Set(1)
	ctx.Cell.Set(2)

	assert.Equal(t, []int{1, 2}, got)
}

func TestReplayOnListen(t *testing.T) {
	ctx, _ := newContext(t, state.Initial(5))
	Apply(ctx, EmitChangeOnSet[int](), ReplayOnListen[int]())

	var got []int
	ctx.Events.Listen(event.ListenOptions{Type: event.Change, Each: event.Each(func(v int) { got = append(got, v) })})
	assert.Equal(t, []int{5}, got)

	ctx.Cell.Set(5)
	assert.Equal(t, []int{5}, got)

	ctx.Cell.Set(6)
	assert.Equal(t, []int{5, 6}, got)
}

func TestReplayOnListen_EmptyCell(t *testing.T) {
	ctx, _ := newContext[int](t)
	Apply(ctx, ReplayOnListen[int]())

	calls := 0
	ctx.Events.Listen(event.ListenOptions{Type: event.Change, Each: func(any) { calls++ }})

	assert.Zero(t, calls)
}

func TestDeleteOnCleanup(t *testing.T) {
	ctx, _ := newContext(t, state.Initial("x"))
	Apply(ctx, DeleteOnCleanup[string]())

	ctx.Events.Fire(event.Cleanup, nil)

	_, ok := ctx.Cell.Get()
	assert.False(t, ok)
}

func TestDeleteOnCleanup_SameValueNotifiesAgain(t *testing.T) {
	ctx, _ := newContext(t, state.Initial(5))
	Apply(ctx, EmitChangeOnSet[int](), ReplayOnListen[int](), DeleteOnCleanup[int]())

	var got []int
	ctx.Events.Listen(event.ListenOptions{Type: event.Change, Each: event.Each(func(v int) { got = append(got, v) })})

	ctx.Events.Fire(event.Cleanup, nil)
	ctx.Cell.Set(5)

	assert.Equal(t, []int{5, 5}, got)
}

func newArray(t *testing.T, initial ...int) (*Array[int], Context[[]int], *testutil.RecordingLogger) {
	t.Helper()
	ctx, logger := newContext(t, state.Initial(initial), state.Default([]int{}))
	Apply(ctx, EmitChangeOnSet[[]int](), DeleteOnCleanup[[]int]())
	return NewArray(ctx), ctx, logger
}

func TestArray_InsertRemove(t *testing.T) {
	arr, ctx, _ := newArray(t)

	var removed []ArrayEvent[int]
	ctx.Events.Listen(event.ListenOptions{Type: event.Remove, Each: event.Each(func(e ArrayEvent[int]) {
		removed = append(removed, e)
	})})

	arr.Insert(10)
	arr.Insert(20)
	el, ok := arr.Remove(0)

	require.True(t, ok)
	assert.Equal(t, 10, el)
	items, _ := ctx.Cell.Get()
	assert.Equal(t, []int{20}, items)
	assert.Equal(t, []ArrayEvent[int]{{Index: 0, Element: 10}}, removed)
}

func TestArray_InsertAt(t *testing.T) {
	arr, ctx, logger := newArray(t, 1, 3)

	var inserted []ArrayEvent[int]
	ctx.Events.Listen(event.ListenOptions{Type: event.Insert, Each: event.Each(func(e ArrayEvent[int]) {
		inserted = append(inserted, e)
	})})

	arr.InsertAt(1, 2)
	arr.InsertAt(99, 4)
	arr.InsertAt(-1, 0)

	items, _ := ctx.Cell.Get()
	assert.Equal(t, []int{1, 2, 3, 4}, items)
	assert.Equal(t, []ArrayEvent[int]{{Index: 1, Element: 2}, {Index: 3, Element: 4}}, inserted)
	assert.Len(t, logger.Entries("WARN"), 1)
}

func TestArray_CopyThenReplace(t *testing.T) {
	arr, ctx, _ := newArray(t, 1, 2)

	arr.Insert(3)

	prev, ok := ctx.Cell.Previous()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, prev)
	current, _ := ctx.Cell.Get()
	current[0] = 100
	assert.Equal(t, 1, prev[0], "previous does not alias current")
}

func TestArray_RemoveOutOfRange(t *testing.T) {
	arr, _, logger := newArray(t, 1)

	_, ok := arr.Remove(3)

	assert.False(t, ok)
	assert.Equal(t, 1, arr.Len())
	assert.Equal(t, []string{"array engine: invalid index"}, logger.Messages("WARN"))
}

func TestArray_Truncate(t *testing.T) {
	arr, ctx, _ := newArray(t, 1, 2, 3)

	var order []int
	ctx.Events.Listen(event.ListenOptions{Type: event.Remove, Each: event.Each(func(e ArrayEvent[int]) {
		order = append(order, e.Index)
	})})

	arr.Truncate(1)

	items, _ := ctx.Cell.Get()
	assert.Equal(t, []int{1}, items)
	assert.Equal(t, []int{2, 1}, order, "removed from the tail first")

	arr.Truncate(5)
	assert.Equal(t, 1, arr.Len())
}

func TestArray_TruncateZeroFiresCleanup(t *testing.T) {
	arr, ctx, _ := newArray(t, 1, 2, 3)

	cleanups := 0
	ctx.Events.Listen(event.ListenOptions{Type: event.Cleanup, Each: func(any) { cleanups++ }})

	arr.Truncate(0)

	assert.Equal(t, 1, cleanups)
	items, ok := ctx.Cell.Get()
	assert.True(t, ok)
	assert.Equal(t, []int{}, items, "default empty form after cleanup")
}

func TestArray_FindAndEach(t *testing.T) {
	arr, _, _ := newArray(t, 5, 6, 7)

	assert.Equal(t, 1, arr.Find(func(v int) bool { return v == 6 }))
	assert.Equal(t, -1, arr.Find(func(v int) bool { return v == 9 }))

	var seen []int
	arr.Each(func(v, i int) { seen = append(seen, v*10+i) })
	assert.Equal(t, []int{50, 61, 72}, seen)
}

func TestArray_RepeatedIdenticalOperations(t *testing.T) {
	arr, ctx, _ := newArray(t)

	var inserted, removed []ArrayEvent[int]
	ctx.Events.Listen(event.ListenOptions{Type: event.Insert, Each: event.Each(func(e ArrayEvent[int]) {
		inserted = append(inserted, e)
	})})
	ctx.Events.Listen(event.ListenOptions{Type: event.Remove, Each: event.Each(func(e ArrayEvent[int]) {
		removed = append(removed, e)
	})})

	arr.InsertAt(0, 5)
	arr.InsertAt(0, 5)
	items, _ := ctx.Cell.Get()
	assert.Equal(t, []int{5, 5}, items)

	arr.Remove(0)
	arr.Remove(0)
	assert.Zero(t, arr.Len())

	want := []ArrayEvent[int]{{Index: 0, Element: 5}, {Index: 0, Element: 5}}
	assert.Equal(t, want, inserted)
	assert.Equal(t, want, removed)
}
