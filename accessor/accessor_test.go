package accessor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagisham/syren/internal/testutil"
	"github.com/nagisham/syren/pipeline"
	"github.com/nagisham/syren/state"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		args []any
		want Request
	}{
		{"no args", nil, Request{Kind: Read}},
		{"nil", []any{nil}, Request{Kind: Read}},
		{"key", []any{"a"}, Request{Kind: ReadKey, Key: "a", Value: "a"}},
		{"index", []any{2}, Request{Kind: ReadIndex, Index: 2, Value: 2}},
		{"json number", []any{float64(1)}, Request{Kind: ReadIndex, Index: 1, Value: float64(1)}},
		{"patch", []any{map[string]int{"a": 1}}, Request{Kind: Write, Value: map[string]int{"a": 1}}},
		{"fraction is a patch", []any{1.5}, Request{Kind: Write, Value: 1.5}},
		{"write key", []any{"a", 9}, Request{Kind: WriteKey, Key: "a", Value: 9}},
		{"write index", []any{0, "x"}, Request{Kind: WriteIndex, Index: 0, Value: "x"}},
		{"bad pair", []any{true, 1}, Request{Kind: Invalid}},
		{"too many", []any{1, 2, 3}, Request{Kind: Invalid}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.args...))
		})
	}
}

func TestRequest_IndexOf(t *testing.T) {
	i, ok := Parse("3").IndexOf()
	assert.True(t, ok)
	assert.Equal(t, 3, i)

	_, ok = Parse("x").IndexOf()
	assert.False(t, ok)

	_, ok = Parse().IndexOf()
	assert.False(t, ok)
}

func newAccessor[T any](behaviors ...Behavior[T]) (*Accessor[T], *testutil.RecordingLogger) {
	logger := testutil.NewRecordingLogger()
	cell := state.New(func(o *state.Options[T]) { o.Behaviors = []state.Behavior[T]{state.InMemory[T]()} })
	return New(cell, func(o *Options[T]) {
		o.Behaviors = behaviors
		o.Logger = logger
	}), logger
}

func TestSingle_ReadWriteReplace(t *testing.T) {
	a, _ := newAccessor(Single[int](nil))

	assert.Nil(t, a.Call())
	assert.Equal(t, 7, a.Call(7), "a number with no index behavior is a write")
	assert.Equal(t, 7, a.Call())

	a.Call(func(cur int) int { return cur + 1 })
	assert.Equal(t, 8, a.Call())
	assert.Equal(t, 8, a.Call(nil), "nil is a read")
}

func TestSingle_StringSignal(t *testing.T) {
	a, _ := newAccessor(Single[string](nil))

	a.Call("hello")
	assert.Equal(t, "hello", a.Call())
}

func TestSingle_MergeMap(t *testing.T) {
	a, _ := newAccessor(Single[map[string]int](MergeMap[int]))

	a.Call(map[string]int{"a": 1})
	a.Call(map[string]int{"b": 2})
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, a.Call())

	a.Call(func(cur map[string]int) map[string]int { return map[string]int{"a": cur["a"] * 10} })
	assert.Equal(t, map[string]int{"a": 10, "b": 2}, a.Call())
}

func TestSingle_UnresolvedWarns(t *testing.T) {
	a, logger := newAccessor(Single[int](nil))

	assert.Nil(t, a.Call("not an int"))
	assert.Nil(t, a.Call(1, 2, 3))

	warns := logger.Entries("WARN")
	require.Len(t, warns, 2)
	assert.Equal(t, "accessor: call not resolved", warns[0].Msg)
	assert.Equal(t, `read-key("not an int")`, warns[0].Fields["request"])
}

func TestAccessor_CustomProcessorSeesRequest(t *testing.T) {
	var seen []Request
	a, logger := newAccessor(Single[int](nil), func(acc *Accessor[int]) {
		acc.Processors().Add(pipeline.AddOptions[*Context[int]]{
			Name:   "audit",
			Before: GetSingleHandler,
			Handle: func(ctx *Context[int], _ *pipeline.API) { seen = append(seen, ctx.Request) },
		})
	})

	a.Call(3)
	assert.Equal(t, 3, a.Do(ReadAll()))

	require.Len(t, seen, 2)
	assert.Equal(t, Request{Kind: ReadIndex, Index: 3, Value: 3}, seen[0])
	assert.Equal(t, ReadAll(), seen[1])
	assert.Empty(t, logger.Entries("WARN"))
}

func TestKeyValue(t *testing.T) {
	a, _ := newAccessor(Single[map[string]int](MergeMap[int]), KeyValue[int]())
	assert.Equal(t, []string{GetKeyHandler, GetSingleHandler, SetKeyHandler, SetSingleHandler}, a.Processors().Names())

	a.Call(map[string]int{"a": 1, "b": 2})
	assert.Equal(t, 1, a.Call("a"))
	assert.Nil(t, a.Call("missing"))

	a.Call("a", 9)
	assert.Equal(t, map[string]int{"a": 9, "b": 2}, a.Call())
}

func TestKeyValue_TypeMismatch(t *testing.T) {
	a, logger := newAccessor(Single[map[string]int](MergeMap[int]), KeyValue[int]())
	a.Call(map[string]int{"a": 1})

	a.Call("a", "nine")

	assert.Equal(t, map[string]int{"a": 1}, a.Call())
	assert.Equal(t, []string{"accessor: value type mismatch"}, logger.Messages("WARN"))
}

func TestIndex(t *testing.T) {
	a, logger := newAccessor(Single[[]string](nil), Index[string]())
	a.Call([]string{"a", "b"})

	assert.Equal(t, "a", a.Call(0))
	assert.Equal(t, "b", a.Call("1"))
	assert.Nil(t, a.Call(5))

	a.Call(0, "z")
	assert.Equal(t, []string{"z", "b"}, a.Call())

	a.Call(7, "c")
	assert.Equal(t, []string{"z", "b", "c"}, a.Call())

	a.Call(-1, "neg")
	assert.Equal(t, []string{"z", "b", "c"}, a.Call())
	assert.Equal(t, []string{"accessor: invalid index"}, logger.Messages("WARN"))
}

func TestIndex_WriteCopiesBackingArray(t *testing.T) {
	a, _ := newAccessor(Single[[]int](nil), Index[int]())
	original := []int{1, 2, 3}
	a.Call(original)

	a.Call(1, 20)

	assert.Equal(t, []int{1, 2, 3}, original)
	prev, ok := a.Cell().Previous()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 3}, prev)
}
