package state

import (
	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/pipeline"
)

// GetContext is shared by the processors of one Get. A processor that
// resolves the value sets State and Found and aborts.
type GetContext[T any] struct {
	State T
	Found bool
}

// SetContext is shared by the processors of one Set.
type SetContext[T any] struct {
	State T
}

// DeleteContext is shared by the processors of one Delete.
type DeleteContext struct {
	Deleted bool
}

// Behavior registers processors on a cell.
type Behavior[T any] func(c *Cell[T])

// Options configures a Cell.
type Options[T any] struct {
	// Behaviors are applied in order by New.
	Behaviors []Behavior[T]

	// Logger is handed to the cell's pipelines. Defaults to NoOp.
	Logger logging.Logger
}

// Cell holds one container's value through its get, set and delete pipelines.
type Cell[T any] struct {
	get *pipeline.Pipeline[*GetContext[T], *GetContext[T], *GetContext[T]]
	set *pipeline.Pipeline[*SetContext[T], *SetContext[T], *SetContext[T]]
	del *pipeline.Pipeline[*DeleteContext, *DeleteContext, *DeleteContext]

	previous    T
	hasPrevious bool

	logger logging.Logger
}

// New creates a cell and applies the configured behaviors.
func New[T any](optFns ...func(o *Options[T])) *Cell[T] {
	opts := Options[T]{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	c := &Cell[T]{
		get:    pipeline.New(func(o *pipeline.Options[*GetContext[T]]) { o.Logger = logger }),
		set:    pipeline.New(func(o *pipeline.Options[*SetContext[T]]) { o.Logger = logger }),
		del:    pipeline.New(func(o *pipeline.Options[*DeleteContext]) { o.Logger = logger }),
		logger: logger,
	}
	c.Apply(opts.Behaviors...)

	return c
}

// Apply registers additional behaviors.
func (c *Cell[T]) Apply(behaviors ...Behavior[T]) {
	for _, b := range behaviors {
		if b != nil {
			b(c)
		}
	}
}

// Get returns the current value and whether any processor resolved one.
func (c *Cell[T]) Get() (T, bool) {
	ctx := c.get.Run(&GetContext[T]{})
	return ctx.State, ctx.Found
}

// Set runs the set pipeline with next. The value held before becomes the
// previous value unless a processor aborted the set, which counts as a
// rejected write.
func (c *Cell[T]) Set(next T) bool {
	old, found := c.Get()

	prev, hadPrev := c.previous, c.hasPrevious
	c.previous, c.hasPrevious = old, found

	if _, aborted := c.set.Try(&SetContext[T]{State: next}); aborted {
		c.previous, c.hasPrevious = prev, hadPrev
		return false
	}
	return true
}

// Delete runs the delete pipeline and reports whether a value was removed.
// The previous value is left untouched.
func (c *Cell[T]) Delete() bool {
	return c.del.Run(&DeleteContext{}).Deleted
}

// Previous returns the value held immediately before the last successful Set.
// The flag is false before the first Set or when the cell was empty then.
func (c *Cell[T]) Previous() (T, bool) { return c.previous, c.hasPrevious }

// Getters exposes the get pipeline to behaviors.
func (c *Cell[T]) Getters() *pipeline.Chain[*GetContext[T]] { return c.get.Chain }

// Setters exposes the set pipeline to behaviors.
func (c *Cell[T]) Setters() *pipeline.Chain[*SetContext[T]] { return c.set.Chain }

// Deleters exposes the delete pipeline to behaviors.
func (c *Cell[T]) Deleters() *pipeline.Chain[*DeleteContext] { return c.del.Chain }
