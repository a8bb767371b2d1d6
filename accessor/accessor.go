package accessor

import (
	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/pipeline"
	"github.com/nagisham/syren/state"
)

// Context is shared by the processors of one call.
type Context[T any] struct {
	Request Request
	// State is the call result, set by the resolving processor.
	State any
}

// Behavior registers processors on an accessor.
type Behavior[T any] func(a *Accessor[T])

// Options configures an Accessor.
type Options[T any] struct {
	Behaviors []Behavior[T]

	// Logger receives warnings about unresolved calls. Defaults to NoOp.
	Logger logging.Logger
}

// Accessor dispatches parsed requests against a cell.
type Accessor[T any] struct {
	cell   *state.Cell[T]
	access *pipeline.Pipeline[Request, *Context[T], *Context[T]]
	logger logging.Logger
}

// New creates an accessor over cell and applies the configured behaviors in
// order.
func New[T any](cell *state.Cell[T], optFns ...func(o *Options[T])) *Accessor[T] {
	opts := Options[T]{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	logger := logging.OrNoOp(opts.Logger)

	a := &Accessor[T]{
		cell: cell,
		access: pipeline.NewMapped(
			func(r Request) *Context[T] { return &Context[T]{Request: r} },
			func(ctx *Context[T]) *Context[T] { return ctx },
			func(o *pipeline.Options[*Context[T]]) { o.Logger = logger },
		),
		logger: logger,
	}
	for _, b := range opts.Behaviors {
		if b != nil {
			b(a)
		}
	}

	return a
}

// Call parses args and dispatches them.
func (a *Accessor[T]) Call(args ...any) any { return a.Do(Parse(args...)) }

// Do dispatches req. When no processor resolves it a warning is logged and
// nil is returned.
func (a *Accessor[T]) Do(req Request) any {
	ctx, resolved := a.access.Try(req)
	if !resolved {
		a.logger.Warn("accessor: call not resolved", "request", req.String())
		return nil
	}
	return ctx.State
}

// Cell returns the state cell the accessor reads and writes.
func (a *Accessor[T]) Cell() *state.Cell[T] { return a.cell }

// Processors exposes the dispatch chain to behaviors.
func (a *Accessor[T]) Processors() *pipeline.Chain[*Context[T]] { return a.access.Chain }

// Logger returns the accessor's logger.
func (a *Accessor[T]) Logger() logging.Logger { return a.logger }
