// Package syren provides reactive containers built from composable behaviors.
// Most applications interact with this package by:
//  1. Creating a container via NewSignal, NewSlice or NewStorage (optionally
//     backed by a persistent Provider)
//  2. Subscribing to "change" (OnChange or Listen), which immediately replays
//     the current value
//  3. Reading and writing through the typed methods or the overloaded Call
//
// Every container is the same Core assembled by Build from a Blueprint: state
// behaviors, accessor behaviors and engine behaviors applied in that order.
// Containers are synchronous and owned by one goroutine.
package syren

import (
	"github.com/nagisham/syren/accessor"
	"github.com/nagisham/syren/core"
	"github.com/nagisham/syren/engine"
	"github.com/nagisham/syren/event"
	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/state"
)

// Options configures a container.
type Options[T any] struct {
	// ID names the container in logs. Defaults to a random id.
	ID string

	// Initial is written once when the backing holds no value.
	Initial    T
	HasInitial bool

	// Provider replaces the default in-memory backing.
	Provider state.Provider[T]

	// Sync seeds the container from an external provider and mirrors every
	// write and delete to it.
	Sync state.Provider[T]

	// Equal gates change notifications. Defaults to core.DefaultEqual.
	Equal core.EqualFunc

	// Observer receives event delivery counters.
	Observer event.Observer

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// WithInitial sets the initial value.
func WithInitial[T any](v T) func(o *Options[T]) {
	return func(o *Options[T]) { o.Initial, o.HasInitial = v, true }
}

// WithProvider backs the container with p instead of memory.
func WithProvider[T any](p state.Provider[T]) func(o *Options[T]) {
	return func(o *Options[T]) { o.Provider = p }
}

// WithSync mirrors the container to p.
func WithSync[T any](p state.Provider[T]) func(o *Options[T]) {
	return func(o *Options[T]) { o.Sync = p }
}

// WithLogger sets the logger.
func WithLogger[T any](l logging.Logger) func(o *Options[T]) {
	return func(o *Options[T]) { o.Logger = l }
}

// WithEqual sets the change equality.
func WithEqual[T any](eq core.EqualFunc) func(o *Options[T]) {
	return func(o *Options[T]) { o.Equal = eq }
}

// WithObserver sets the event observer.
func WithObserver[T any](obs event.Observer) func(o *Options[T]) {
	return func(o *Options[T]) { o.Observer = obs }
}

// Blueprint lists the behaviors specific to one container kind. They are
// applied after the backing, sync and initial-value behaviors derived from
// Options.
type Blueprint[T any] struct {
	Kind      string
	State     []state.Behavior[T]
	Accessors []accessor.Behavior[T]
	Engine    []engine.Behavior[T]
}

// Core is the capability set shared by every container.
type Core[T any] struct {
	id     string
	kind   string
	cell   *state.Cell[T]
	events *event.Emitter
	access *accessor.Accessor[T]
	logger logging.Logger
}

// Build assembles a container core from bp and the options.
func Build[T any](bp Blueprint[T], optFns ...func(o *Options[T])) *Core[T] {
	opts := Options[T]{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.ID == "" {
		opts.ID = core.NewID()
	}
	logger := logging.OrNoOp(opts.Logger)

	behaviors := make([]state.Behavior[T], 0, len(bp.State)+3)
	if opts.Provider != nil {
		behaviors = append(behaviors, state.Backed(opts.Provider))
	} else {
		behaviors = append(behaviors, state.InMemory[T]())
	}
	if opts.Sync != nil {
		behaviors = append(behaviors, state.Synced(opts.Sync))
	}
	if opts.HasInitial {
		behaviors = append(behaviors, state.Initial(opts.Initial))
	}
	behaviors = append(behaviors, bp.State...)

	c := &Core[T]{
		id:     opts.ID,
		kind:   bp.Kind,
		logger: scoped(logger, "container", opts.ID),
	}
	c.cell = state.New(func(o *state.Options[T]) {
		o.Behaviors = behaviors
		o.Logger = scoped(logger, "state", opts.ID)
	})
	c.events = event.New(func(o *event.Options) {
		o.Equal = opts.Equal
		o.Observer = opts.Observer
		o.Logger = scoped(logger, "event", opts.ID)
	})
	c.access = accessor.New(c.cell, func(o *accessor.Options[T]) {
		o.Behaviors = bp.Accessors
		o.Logger = scoped(logger, "accessor", opts.ID)
	})

	engineBehaviors := append([]engine.Behavior[T]{
		engine.EmitChangeOnSet[T](),
		engine.ReplayOnListen[T](),
		engine.DeleteOnCleanup[T](),
	}, bp.Engine...)
	engine.Apply(c.engineContext(logger), engineBehaviors...)

	c.logger.Debug("container created", "kind", bp.Kind)

	return c
}

func (c *Core[T]) engineContext(logger logging.Logger) engine.Context[T] {
	return engine.Context[T]{Cell: c.cell, Events: c.events, Logger: scoped(logger, "engine", c.id)}
}

// scoped tags entries with the component and container when the logger
// supports it.
func scoped(l logging.Logger, component, id string) logging.Logger {
	if sl, ok := l.(*logging.SyrenLogger); ok {
		return sl.WithComponent(component).WithContainer(id)
	}
	return l
}

// ID returns the container id.
func (c *Core[T]) ID() string { return c.id }

// Kind returns the container kind ("signal", "slice", "storage").
func (c *Core[T]) Kind() string { return c.kind }

// Call dispatches an overloaded call; see accessor.Parse for the shapes.
func (c *Core[T]) Call(args ...any) any { return c.access.Call(args...) }

// Do dispatches an already parsed request.
func (c *Core[T]) Do(req accessor.Request) any { return c.access.Do(req) }

// Fire emits an event on the container.
func (c *Core[T]) Fire(typ string, value any) { c.events.Fire(typ, value) }

// Listen subscribes to an event of the container.
func (c *Core[T]) Listen(opts event.ListenOptions) core.Cleanup { return c.events.Listen(opts) }

// OnChange subscribes fn to "change". fn runs immediately with the current
// value when there is one.
func (c *Core[T]) OnChange(fn func(T)) core.Cleanup {
	return c.events.Listen(event.ListenOptions{Type: event.Change, Each: event.Each(fn)})
}

// Cleanup fires "cleanup", resetting the container to its empty form.
func (c *Core[T]) Cleanup() { c.events.Fire(event.Cleanup, nil) }

// Previous returns the value held before the last successful write.
func (c *Core[T]) Previous() (T, bool) { return c.cell.Previous() }

// Cell exposes the state cell.
func (c *Core[T]) Cell() *state.Cell[T] { return c.cell }

// Events exposes the emitter.
func (c *Core[T]) Events() *event.Emitter { return c.events }

// Accessor exposes the accessor pipeline.
func (c *Core[T]) Accessor() *accessor.Accessor[T] { return c.access }

// Logger returns the container's logger.
func (c *Core[T]) Logger() logging.Logger { return c.logger }

func typed[T any](v any) (T, bool) {
	t, ok := v.(T)
	return t, ok
}
