package event

import (
	"fmt"
	"slices"

	"github.com/nagisham/syren/core"
	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/pipeline"
)

// Options configures an Emitter.
type Options struct {
	// Equal is the default equality for listeners of the Gated types that do
	// not set their own. Defaults to core.DefaultEqual.
	Equal core.EqualFunc

	// Gated lists the event types whose listeners get Equal by default. Other
	// types deliver every Fire unless a listener sets its own Equal.
	// Defaults to Change.
	Gated []string

	// Logger receives warnings about unknown listeners and recovered panics.
	// Defaults to NoOp.
	Logger logging.Logger

	// Observer receives delivery counters. Defaults to NopObserver.
	Observer Observer
}

// Emitter is a synchronous, typed publish/subscribe engine. It is owned by a
// single container and is not safe for concurrent use.
type Emitter struct {
	subs map[string]*subscription
	opts Options
}

type subscription struct {
	typ         string
	listeners   *pipeline.Pipeline[*delivery, *delivery, *delivery]
	registered  []*listener
	previous    any
	hasPrevious bool
}

type delivery struct {
	next   any
	old    any
	hasOld bool
}

// New creates an Emitter.
func New(optFns ...func(o *Options)) *Emitter {
	opts := Options{
		Equal:    core.DefaultEqual,
		Gated:    []string{Change},
		Logger:   logging.NoOpLogger{},
		Observer: NopObserver{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Equal == nil {
		opts.Equal = core.DefaultEqual
	}
	opts.Logger = logging.OrNoOp(opts.Logger)
	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	return &Emitter{subs: make(map[string]*subscription), opts: opts}
}

func (e *Emitter) subscription(typ string) *subscription {
	if sub, ok := e.subs[typ]; ok {
		return sub
	}

	sub := &subscription{typ: typ}
	sub.listeners = pipeline.New(func(o *pipeline.Options[*delivery]) {
		o.Logger = e.opts.Logger
		o.Middleware = func(p *pipeline.Processor[*delivery], d *delivery, api *pipeline.API) {
			defer e.recoverListener(typ, p.Name())
			p.Invoke(d, api)
		}
	})
	e.subs[typ] = sub

	return sub
}

// Fire delivers next to every listener of typ in registration order, passing
// the value fired before it as old. The subscription's previous value is
// updated before any listener runs, so a listener firing the same type again
// compares against next. Only listeners with an equality (their own, or the
// default for Gated types) can be skipped; meta events never are.
func (e *Emitter) Fire(typ string, next any) {
	sub := e.subscription(typ)
	d := &delivery{next: next}
	if !IsMeta(typ) {
		d.old, d.hasOld = sub.previous, sub.hasPrevious
		sub.previous, sub.hasPrevious = next, true
	}

	e.opts.Observer.Fired(typ)
	sub.listeners.Chain.Run(d)
}

// Forget drops the value last fired on typ, so the next Fire on it is
// delivered whatever its value.
func (e *Emitter) Forget(typ string) {
	if sub, ok := e.subs[typ]; ok {
		sub.previous, sub.hasPrevious = nil, false
	}
}

// Previous returns the last value fired on typ.
func (e *Emitter) Previous(typ string) (any, bool) {
	sub, ok := e.subs[typ]
	if !ok {
		return nil, false
	}
	return sub.previous, sub.hasPrevious
}

// Listen registers a listener and returns the Cleanup removing it. Unless
// opts.Type is itself a meta event, "listening:<Type>" is fired with a Replay
// payload before Listen returns.
func (e *Emitter) Listen(opts ListenOptions) core.Cleanup {
	sub := e.subscription(opts.Type)

	l := &listener{
		name:  opts.Name,
		typ:   opts.Type,
		sel:   opts.Select,
		equal: opts.Equal,
		each:  opts.Each,
		once:  opts.Once,
	}
	if l.name == "" {
		l.name = core.NewID()
	}
	if l.equal == nil && slices.Contains(e.opts.Gated, opts.Type) {
		l.equal = e.opts.Equal
	}

	proc := sub.listeners.Add(pipeline.AddOptions[*delivery]{
		Name: l.name,
		Handle: func(d *delivery, _ *pipeline.API) {
			e.invoke(l, d.next, d.old, d.hasOld)
		},
	})
	l.cancel = func() {
		if l.done {
			return
		}
		l.done = true
		sub.listeners.Remove(proc)
		sub.forget(l)
	}
	sub.registered = append(sub.registered, l)

	cleanup := func() {
		if l.done {
			e.opts.Logger.Warn("event engine: registered listener not found", "type", l.typ, "listener", l.name)
			return
		}
		l.cancel()
	}

	if !IsMeta(opts.Type) {
		e.Fire(Listening(opts.Type), Replay{em: e, sub: sub, l: l})
	}

	return cleanup
}

// Unlisten removes the first listener of typ registered under name.
func (e *Emitter) Unlisten(typ, name string) bool {
	if sub, ok := e.subs[typ]; ok {
		for _, l := range sub.registered {
			if l.name == name {
				l.cancel()
				return true
			}
		}
	}
	e.opts.Logger.Warn("event engine: registered listener not found", "type", typ, "listener", name)
	return false
}

// Listeners returns the number of listeners registered on typ.
func (e *Emitter) Listeners(typ string) int {
	sub, ok := e.subs[typ]
	if !ok {
		return 0
	}
	return sub.listeners.Len()
}

func (s *subscription) forget(l *listener) {
	for i, r := range s.registered {
		if r == l {
			s.registered = append(s.registered[:i:i], s.registered[i+1:]...)
			return
		}
	}
}

func (e *Emitter) invoke(l *listener, next, old any, hasOld bool) {
	if l.done {
		return
	}

	if l.sel != nil {
		if next != nil {
			next = l.sel(next)
		}
		if old != nil {
			old = l.sel(old)
		}
	}

	if l.equal != nil && hasOld && old != nil && l.equal(next, old) {
		e.opts.Observer.Skipped(l.typ)
		return
	}

	switch {
	case l.each != nil:
		e.opts.Observer.Delivered(l.typ)
		l.each(next)
	case l.once != nil:
		l.cancel()
		e.opts.Observer.Delivered(l.typ)
		l.once(next)
	default:
		e.opts.Logger.Error("event engine: no listener was provided", "type", l.typ, "listener", l.name)
	}
}

func (e *Emitter) recoverListener(typ, name string) {
	r := recover()
	if r == nil {
		return
	}

	e.opts.Observer.Recovered(typ)

	err, ok := r.(error)
	if !ok {
		err = fmt.Errorf("%v", r)
	}
	if sl, ok := e.opts.Logger.(logging.StackLogger); ok {
		sl.ErrorWithStack(err, "event engine: listener panicked", "type", typ, "listener", name)
		return
	}
	e.opts.Logger.Error("event engine: listener panicked", "type", typ, "listener", name, "error", err)
}
