package derive

import (
	"github.com/nagisham/syren"
	"github.com/nagisham/syren/core"
	"github.com/nagisham/syren/event"
)

// Source is a container a derivation can follow. Every syren container
// satisfies it.
type Source interface {
	Listen(opts event.ListenOptions) core.Cleanup
	Call(args ...any) any
}

// Effect runs fn with the current values of deps whenever one of them
// changes and every dependency holds a value. The Cleanup returned by fn (if
// any) runs before the next run and on dispose. Replays received while the
// effect subscribes are coalesced into a single initial run.
func Effect(fn func(values []any) core.Cleanup, deps ...Source) core.Cleanup {
	var (
		cleanup     core.Cleanup
		subscribing = true
		pending     bool
		disposed    bool
	)

	run := func() {
		if disposed {
			return
		}
		if subscribing {
			pending = true
			return
		}
		if cleanup != nil {
			c := cleanup
			cleanup = nil
			c()
		}

		values := make([]any, len(deps))
		for i, d := range deps {
			values[i] = d.Call()
			if values[i] == nil {
				return
			}
		}
		cleanup = fn(values)
	}

	unsubscribe := make([]core.Cleanup, 0, len(deps))
	for _, d := range deps {
		unsubscribe = append(unsubscribe, d.Listen(event.ListenOptions{
			Type: event.Change,
			Each: func(any) { run() },
		}))
	}
	subscribing = false
	if pending {
		run()
	}

	return func() {
		if disposed {
			return
		}
		disposed = true
		core.Combine(unsubscribe...)()
		if cleanup != nil {
			cleanup()
			cleanup = nil
		}
	}
}

// Value returns values[i] as a T, or the zero T.
func Value[T any](values []any, i int) T {
	if i < 0 || i >= len(values) {
		var zero T
		return zero
	}
	v, _ := values[i].(T)
	return v
}

// Computed returns a signal holding fn applied to the current values of
// deps. It stops following deps when the signal is cleaned up.
func Computed[T any](fn func(values []any) T, deps ...Source) *syren.Signal[T] {
	sig := syren.NewSignal[T]()

	stop := Effect(func(values []any) core.Cleanup {
		sig.Set(fn(values))
		return nil
	}, deps...)

	sig.Listen(event.ListenOptions{Type: event.Cleanup, Once: func(any) { stop() }})

	return sig
}

// Lens reads one part of a whole value of type S and writes it back.
type Lens[S, V any] struct {
	// Get extracts the part from the whole value, reporting false when absent.
	Get func(whole S) (V, bool)
	// Set writes the part back into the source container.
	Set func(part V)
}

// KeyLens addresses one field of a slice.
func KeyLens[V any](s *syren.Slice[V], key string) Lens[map[string]V, V] {
	return Lens[map[string]V, V]{
		Get: func(m map[string]V) (V, bool) {
			v, ok := m[key]
			return v, ok
		},
		Set: func(v V) { s.SetKey(key, v) },
	}
}

// Select returns a signal bound to the part of src addressed by lens. Source
// changes that leave the part unchanged do not notify the signal, and writes
// to the signal go back through lens.Set. Firing cleanup on the signal
// removes both bindings.
func Select[S, V any](src Source, lens Lens[S, V], optFns ...func(o *syren.Options[V])) *syren.Signal[V] {
	project := func(whole any) any {
		s, ok := whole.(S)
		if !ok {
			return nil
		}
		v, ok := lens.Get(s)
		if !ok {
			return nil
		}
		return v
	}

	if initial := project(src.Call()); initial != nil {
		optFns = append([]func(o *syren.Options[V]){syren.WithInitial(initial.(V))}, optFns...)
	}
	sig := syren.NewSignal(optFns...)

	fromSource := false
	stopSource := src.Listen(event.ListenOptions{
		Type:   event.Change,
		Select: project,
		Each: func(part any) {
			v, ok := part.(V)
			if !ok {
				return
			}
			fromSource = true
			defer func() { fromSource = false }()
			sig.Set(v)
		},
	})

	binding := true
	stopSignal := sig.Listen(event.ListenOptions{
		Type: event.Change,
		Each: event.Each(func(v V) {
			if binding || fromSource {
				return
			}
			lens.Set(v)
		}),
	})
	binding = false

	sig.Listen(event.ListenOptions{Type: event.Cleanup, Once: func(any) {
		core.Combine(stopSource, stopSignal)()
	}})

	return sig
}

// Selector binds a signal to one field of a slice.
func Selector[V any](s *syren.Slice[V], key string, optFns ...func(o *syren.Options[V])) *syren.Signal[V] {
	return Select[map[string]V, V](s, KeyLens(s, key), optFns...)
}
