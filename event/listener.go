package event

import (
	"strings"

	"github.com/nagisham/syren/core"
)

// Well known event types fired by containers.
const (
	Change  = "change"
	Cleanup = "cleanup"
	Insert  = "insert"
	Remove  = "remove"
)

// ListeningPrefix marks meta events fired when a listener registers.
const ListeningPrefix = "listening:"

// Listening returns the meta event type fired by Listen for typ.
func Listening(typ string) string { return ListeningPrefix + typ }

// IsMeta reports whether typ is a listening meta event.
func IsMeta(typ string) bool { return strings.HasPrefix(typ, ListeningPrefix) }

// ListenOptions describes one listener. Exactly one of Each or Once should be
// set; when both are nil the registration is kept but deliveries are dropped
// with an error log.
type ListenOptions struct {
	Type string

	// Name identifies the listener in logs and for Unlisten. A random
	// name is generated when empty.
	Name string

	// Select projects the fired value before comparison and delivery.
	Select func(any) any

	// Equal overrides the emitter's equality for this listener.
	Equal core.EqualFunc

	// Each runs on every delivery.
	Each func(value any)

	// Once runs on the first delivery only; the listener is removed before
	// the callback runs.
	Once func(value any)
}

// Each adapts a typed callback. A nil value (or one of another type) is
// delivered as the zero T.
func Each[T any](fn func(T)) func(any) {
	return func(v any) {
		t, _ := v.(T)
		fn(t)
	}
}

// Once is an alias of Each that reads better in ListenOptions.Once.
func Once[T any](fn func(T)) func(any) { return Each(fn) }

// Selecting adapts a typed projection for ListenOptions.Select.
func Selecting[T, S any](fn func(T) S) func(any) any {
	return func(v any) any {
		t, ok := v.(T)
		if !ok {
			return nil
		}
		return fn(t)
	}
}

type listener struct {
	name   string
	typ    string
	sel    func(any) any
	equal  core.EqualFunc
	each   func(any)
	once   func(any)
	done   bool
	cancel core.Cleanup
}

// Replay is the payload of a listening meta event. Deliver hands a value to
// the listener that just registered, bypassing the equality gate.
type Replay struct {
	em  *Emitter
	sub *subscription
	l   *listener
}

// Type returns the event type the new listener registered for.
func (r Replay) Type() string { return r.l.typ }

// Name returns the new listener's name.
func (r Replay) Name() string { return r.l.name }

// Deliver invokes the new listener with value. When nothing was fired on the
// type yet, value also becomes the subscription's previous value so that an
// identical follow-up Fire does not notify again.
func (r Replay) Deliver(value any) {
	if r.l == nil || r.l.done {
		return
	}
	if !r.sub.hasPrevious {
		r.sub.previous, r.sub.hasPrevious = value, true
	}
	defer r.em.recoverListener(r.l.typ, r.l.name)
	r.em.invoke(r.l, value, nil, false)
}
