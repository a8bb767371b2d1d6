// Package event implements the per-container publish/subscribe engine.
//
// An Emitter keeps one subscription per event type. Each subscription owns an
// ordered listener chain (a pipeline.Chain without abort) and the last value
// fired for that type. Delivery is synchronous and happens in registration
// order:
//
//	em := event.New()
//	cleanup := em.Listen(event.ListenOptions{
//	    Type: event.Change,
//	    Each: event.Each(func(v int) { fmt.Println(v) }),
//	})
//	em.Fire(event.Change, 1) // prints 1
//	em.Fire(event.Change, 1) // skipped, equal to the previous value
//	cleanup()
//
// Every Listen on a type T fires the meta event "listening:T" before it
// returns. Its payload is a Replay, which lets a behavior hand the current
// value straight to the new listener:
//
//	em.Listen(event.ListenOptions{
//	    Type: event.Listening(event.Change),
//	    Each: func(v any) { v.(event.Replay).Deliver(current()) },
//	})
//
// Failures inside listeners never reach the caller of Fire. A panic is
// recovered at the single-listener boundary and logged, and the remaining
// listeners still run.
package event
