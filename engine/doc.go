// Package engine wires a container's event emitter to its state cell.
//
// Engine behaviors are small functions that receive shared handles (the cell,
// the emitter and a logger) and register processors or listeners implementing
// one reactive capability. Containers apply them in order after their state
// and accessor behaviors.
//
// # Behaviors
//
//   - EmitChangeOnSet: every successful write fires "change" with the new value
//   - ReplayOnListen: a new "change" listener immediately receives the current
//     value when the cell holds one
//   - DeleteOnCleanup: firing "cleanup" deletes the cell's value
//
// # Array engine
//
// Array adds ordered-list operations over a slice-valued cell. Every mutation
// copies the backing slice before writing it back, so the cell's previous
// value never aliases the current one. Insertions and removals fire "insert"
// and "remove" with an ArrayEvent payload:
//
//	arr := engine.NewArray(ctx)
//	arr.Insert(10)
//	arr.Insert(20)
//	el, _ := arr.Remove(0) // 10, fires remove {Index: 0, Element: 10}
//
// # Concurrency
//
// Behaviors inherit the single-owner model of the cell and emitter: all calls
// are synchronous and must come from one goroutine.
package engine
