package engine

import (
	"github.com/nagisham/syren/event"
	"github.com/nagisham/syren/logging"
	"github.com/nagisham/syren/pipeline"
	"github.com/nagisham/syren/state"
)

// Processor and listener names registered by this package.
const (
	EmitChangeOnSetName = "emit-change-on-set"
	ReplayOnListenName  = "run-listener-on-listening-change"
	DeleteOnCleanupName = "delete-state-on-cleanup"
)

// Context holds the handles shared by the engine behaviors of one container.
type Context[T any] struct {
	Cell   *state.Cell[T]
	Events *event.Emitter
	Logger logging.Logger
}

// Behavior contributes one reactive capability to a container.
type Behavior[T any] func(ctx Context[T])

// Apply runs behaviors in order. A nil logger is replaced by NoOp.
func Apply[T any](ctx Context[T], behaviors ...Behavior[T]) {
	ctx.Logger = logging.OrNoOp(ctx.Logger)
	for _, b := range behaviors {
		if b != nil {
			b(ctx)
		}
	}
}

// EmitChangeOnSet fires "change" after every successful write. It must be
// applied after the state behaviors so listeners observe the stored value.
func EmitChangeOnSet[T any]() Behavior[T] {
	return func(ctx Context[T]) {
		ctx.Cell.Setters().Add(pipeline.AddOptions[*state.SetContext[T]]{
			Name: EmitChangeOnSetName,
			Handle: func(s *state.SetContext[T], _ *pipeline.API) {
				ctx.Events.Fire(event.Change, s.State)
			},
		})
	}
}

// ReplayOnListen hands the current value to every new "change" listener.
// Nothing is delivered while the cell is empty.
func ReplayOnListen[T any]() Behavior[T] {
	return func(ctx Context[T]) {
		ctx.Events.Listen(event.ListenOptions{
			Type: event.Listening(event.Change),
			Name: ReplayOnListenName,
			Each: func(v any) {
				replay, ok := v.(event.Replay)
				if !ok {
					return
				}
				if current, found := ctx.Cell.Get(); found {
					replay.Deliver(current)
				}
			},
		})
	}
}

// DeleteOnCleanup resets the cell to its empty form when "cleanup" fires.
// The last "change" value is forgotten with it, so writing the value held
// before the cleanup notifies again.
func DeleteOnCleanup[T any]() Behavior[T] {
	return func(ctx Context[T]) {
		ctx.Events.Listen(event.ListenOptions{
			Type: event.Cleanup,
			Name: DeleteOnCleanupName,
			Each: func(any) {
				ctx.Events.Forget(event.Change)
				if ctx.Cell.Delete() {
					ctx.Logger.Debug("engine: state deleted on cleanup")
				}
			},
		})
	}
}
