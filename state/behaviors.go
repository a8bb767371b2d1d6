package state

import "github.com/nagisham/syren/pipeline"

// Processor names registered by the behaviors of this package.
const (
	GetFromProvider    = "get-state-from-provider"
	SetToProvider      = "set-state-to-provider"
	DeleteFromProvider = "delete-state-from-provider"
	GetDefault         = "get-default-state"
	SyncToProvider     = "sync-state-to-provider"
	DeleteSynced       = "delete-synced-state"
)

// Backed makes p the source of truth: reads that find a value stop there,
// writes and deletes go to p.
func Backed[T any](p Provider[T]) Behavior[T] {
	return func(c *Cell[T]) {
		c.Getters().Add(pipeline.AddOptions[*GetContext[T]]{
			Name: GetFromProvider,
			Handle: func(ctx *GetContext[T], api *pipeline.API) {
				if v, ok := p.Get(); ok {
					ctx.State, ctx.Found = v, true
					api.Abort()
				}
			},
		})
		c.Setters().Add(pipeline.AddOptions[*SetContext[T]]{
			Name:   SetToProvider,
			Handle: func(ctx *SetContext[T], _ *pipeline.API) { p.Set(ctx.State) },
		})
		c.Deleters().Add(pipeline.AddOptions[*DeleteContext]{
			Name: DeleteFromProvider,
			Handle: func(ctx *DeleteContext, _ *pipeline.API) {
				if p.Delete() {
					ctx.Deleted = true
				}
			},
		})
	}
}

// InMemory backs the cell with a fresh MemoryProvider.
func InMemory[T any]() Behavior[T] { return Backed[T](NewMemoryProvider[T]()) }

// Synced seeds the cell from p once and mirrors every later write and delete
// to p. Reads keep going to the behaviors registered before it, so Synced
// must follow a backing behavior.
func Synced[T any](p Provider[T]) Behavior[T] {
	return func(c *Cell[T]) {
		if v, ok := p.Get(); ok {
			c.Set(v)
		}

		c.Setters().Add(pipeline.AddOptions[*SetContext[T]]{
			Name:   SyncToProvider,
			Handle: func(ctx *SetContext[T], _ *pipeline.API) { p.Set(ctx.State) },
		})
		c.Deleters().Add(pipeline.AddOptions[*DeleteContext]{
			Name: DeleteSynced,
			Handle: func(ctx *DeleteContext, _ *pipeline.API) {
				if p.Delete() {
					ctx.Deleted = true
				}
			},
		})
	}
}

// Default resolves reads to value when no earlier processor found one.
func Default[T any](value T) Behavior[T] {
	return func(c *Cell[T]) {
		c.Getters().Add(pipeline.AddOptions[*GetContext[T]]{
			Name: GetDefault,
			Handle: func(ctx *GetContext[T], api *pipeline.API) {
				ctx.State, ctx.Found = value, true
				api.Abort()
			},
		})
	}
}

// Initial sets value once when the cell holds nothing yet.
func Initial[T any](value T) Behavior[T] {
	return func(c *Cell[T]) {
		if _, ok := c.Get(); !ok {
			c.Set(value)
		}
	}
}
