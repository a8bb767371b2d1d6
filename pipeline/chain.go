package pipeline

import "github.com/nagisham/syren/logging"

// API is shared by every processor of a single Run.
type API struct {
	aborted bool
}

// Abort stops the Run after the current processor returns.
func (a *API) Abort() { a.aborted = true }

// Aborted reports whether a processor of this Run called Abort.
func (a *API) Aborted() bool { return a.aborted }

// Handler processes the shared argument of one Run.
type Handler[A any] func(arg A, api *API)

// Processor is a handler registered on a Chain. The pointer is its identity.
type Processor[A any] struct {
	name    string
	handle  Handler[A]
	removed bool
}

// Name returns the name the processor was registered with, possibly empty.
func (p *Processor[A]) Name() string { return p.name }

// Middleware wraps the invocation of every processor. It must call
// p.Invoke(arg, api) for the processor to run.
type Middleware[A any] func(p *Processor[A], arg A, api *API)

// Invoke runs the processor's handler.
func (p *Processor[A]) Invoke(arg A, api *API) { p.handle(arg, api) }

// AddOptions describes a processor and where to place it. At most one of
// Before, After or Instead is honored, checked in that order: Instead, Before, After.
type AddOptions[A any] struct {
	Name   string
	Handle Handler[A]

	Before  string
	After   string
	Instead string
}

// Chain is an ordered list of processors. It is not safe for concurrent use.
type Chain[A any] struct {
	processors []*Processor[A]
	middleware Middleware[A]
	logger     logging.Logger
}

// NewChain creates an empty chain.
func NewChain[A any]() *Chain[A] {
	return &Chain[A]{logger: logging.NoOpLogger{}}
}

// Add registers a processor and returns it.
func (c *Chain[A]) Add(opts AddOptions[A]) *Processor[A] {
	p := &Processor[A]{name: opts.Name, handle: opts.Handle}
	if p.handle == nil {
		p.handle = func(A, *API) {}
	}

	switch {
	case opts.Instead != "":
		if i := c.indexOf(opts.Instead); i >= 0 {
			c.processors[i].removed = true
			c.processors[i] = p
			return p
		}
		c.logger.Debug("pipeline: patch target not found", "mode", "instead", "target", opts.Instead, "name", opts.Name)
	case opts.Before != "":
		if i := c.indexOf(opts.Before); i >= 0 {
			c.insert(i, p)
			return p
		}
		c.logger.Debug("pipeline: patch target not found", "mode", "before", "target", opts.Before, "name", opts.Name)
	case opts.After != "":
		if i := c.indexOf(opts.After); i >= 0 {
			c.insert(i+1, p)
			return p
		}
		c.logger.Debug("pipeline: patch target not found", "mode", "after", "target", opts.After, "name", opts.Name)
	}

	c.processors = append(c.processors, p)
	return p
}

// Use appends an unnamed handler.
func (c *Chain[A]) Use(h Handler[A]) *Processor[A] {
	return c.Add(AddOptions[A]{Handle: h})
}

// Remove unregisters p. It reports false when p is not (or no longer) part of the chain.
func (c *Chain[A]) Remove(p *Processor[A]) bool {
	for i, existing := range c.processors {
		if existing == p {
			p.removed = true
			c.processors = append(c.processors[:i:i], c.processors[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveNamed unregisters the first processor called name.
func (c *Chain[A]) RemoveNamed(name string) bool {
	if i := c.indexOf(name); i >= 0 {
		return c.Remove(c.processors[i])
	}
	return false
}

// Names lists processor names in execution order; unnamed processors appear as "".
func (c *Chain[A]) Names() []string {
	names := make([]string, len(c.processors))
	for i, p := range c.processors {
		names[i] = p.name
	}
	return names
}

// Len returns the number of registered processors.
func (c *Chain[A]) Len() int { return len(c.processors) }

// Run passes arg through a snapshot of the processors and reports whether
// the run was aborted. Processors removed while the run is in progress are
// skipped; processors added while it is in progress wait for the next run.
func (c *Chain[A]) Run(arg A) bool {
	api := &API{}
	snapshot := make([]*Processor[A], len(c.processors))
	copy(snapshot, c.processors)

	for _, p := range snapshot {
		if api.aborted {
			break
		}
		if p.removed {
			continue
		}
		if c.middleware != nil {
			c.middleware(p, arg, api)
		} else {
			p.handle(arg, api)
		}
	}

	return api.aborted
}

func (c *Chain[A]) indexOf(name string) int {
	for i, p := range c.processors {
		if p.name == name {
			return i
		}
	}
	return -1
}

func (c *Chain[A]) insert(i int, p *Processor[A]) {
	c.processors = append(c.processors, nil)
	copy(c.processors[i+1:], c.processors[i:])
	c.processors[i] = p
}
