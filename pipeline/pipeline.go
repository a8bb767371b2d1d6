package pipeline

import "github.com/nagisham/syren/logging"

// Options configures a Pipeline.
type Options[A any] struct {
	// Middleware wraps every processor invocation. Nil calls processors directly.
	Middleware Middleware[A]

	// Logger receives debug entries about patch targets that were not found.
	// Defaults to NoOp.
	Logger logging.Logger
}

// Pipeline couples a Chain with the mappers turning call parameters into the
// shared argument (request) and the argument into the call result (response).
type Pipeline[P, A, R any] struct {
	*Chain[A]

	request  func(P) A
	response func(A) R
}

// New creates a pipeline whose parameter, argument and result are the same value.
func New[A any](optFns ...func(o *Options[A])) *Pipeline[A, A, A] {
	identity := func(a A) A { return a }
	return NewMapped(identity, identity, optFns...)
}

// NewMapped creates a pipeline with explicit request and response mappers.
// A nil mapper falls back to a type assertion, which panics when P and A (or
// A and R) differ.
func NewMapped[P, A, R any](request func(P) A, response func(A) R, optFns ...func(o *Options[A])) *Pipeline[P, A, R] {
	opts := Options[A]{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}

	if request == nil {
		request = func(p P) A { return any(p).(A) }
	}
	if response == nil {
		response = func(a A) R { return any(a).(R) }
	}

	chain := NewChain[A]()
	chain.middleware = opts.Middleware
	chain.logger = logging.OrNoOp(opts.Logger)

	return &Pipeline[P, A, R]{Chain: chain, request: request, response: response}
}

// Run builds the argument from params, runs every processor until one aborts
// and maps the argument to the result. The response mapper runs whether or
// not the chain was aborted.
func (p *Pipeline[P, A, R]) Run(params P) R {
	arg := p.request(params)
	p.Chain.Run(arg)
	return p.response(arg)
}

// Try is Run that also reports whether a processor aborted the chain.
func (p *Pipeline[P, A, R]) Try(params P) (R, bool) {
	arg := p.request(params)
	aborted := p.Chain.Run(arg)
	return p.response(arg), aborted
}
