package core

import "github.com/google/uuid"

// Cleanup releases whatever a registration acquired. Calling it more than
// once must be safe.
type Cleanup func()

// Combine returns a Cleanup running every non-nil cleanup in order.
func Combine(cleanups ...Cleanup) Cleanup {
	return func() {
		for _, c := range cleanups {
			if c != nil {
				c()
			}
		}
	}
}

// NewID returns a random unique identifier.
func NewID() string { return uuid.NewString() }
