package webstorage

import (
	"errors"

	"github.com/nagisham/syren/state"
)

// Provider exposes one key of a Store as a state.Provider. Providers have no
// error channel: backend failures are logged and reported as a missing value.
type Provider[T any] struct {
	store *Store
	key   string
}

var _ state.Provider[int] = (*Provider[int])(nil)

// NewProvider binds key of store.
func NewProvider[T any](store *Store, key string) *Provider[T] {
	return &Provider[T]{store: store, key: key}
}

// Key returns the bound key.
func (p *Provider[T]) Key() string { return p.key }

// Get implements state.Provider.
func (p *Provider[T]) Get() (T, bool) {
	var v T
	if err := p.store.Get(p.key, &v); err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.store.logger.Error("webstorage: read failed", "key", p.key, "error", err)
		}
		var zero T
		return zero, false
	}
	return v, true
}

// Set implements state.Provider.
func (p *Provider[T]) Set(value T) {
	if err := p.store.Set(p.key, value); err != nil {
		p.store.logger.Error("webstorage: write failed", "key", p.key, "error", err)
	}
}

// Delete implements state.Provider.
func (p *Provider[T]) Delete() bool {
	removed, err := p.store.Remove(p.key)
	if err != nil {
		p.store.logger.Error("webstorage: remove failed", "key", p.key, "error", err)
	}
	return removed
}
