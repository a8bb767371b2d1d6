package webstorage

// Backend stores raw string items.
type Backend interface {
	// GetItem returns the item stored under key or ErrNotFound.
	GetItem(key string) (string, error)
	// SetItem stores (or overwrites) the item under key.
	SetItem(key, value string) error
	// RemoveItem deletes key and reports whether it existed.
	RemoveItem(key string) (bool, error)
	// Key returns the i-th key in insertion order or ErrNotFound.
	Key(i int) (string, error)
	// Keys returns every key in insertion order.
	Keys() ([]string, error)
	// Length returns the number of items.
	Length() (int, error)
	// Clear removes every item.
	Clear() error
}
