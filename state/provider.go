package state

// Provider is the persistence collaborator backing a Cell.
type Provider[T any] interface {
	// Get returns the stored value and whether one exists.
	Get() (T, bool)
	// Set stores value.
	Set(value T)
	// Delete removes the stored value and reports whether one existed.
	Delete() bool
}

// MemoryProvider keeps the value in memory. The zero value is empty and ready
// to use.
type MemoryProvider[T any] struct {
	value T
	ok    bool
}

var _ Provider[int] = (*MemoryProvider[int])(nil)

// NewMemoryProvider creates an empty MemoryProvider.
func NewMemoryProvider[T any]() *MemoryProvider[T] { return &MemoryProvider[T]{} }

// Get implements Provider.
func (m *MemoryProvider[T]) Get() (T, bool) { return m.value, m.ok }

// Set implements Provider.
func (m *MemoryProvider[T]) Set(value T) { m.value, m.ok = value, true }

// Delete implements Provider.
func (m *MemoryProvider[T]) Delete() bool {
	had := m.ok
	var zero T
	m.value, m.ok = zero, false
	return had
}

// FuncProvider adapts three functions to a Provider. Nil functions behave as
// an empty store.
type FuncProvider[T any] struct {
	GetFunc    func() (T, bool)
	SetFunc    func(T)
	DeleteFunc func() bool
}

// Get implements Provider.
func (f FuncProvider[T]) Get() (T, bool) {
	if f.GetFunc == nil {
		var zero T
		return zero, false
	}
	return f.GetFunc()
}

// Set implements Provider.
func (f FuncProvider[T]) Set(value T) {
	if f.SetFunc != nil {
		f.SetFunc(value)
	}
}

// Delete implements Provider.
func (f FuncProvider[T]) Delete() bool {
	if f.DeleteFunc == nil {
		return false
	}
	return f.DeleteFunc()
}
