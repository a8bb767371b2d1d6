package core

import "reflect"

// EqualFunc reports whether next and old are equal. Listeners skip delivery
// when it returns true.
type EqualFunc func(next, old any) bool

// DefaultEqual uses == for common scalar types and reflect.DeepEqual for
// everything else (slices, maps, structs).
func DefaultEqual(next, old any) bool {
	switch nv := next.(type) {
	case nil:
		return old == nil
	case int:
		ov, ok := old.(int)
		return ok && nv == ov
	case int64:
		ov, ok := old.(int64)
		return ok && nv == ov
	case float64:
		ov, ok := old.(float64)
		return ok && nv == ov
	case string:
		ov, ok := old.(string)
		return ok && nv == ov
	case bool:
		ov, ok := old.(bool)
		return ok && nv == ov
	default:
		return reflect.DeepEqual(next, old)
	}
}

// EqualOf adapts a typed equality to an EqualFunc. Values that are not of
// type T are never equal.
func EqualOf[T any](eq func(next, old T) bool) EqualFunc {
	return func(next, old any) bool {
		n, ok := next.(T)
		if !ok {
			return false
		}
		o, ok := old.(T)
		if !ok {
			return false
		}
		return eq(n, o)
	}
}
