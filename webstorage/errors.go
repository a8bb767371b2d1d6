package webstorage

import "fmt"

var (
	// ErrNotFound is returned when no item is stored under a key (or index).
	ErrNotFound = fmt.Errorf("webstorage: item not found")

	// ErrNotJSON is returned when a stored item is not valid JSON and the
	// requested type is not a string.
	ErrNotJSON = fmt.Errorf("webstorage: item is not valid JSON")
)
