package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/nagisham/syren"
	"github.com/nagisham/syren/webstorage"
)

// container is the surface shared by every container kind.
type container interface {
	Call(args ...any) any
	Cleanup()
}

// opened is a stored value attached to the container matching its shape.
type opened struct {
	key   string
	kind  string // "object", "array" or a scalar kind
	c     container
	array *syren.Storage[any]
}

// lookup opens key, failing when nothing is stored under it.
func (s *session) lookup(key string) (*opened, error) {
	kind, err := s.store.Kind(key)
	if errors.Is(err, webstorage.ErrNotFound) {
		return nil, fmt.Errorf("key %q not found", key)
	}
	if err != nil {
		return nil, err
	}
	return s.attach(key, kind), nil
}

// attach builds the container for key assuming the given JSON kind.
func (s *session) attach(key, kind string) *opened {
	o := &opened{key: key, kind: kind}
	switch kind {
	case "object":
		o.c = syren.NewSlice(
			syren.WithProvider[map[string]any](webstorage.NewProvider[map[string]any](s.store, key)),
			syren.WithLogger[map[string]any](s.logger),
		)
	case "array":
		o.array = syren.NewStorage(
			syren.WithProvider[[]any](webstorage.NewProvider[[]any](s.store, key)),
			syren.WithLogger[[]any](s.logger),
		)
		o.c = o.array
	default:
		o.c = syren.NewSignal(
			syren.WithProvider[any](webstorage.NewProvider[any](s.store, key)),
			syren.WithLogger[any](s.logger),
		)
	}
	return o
}

// selector converts a FIELD|INDEX argument for the container.
func (o *opened) selector(arg string) (any, error) {
	switch o.kind {
	case "object":
		return arg, nil
	case "array":
		i, err := strconv.Atoi(arg)
		if err != nil {
			return nil, fmt.Errorf("index %q of %q: not an integer", arg, o.key)
		}
		return i, nil
	default:
		return nil, fmt.Errorf("%q holds a %s, not an object or array", o.key, o.kind)
	}
}

// storage returns the array container or an error for other shapes.
func (o *opened) storage() (*syren.Storage[any], error) {
	if o.array == nil {
		return nil, fmt.Errorf("%q holds a %s, not an array", o.key, o.kind)
	}
	return o.array, nil
}

// parseValue decodes a JSON argument. Anything that is not JSON is taken as
// a plain string.
func parseValue(arg string) any {
	if !gjson.Valid(arg) {
		return arg
	}
	return gjson.Parse(arg).Value()
}

// kindOf classifies a decoded value the way Store.Kind classifies text.
func kindOf(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case nil:
		return "null"
	default:
		return "scalar"
	}
}
