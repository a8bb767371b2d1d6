package accessor

import (
	"fmt"
	"math"
	"strconv"
)

// Kind tags a Request.
type Kind int

const (
	// Invalid is a call shape no behavior understands.
	Invalid Kind = iota
	// Read reads the whole value.
	Read
	// ReadKey reads one field.
	ReadKey
	// ReadIndex reads one element.
	ReadIndex
	// Write merges or replaces the whole value.
	Write
	// WriteKey writes one field.
	WriteKey
	// WriteIndex writes or appends one element.
	WriteIndex
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case Read:
		return "read"
	case ReadKey:
		return "read-key"
	case ReadIndex:
		return "read-index"
	case Write:
		return "write"
	case WriteKey:
		return "write-key"
	case WriteIndex:
		return "write-index"
	default:
		return "invalid"
	}
}

// Request is a parsed container call. For single-argument reads Value keeps
// the raw argument so the single-value behavior can still treat the call as a
// write when no key or index behavior claims it.
type Request struct {
	Kind  Kind
	Key   string
	Index int
	Value any
}

// IndexOf returns the element index addressed by the request. Keys holding a
// base-10 integer count as indexes.
func (r Request) IndexOf() (int, bool) {
	switch r.Kind {
	case ReadIndex, WriteIndex:
		return r.Index, true
	case ReadKey, WriteKey:
		i, err := strconv.Atoi(r.Key)
		return i, err == nil
	default:
		return 0, false
	}
}

// String formats the request for logs.
func (r Request) String() string {
	switch r.Kind {
	case ReadKey:
		return fmt.Sprintf("%s(%q)", r.Kind, r.Key)
	case ReadIndex:
		return fmt.Sprintf("%s(%d)", r.Kind, r.Index)
	case WriteKey:
		return fmt.Sprintf("%s(%q, %v)", r.Kind, r.Key, r.Value)
	case WriteIndex:
		return fmt.Sprintf("%s(%d, %v)", r.Kind, r.Index, r.Value)
	case Write:
		return fmt.Sprintf("%s(%v)", r.Kind, r.Value)
	default:
		return r.Kind.String()
	}
}

// ReadAll builds a Read request.
func ReadAll() Request { return Request{Kind: Read} }

// Key builds a ReadKey request.
func Key(key string) Request { return Request{Kind: ReadKey, Key: key} }

// At builds a ReadIndex request.
func At(i int) Request { return Request{Kind: ReadIndex, Index: i} }

// Patch builds a Write request.
func Patch(value any) Request { return Request{Kind: Write, Value: value} }

// SetKey builds a WriteKey request.
func SetKey(key string, value any) Request { return Request{Kind: WriteKey, Key: key, Value: value} }

// SetAt builds a WriteIndex request.
func SetAt(i int, value any) Request { return Request{Kind: WriteIndex, Index: i, Value: value} }

// Parse turns raw call arguments into a Request:
//
//	()               Read
//	(nil)            Read
//	(string)         ReadKey, Value holds the string
//	(integer)        ReadIndex, Value holds the number
//	(other)          Write
//	(string, v)      WriteKey
//	(integer, v)     WriteIndex
//
// Anything else is Invalid.
func Parse(args ...any) Request {
	switch len(args) {
	case 0:
		return ReadAll()
	case 1:
		switch a := args[0].(type) {
		case nil:
			return ReadAll()
		case string:
			r := Key(a)
			r.Value = a
			return r
		default:
			if i, ok := toIndex(a); ok {
				r := At(i)
				r.Value = a
				return r
			}
			return Patch(a)
		}
	case 2:
		if k, ok := args[0].(string); ok {
			return SetKey(k, args[1])
		}
		if i, ok := toIndex(args[0]); ok {
			return SetAt(i, args[1])
		}
	}
	return Request{Kind: Invalid}
}

func toIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		// decoded JSON numbers
		if n == math.Trunc(n) && !math.IsInf(n, 0) {
			return int(n), true
		}
	}
	return 0, false
}
