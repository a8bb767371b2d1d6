package webstorage

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/nagisham/syren/logging"
)

// Options configures a Store.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Store encodes values as JSON on top of a Backend.
type Store struct {
	backend Backend
	logger  logging.Logger
}

// New creates a store over backend.
func New(backend Backend, optFns ...func(o *Options)) *Store {
	opts := Options{Logger: logging.NoOpLogger{}}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{backend: backend, logger: logging.OrNoOp(opts.Logger)}
}

var (
	sessionOnce  sync.Once
	sessionStore *Store
)

// Session returns the process-lifetime in-memory store.
func Session() *Store {
	sessionOnce.Do(func() {
		sessionStore = New(NewMemoryBackend())
	})
	return sessionStore
}

// Local opens a store persisted as a JSON document at path.
func Local(path string, optFns ...func(o *Options)) (*Store, error) {
	backend, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	return New(backend, optFns...), nil
}

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

// Logger returns the store's logger.
func (s *Store) Logger() logging.Logger { return s.logger }

// Raw returns the stored text under key.
func (s *Store) Raw(key string) (string, error) { return s.backend.GetItem(key) }

// Get decodes the item under key into out. Text that is not valid JSON is
// copied verbatim when out is a *string or *any, and yields ErrNotJSON
// otherwise.
func (s *Store) Get(key string, out any) error {
	raw, err := s.backend.GetItem(key)
	if err != nil {
		return err
	}

	if !gjson.Valid(raw) {
		switch p := out.(type) {
		case *string:
			*p = raw
			return nil
		case *any:
			*p = raw
			return nil
		default:
			return fmt.Errorf("webstorage: get %q: %w", key, ErrNotJSON)
		}
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return fmt.Errorf("webstorage: decode %q: %w", key, err)
	}
	return nil
}

// Set encodes v as JSON and stores it under key.
func (s *Store) Set(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("webstorage: encode %q: %w", key, err)
	}
	return s.backend.SetItem(key, string(data))
}

// Remove deletes key and reports whether it existed.
func (s *Store) Remove(key string) (bool, error) { return s.backend.RemoveItem(key) }

// Has reports whether an item is stored under key.
func (s *Store) Has(key string) (bool, error) {
	_, err := s.backend.GetItem(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

// Keys returns every key in insertion order.
func (s *Store) Keys() ([]string, error) { return s.backend.Keys() }

// Len returns the number of items.
func (s *Store) Len() (int, error) { return s.backend.Length() }

// Clear removes every item.
func (s *Store) Clear() error { return s.backend.Clear() }

// Kind classifies the JSON value stored under key: "object", "array",
// "string", "number", "bool", "null" or "text" for non-JSON items.
func (s *Store) Kind(key string) (string, error) {
	raw, err := s.backend.GetItem(key)
	if err != nil {
		return "", err
	}
	if !gjson.Valid(raw) {
		return "text", nil
	}
	res := gjson.Parse(raw)
	switch {
	case res.IsObject():
		return "object", nil
	case res.IsArray():
		return "array", nil
	}
	switch res.Type {
	case gjson.True, gjson.False:
		return "bool", nil
	case gjson.String:
		return "string", nil
	case gjson.Number:
		return "number", nil
	default:
		return "null", nil
	}
}
