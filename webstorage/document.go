package webstorage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// DocumentBackend keeps every item as a string member of one JSON object.
// Keys are addressed through escaped gjson/sjson paths, so any key text is
// allowed. When a file path is configured the document is loaded on open and
// rewritten after every mutation.
type DocumentBackend struct {
	mu   sync.RWMutex
	doc  string
	path string
}

var _ Backend = (*DocumentBackend)(nil)

// NewDocumentBackend returns an empty, memory-only document backend.
func NewDocumentBackend() *DocumentBackend {
	return &DocumentBackend{doc: "{}"}
}

// OpenDocument loads (or creates on first write) the JSON document at path.
func OpenDocument(path string) (*DocumentBackend, error) {
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &DocumentBackend{doc: "{}", path: path}, nil
	case err != nil:
		return nil, fmt.Errorf("webstorage: read %s: %w", path, err)
	}

	doc := strings.TrimSpace(string(data))
	if doc == "" {
		doc = "{}"
	}
	if !gjson.Valid(doc) || !gjson.Parse(doc).IsObject() {
		return nil, fmt.Errorf("webstorage: %s: %w", path, ErrNotJSON)
	}

	return &DocumentBackend{doc: doc, path: path}, nil
}

// Document returns the current JSON document.
func (d *DocumentBackend) Document() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.doc
}

// GetItem implements Backend.
func (d *DocumentBackend) GetItem(key string) (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	res := gjson.Get(d.doc, gjson.Escape(key))
	if !res.Exists() {
		return "", ErrNotFound
	}
	return res.String(), nil
}

// SetItem implements Backend.
func (d *DocumentBackend) SetItem(key, value string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	doc, err := sjson.Set(d.doc, gjson.Escape(key), value)
	if err != nil {
		return fmt.Errorf("webstorage: set %q: %w", key, err)
	}
	return d.commitLocked(doc)
}

// RemoveItem implements Backend.
func (d *DocumentBackend) RemoveItem(key string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	path := gjson.Escape(key)
	if !gjson.Get(d.doc, path).Exists() {
		return false, nil
	}
	doc, err := sjson.Delete(d.doc, path)
	if err != nil {
		return false, fmt.Errorf("webstorage: remove %q: %w", key, err)
	}
	return true, d.commitLocked(doc)
}

// Key implements Backend.
func (d *DocumentBackend) Key(i int) (string, error) {
	keys, _ := d.Keys()
	if i < 0 || i >= len(keys) {
		return "", ErrNotFound
	}
	return keys[i], nil
}

// Keys implements Backend.
func (d *DocumentBackend) Keys() ([]string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	var keys []string
	gjson.Parse(d.doc).ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys, nil
}

// Length implements Backend.
func (d *DocumentBackend) Length() (int, error) {
	keys, _ := d.Keys()
	return len(keys), nil
}

// Clear implements Backend.
func (d *DocumentBackend) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.commitLocked("{}")
}

// commitLocked swaps in doc and persists it; caller must hold the write lock.
func (d *DocumentBackend) commitLocked(doc string) error {
	if d.path != "" {
		if err := writeFileAtomic(d.path, pretty.Pretty([]byte(doc))); err != nil {
			return fmt.Errorf("webstorage: write %s: %w", d.path, err)
		}
	}
	d.doc = doc
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}
