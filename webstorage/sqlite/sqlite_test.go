package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nagisham/syren"
	"github.com/nagisham/syren/webstorage"
)

func openTemp(t *testing.T) (*Backend, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "syren.db")
	b, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })
	return b, path
}

func TestBackend_Contract(t *testing.T) {
	b, _ := openTemp(t)

	_, err := b.GetItem("a")
	assert.ErrorIs(t, err, webstorage.ErrNotFound)

	require.NoError(t, b.SetItem("a", "1"))
	require.NoError(t, b.SetItem("b", "2"))
	require.NoError(t, b.SetItem("a", "3"))

	v, err := b.GetItem("a")
	require.NoError(t, err)
	assert.Equal(t, "3", v)

	keys, err := b.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, keys)

	k, err := b.Key(1)
	require.NoError(t, err)
	assert.Equal(t, "b", k)
	_, err = b.Key(5)
	assert.ErrorIs(t, err, webstorage.ErrNotFound)

	removed, err := b.RemoveItem("a")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = b.RemoveItem("a")
	require.NoError(t, err)
	assert.False(t, removed)

	n, err := b.Length()
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, b.Clear())
	n, _ = b.Length()
	assert.Zero(t, n)
}

func TestBackend_Persists(t *testing.T) {
	b, path := openTemp(t)
	store := webstorage.New(b)

	list := syren.NewStorage(syren.WithProvider[[]string](webstorage.NewProvider[[]string](store, "todo")))
	list.Insert("write tests")
	list.Insert("ship")
	require.NoError(t, b.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer reopened.Close()

	again := syren.NewStorage(syren.WithProvider[[]string](webstorage.NewProvider[[]string](webstorage.New(reopened), "todo")))
	assert.Equal(t, []string{"write tests", "ship"}, again.Get())
}
