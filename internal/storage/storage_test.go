package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================
// FileStore Tests
// ============================================

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Put("saved_products", []string{"101", "104"}))

	var ids []string
	ok, err := s.Get("saved_products", &ids)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"101", "104"}, ids)
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("saved_products", []string{"101"}))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)

	var ids []string
	ok, err := reopened.Get("saved_products", &ids)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"101"}, ids)
}

func TestFileStore_MissingKey(t *testing.T) {
	s, err := OpenFileStore(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)

	var out []string
	ok, err := s.Get("missing", &out)

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("key", "value"))

	require.NoError(t, s.Delete("key"))

	var out string
	ok, err := s.Get("key", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, s.Delete("key"))
}

func TestFileStore_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "store.json")
	s, err := OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Put("key", 1))

	reopened, err := OpenFileStore(path)
	require.NoError(t, err)
	var n int
	ok, err := reopened.Get("key", &n)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, n)
}

// ============================================
// SessionStore Tests
// ============================================

func TestSessionStore_RoundTrip(t *testing.T) {
	s := NewSessionStore()

	type carry struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	}
	require.NoError(t, s.Put("buy_now", carry{ProductID: "101", Quantity: 2}))

	var out carry
	ok, err := s.Get("buy_now", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "101", out.ProductID)

	s.Delete("buy_now")
	ok, err = s.Get("buy_now", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}
