package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStoreMissingFile(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "cards.json"), Options{})
	assert.ErrorIs(t, err, ErrDataUnavailable)
	require.NotNil(t, s)
	assert.Equal(t, 0, s.Catalog().Len())
	assert.Equal(t, int64(0), s.Reloads())
}

func TestStoreReloadKeepsPreviousSnapshot(t *testing.T) {
	path := writeFile(t, "cards.json", catalogJSON)
	s, err := NewStore(path, Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, s.Catalog().Len())
	assert.Equal(t, path, s.Path())

	before := s.Catalog()
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	assert.ErrorIs(t, s.Reload(), ErrDataUnavailable)
	assert.Same(t, before, s.Catalog())

	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "name": "Solo", "type": "event"}]`), 0o644))
	require.NoError(t, s.Reload())
	assert.Equal(t, 1, s.Catalog().Len())
	assert.Equal(t, int64(2), s.Reloads())
}

func TestStoreWatch(t *testing.T) {
	path := writeFile(t, "cards.json", catalogJSON)
	s, err := NewStore(path, Options{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher time to register before writing
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": "x", "name": "Solo", "type": "event"}]`), 0o644))

	assert.Eventually(t, func() bool {
		return s.Catalog().Len() == 1
	}, 5*time.Second, 50*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
