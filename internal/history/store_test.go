package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordRecent(t *testing.T) {
	store := openTestStore(t)

	require.NoError(t, store.Record(Run{
		URL:        "https://example.com/v/1",
		Status:     StatusDone,
		OutputPath: "/out/transcricao_abc.txt",
		Duration:   90 * time.Second,
	}))
	require.NoError(t, store.Record(Run{
		URL:    "https://example.com/v/2",
		Status: StatusFailed,
		Error:  "download failed",
	}))

	runs, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, "https://example.com/v/2", runs[0].URL)
	assert.Equal(t, StatusFailed, runs[0].Status)
	assert.Equal(t, "download failed", runs[0].Error)

	assert.Equal(t, StatusDone, runs[1].Status)
	assert.Equal(t, 90*time.Second, runs[1].Duration)
}

func TestStore_RecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.Record(Run{URL: "u", Status: StatusDone}))
	}

	runs, err := store.Recent(3)
	require.NoError(t, err)
	assert.Len(t, runs, 3)
}

func TestStore_RecentEmpty(t *testing.T) {
	store := openTestStore(t)

	runs, err := store.Recent(10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
