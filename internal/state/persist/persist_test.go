package persist

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stores under test share one behavioral contract.
func stores(t *testing.T) map[string]SnapshotStore {
	t.Helper()

	sqlStore, err := NewSQLiteStore(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlStore.Close() })

	return map[string]SnapshotStore{
		"file":   NewFileStore(t.TempDir()),
		"sqlite": sqlStore,
	}
}

func TestSnapshotStore_Roundtrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			env := Envelope{Data: json.RawMessage(`{"collapsed":true}`), SchemaVersion: SchemaVersion}
			require.NoError(t, store.Save("uiprefs", env))

			got, err := store.Load("uiprefs")
			require.NoError(t, err)
			assert.JSONEq(t, `{"collapsed":true}`, string(got.Data))
			assert.Equal(t, SchemaVersion, got.SchemaVersion)
		})
	}
}

func TestSnapshotStore_MissingNamespace(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Load("identity")
			assert.ErrorIs(t, err, ErrNoSnapshot)
		})
	}
}

func TestSnapshotStore_SaveReplaces(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("workspace", Envelope{Data: json.RawMessage(`{"current":"w1"}`)}))
			require.NoError(t, store.Save("workspace", Envelope{Data: json.RawMessage(`{"current":"w2"}`)}))

			got, err := store.Load("workspace")
			require.NoError(t, err)
			assert.JSONEq(t, `{"current":"w2"}`, string(got.Data))
		})
	}
}

func TestSnapshotStore_NamespacesIndependent(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save("identity", Envelope{Data: json.RawMessage(`{"id":"u1"}`)}))

			_, err := store.Load("workspace")
			assert.ErrorIs(t, err, ErrNoSnapshot)
		})
	}
}

func TestFileStore_RejectsUnsafeNamespace(t *testing.T) {
	store := NewFileStore(t.TempDir())

	err := store.Save("../escape", Envelope{Data: json.RawMessage(`{}`)})
	assert.Error(t, err)

	_, err = store.Load("UPPER")
	assert.Error(t, err)
}

func TestFileStore_EmptyFileIsNoSnapshot(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity.json"), nil, 0o644))

	_, err := store.Load("identity")
	assert.ErrorIs(t, err, ErrNoSnapshot)
}
