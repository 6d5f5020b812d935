package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/nestree/internal/nesting"
)

func openTemp(t *testing.T, content string) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if content != "" {
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	store, err := Open(path)
	require.NoError(t, err)
	return store
}

func TestOpenMissingFileUsesDefaults(t *testing.T) {
	store := openTemp(t, "")

	snap := store.Snapshot()
	assert.True(t, snap.Enabled)
	assert.Equal(t, DefaultExtensions, snap.Extensions)

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err), "opening must not create the file")
}

func TestOpenReadsFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    nesting.Config
	}{
		{
			name:    "both keys",
			content: "enabled: false\nextensions: [php, rb]\n",
			want:    nesting.Config{Enabled: false, Extensions: []string{"php", "rb"}},
		},
		{
			name:    "enabled omitted",
			content: "extensions: [php]\n",
			want:    nesting.Config{Enabled: true, Extensions: []string{"php"}},
		},
		{
			name:    "extensions omitted",
			content: "enabled: false\n",
			want:    nesting.Config{Enabled: false, Extensions: DefaultExtensions},
		},
		{
			name:    "explicitly empty",
			content: "extensions: []\n",
			want:    nesting.Config{Enabled: true, Extensions: []string{}},
		},
		{
			name:    "normalized",
			content: "extensions: [.PHP, ' rb ', php, '']\n",
			want:    nesting.Config{Enabled: true, Extensions: []string{"php", "rb"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := openTemp(t, tt.content)
			assert.Equal(t, tt.want, store.Snapshot())
		})
	}
}

func TestOpenMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("enabled: [not a bool\n"), 0644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestSnapshotIsACopy(t *testing.T) {
	store := openTemp(t, "extensions: [php]\n")

	snap := store.Snapshot()
	snap.Extensions[0] = "js"

	assert.Equal(t, []string{"php"}, store.Snapshot().Extensions)
}

func TestApplyPersistsAndNotifies(t *testing.T) {
	store := openTemp(t, "")

	var received []nesting.Config
	store.Subscribe(func(cfg nesting.Config) { received = append(received, cfg) })

	applied, err := store.Apply(nesting.Config{Enabled: true, Extensions: []string{"PHP", ".ts", "php"}})
	require.NoError(t, err)

	want := nesting.Config{Enabled: true, Extensions: []string{"php", "ts"}}
	assert.Equal(t, want, applied)
	assert.Equal(t, want, store.Snapshot())
	require.Len(t, received, 1)
	assert.Equal(t, want, received[0])

	reopened, err := Open(store.Path())
	require.NoError(t, err)
	assert.Equal(t, want, reopened.Snapshot())
}

func TestApplyFailureKeepsPreviousSnapshot(t *testing.T) {
	sub := filepath.Join(t.TempDir(), "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	store, err := Open(filepath.Join(sub, "settings.yaml"))
	require.NoError(t, err)

	// parent of the settings file becomes a regular file, so writes fail
	require.NoError(t, os.RemoveAll(sub))
	require.NoError(t, os.WriteFile(sub, []byte("x"), 0644))

	notified := false
	store.Subscribe(func(nesting.Config) { notified = true })

	_, err = store.Apply(nesting.Config{Enabled: false})
	assert.Error(t, err)
	assert.True(t, store.Snapshot().Enabled)
	assert.False(t, notified)
}

func TestUpdate(t *testing.T) {
	store := openTemp(t, "extensions: [php]\n")

	cfg, err := store.Update(func(c *nesting.Config) {
		c.Enabled = false
		c.Extensions = append(c.Extensions, "rb")
	})
	require.NoError(t, err)

	assert.Equal(t, nesting.Config{Enabled: false, Extensions: []string{"php", "rb"}}, cfg)
}

func TestReload(t *testing.T) {
	store := openTemp(t, "extensions: [php]\n")

	calls := 0
	store.Subscribe(func(nesting.Config) { calls++ })

	changed, err := store.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, 0, calls)

	require.NoError(t, os.WriteFile(store.Path(), []byte("enabled: false\nextensions: [php]\n"), 0644))
	changed, err = store.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, calls)
	assert.False(t, store.Snapshot().Enabled)
}

func TestSubscribeOrderAndUnsubscribe(t *testing.T) {
	store := openTemp(t, "")

	var order []string
	first := store.Subscribe(func(nesting.Config) { order = append(order, "first") })
	store.Subscribe(func(nesting.Config) { order = append(order, "second") })

	_, err := store.Apply(nesting.Config{Enabled: true, Extensions: []string{"php"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, order)

	store.Unsubscribe(first)
	store.Unsubscribe(uuid.New())
	order = nil

	_, err = store.Apply(nesting.Config{Enabled: false, Extensions: []string{"php"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"second"}, order)
}

func TestListenerMayReadStore(t *testing.T) {
	store := openTemp(t, "")

	var seen nesting.Config
	store.Subscribe(func(nesting.Config) { seen = store.Snapshot() })

	_, err := store.Apply(nesting.Config{Enabled: false, Extensions: []string{"rb"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"rb"}, seen.Extensions)
}

func TestStoreIsSnapshotSource(t *testing.T) {
	var _ nesting.SnapshotSource = (*Store)(nil)
}

func TestNormalize(t *testing.T) {
	got := Normalize(nesting.Config{Enabled: true, Extensions: []string{" PHP ", "..rb", "", "php", "Ts"}})
	assert.Equal(t, []string{"php", "rb", "ts"}, got.Extensions)
	assert.True(t, got.Enabled)
}
