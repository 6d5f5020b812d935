package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrison/nestree/internal/models"
	"github.com/harrison/nestree/internal/nesting"
)

func newFs(t *testing.T, files ...string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, f := range files {
		if filepath.Ext(f) == "" && f[len(f)-1] == '/' {
			require.NoError(t, fs.MkdirAll(f, 0755))
			continue
		}
		require.NoError(t, afero.WriteFile(fs, f, []byte("<?php"), 0644))
	}
	return fs
}

func phpProvider() *nesting.Provider {
	return nesting.NewProvider(nesting.StaticSource{Enabled: true, Extensions: []string{"php"}})
}

func labels(entries []models.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Kind().String()+":"+e.Name())
	}
	return out
}

func TestViewNestsMatchingPairs(t *testing.T) {
	fs := newFs(t,
		"/app/User.php",
		"/app/User/Authenticatable.php",
		"/app/User/HasRoles.php",
		"/app/Role.php",
		"/app/Models/Post.php",
		"/app/README.md",
	)
	view := NewView(fs, "/app", phpProvider(), Options{FoldersFirst: true})

	children, err := view.Children(view.Root())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"directory:Models",
		"file:README.md",
		"file:Role.php",
		"composite:User.php",
	}, labels(children))

	composite := children[3]
	assert.Equal(t, filepath.Join("/app", "User.php"), composite.NavigationTarget())

	nested, err := view.Children(composite)
	require.NoError(t, err)
	assert.Equal(t, []string{"file:Authenticatable.php", "file:HasRoles.php"}, labels(nested))
}

func TestViewWithoutProviderShowsRawTree(t *testing.T) {
	fs := newFs(t, "/app/User.php", "/app/User/a.php")
	view := NewView(fs, "/app", nil, Options{})

	children, err := view.Children(view.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{"directory:User", "file:User.php"}, labels(children))
}

func TestViewNestsEveryLevel(t *testing.T) {
	fs := newFs(t,
		"/app/Models/User.php",
		"/app/Models/User/Concern.php",
	)
	view := NewView(fs, "/app", phpProvider(), Options{})

	top, err := view.Children(view.Root())
	require.NoError(t, err)
	require.Equal(t, []string{"directory:Models"}, labels(top))

	level, err := view.Children(top[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"composite:User.php"}, labels(level))
}

func TestViewFiltersHiddenAndExcluded(t *testing.T) {
	fs := newFs(t,
		"/app/.env",
		"/app/.git/HEAD",
		"/app/node_modules/x.js",
		"/app/index.php",
	)

	view := NewView(fs, "/app", phpProvider(), Options{ExcludeDirs: []string{"node_modules"}})
	children, err := view.Children(view.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{"file:index.php"}, labels(children))

	view = NewView(fs, "/app", phpProvider(), Options{ShowHidden: true, ExcludeDirs: []string{".git"}})
	children, err = view.Children(view.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{"file:.env", "file:index.php", "directory:node_modules"}, labels(children))
}

func TestViewOrdering(t *testing.T) {
	fs := newFs(t, "/app/b.txt", "/app/A.txt", "/app/c/", "/app/a/")

	view := NewView(fs, "/app", nil, Options{FoldersFirst: true})
	children, err := view.Children(view.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{"directory:a", "directory:c", "file:A.txt", "file:b.txt"}, labels(children))

	view = NewView(fs, "/app", nil, Options{})
	children, err = view.Children(view.Root())
	require.NoError(t, err)
	assert.Equal(t, []string{"directory:a", "file:A.txt", "file:b.txt", "directory:c"}, labels(children))
}

func TestViewChildrenAreLive(t *testing.T) {
	fs := newFs(t, "/app/User.php", "/app/User/a.php")
	view := NewView(fs, "/app", phpProvider(), Options{})

	children, err := view.Children(view.Root())
	require.NoError(t, err)
	require.Len(t, children, 1)
	composite := children[0]

	require.NoError(t, afero.WriteFile(fs, "/app/User/b.php", nil, 0644))

	nested, err := view.Children(composite)
	require.NoError(t, err)
	assert.Equal(t, []string{"file:a.php", "file:b.php"}, labels(nested))
}

func TestViewUnreadableDirectory(t *testing.T) {
	fs := newFs(t, "/app/User.php", "/app/User/a.php")
	view := NewView(fs, "/app", phpProvider(), Options{})

	children, err := view.Children(view.Root())
	require.NoError(t, err)

	require.NoError(t, fs.RemoveAll("/app/User"))
	_, err = view.Children(children[0])
	assert.Error(t, err)
}

func TestViewStat(t *testing.T) {
	fs := newFs(t, "/app/User.php")

	assert.NoError(t, NewView(fs, "/app", nil, Options{}).Stat())
	assert.Error(t, NewView(fs, "/missing", nil, Options{}).Stat())
	assert.Error(t, NewView(fs, "/app/User.php", nil, Options{}).Stat())
}

func TestViewOnDiskSymlinkIsOther(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "User"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Role.php"), nil, 0644))
	if err := os.Symlink(filepath.Join(dir, "User"), filepath.Join(dir, "User.php")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	view := NewView(afero.NewOsFs(), dir, phpProvider(), Options{})
	children, err := view.Children(view.Root())
	require.NoError(t, err)

	assert.Equal(t, []string{"file:Role.php", "directory:User", "other:User.php"}, labels(children))
	assert.Equal(t, "symlink", children[2].Presentation().Icon)
}
