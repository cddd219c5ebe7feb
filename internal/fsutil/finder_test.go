package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindFiles(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "b.hcl"))
	touch(t, filepath.Join(root, "a.yaml"))
	touch(t, filepath.Join(root, "nested", "c.yml"))
	touch(t, filepath.Join(root, "notes.txt"))

	got, err := FindFiles(root, ".hcl", ".yaml", ".yml")
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(root, "a.yaml"),
		filepath.Join(root, "b.hcl"),
		filepath.Join(root, "nested", "c.yml"),
	}, got)
}

func TestFindFilesSingleFile(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "run.hcl")
	touch(t, file)

	got, err := FindFiles(file, ".hcl")
	require.NoError(t, err)
	require.Equal(t, []string{file}, got)

	_, err = FindFiles(file, ".yaml")
	require.Error(t, err)
}

func TestFindFilesMissing(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "absent"), ".hcl")
	require.ErrorIs(t, err, os.ErrNotExist)
}
