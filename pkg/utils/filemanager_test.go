package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pnp", "vendors.go")

	require.NoError(t, WriteFileAtomic(path, []byte("package pnp\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "package pnp\n", string(got))
}

func TestWriteFileAtomic_Overwrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vendors.go")
	require.NoError(t, os.WriteFile(path, []byte("old content that is longer\n"), FilePerm))

	require.NoError(t, WriteFileAtomic(path, []byte("new\n")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestWriteFileAtomic_TargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "vendors.go")
	require.NoError(t, os.Mkdir(target, DirPerm))
	require.NoError(t, os.WriteFile(filepath.Join(target, "keep"), nil, FilePerm))

	err := WriteFileAtomic(target, []byte("x"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	assert.True(t, entries[0].IsDir())
}

func TestTempPath(t *testing.T) {
	a := TempPath(filepath.Join("pnp", "vendors.go"))
	b := TempPath(filepath.Join("pnp", "vendors.go"))

	assert.NotEqual(t, a, b)
	assert.Equal(t, "pnp", filepath.Dir(a))
	assert.True(t, strings.HasPrefix(filepath.Base(a), ".vendors.go."))
	assert.True(t, strings.HasSuffix(a, ".tmp"))
}
