package fileurl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfMissing(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "config", "config.yaml")

	written, err := WriteIfMissing(dst, []byte("a: 1\n"), 0o644)
	require.NoError(t, err)
	assert.True(t, written)
	assert.True(t, IsFile(dst))
	assert.True(t, IsDir(filepath.Dir(dst)))

	written, err = WriteIfMissing(dst, []byte("b: 2\n"), 0o644)
	require.NoError(t, err)
	assert.False(t, written)

	b, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(b))
}

func TestFirstExisting(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(second, []byte("x"), 0o644))

	got, ok := FirstExisting(filepath.Join(dir, "first.yaml"), dir, second)
	assert.True(t, ok)
	assert.Equal(t, second, got)

	_, ok = FirstExisting(filepath.Join(dir, "missing.yaml"))
	assert.False(t, ok)
}

func TestCreatePath(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "a", "b", "db.sqlite3")
	require.NoError(t, CreatePath(dst, os.ModePerm))
	assert.True(t, IsDir(filepath.Join(dir, "a", "b")))
	assert.False(t, IsExist(dst))
}
