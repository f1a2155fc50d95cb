package filestorage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveReaderAndDelete(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	storage, err := NewLocalStorage(dir)
	require.NoError(t, err)

	path, err := storage.SaveReader("students.csv", strings.NewReader("student_id\nSTU001\n"))
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, ".csv", filepath.Ext(path))
	assert.NotEqual(t, "students.csv", filepath.Base(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "student_id\nSTU001\n", string(content))

	require.NoError(t, storage.DeleteFile(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// deleting again is a no-op
	assert.NoError(t, storage.DeleteFile(path))
}

func TestSaveReaderNamesAreUnique(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	a, err := storage.SaveReader("a.csv", strings.NewReader("x"))
	require.NoError(t, err)
	b, err := storage.SaveReader("a.csv", strings.NewReader("y"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestSaveFileWithoutHeader(t *testing.T) {
	storage, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = storage.SaveFile(nil)
	assert.Error(t, err)
}
