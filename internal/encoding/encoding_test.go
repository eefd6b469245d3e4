package encoding

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile_CreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "deeper", "Rex.jpg")

	require.NoError(t, WriteFile(path, []byte("img"), 0644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
	assert.True(t, DirExists(filepath.Join(dir, "nested", "deeper")))
}

func TestDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0600))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, DirExists(filepath.Join(dir, "missing")))
}

func TestParseJSON(t *testing.T) {
	type record struct {
		Title string `json:"title"`
	}

	got, err := ParseJSON[[]record]([]byte(`[{"title":"Rex"}]`))
	require.NoError(t, err)
	require.Len(t, *got, 1)
	assert.Equal(t, "Rex", (*got)[0].Title)

	_, err = ParseJSON[[]record]([]byte(`{"title":"Rex"}`))
	assert.Error(t, err)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, WriteJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
