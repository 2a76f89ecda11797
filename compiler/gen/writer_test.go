package gen

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriter_WriteFile(t *testing.T) {
	g, err := NewGraph(MustNewConfig(
		WithGenerator(stubGenerator{}),
		WithIDGenerator(&SequenceGenerator{}),
	), shop())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "nested", "dir", "erd.drawio")
	w := NewFileWriter(g)
	require.NoError(t, w.WriteFile(path))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	want, err := Render(g)
	require.NoError(t, err)
	assert.Equal(t, want, buf)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	m := w.Metrics()
	assert.Equal(t, int64(len(buf)), m.Bytes)
	assert.Equal(t, 3, m.Containers)
	assert.Equal(t, 7, m.Rows)
	assert.Equal(t, len(g.Edges), m.Edges)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file left behind")
}

func TestFileWriter_Overwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "erd.drawio")
	require.NoError(t, os.WriteFile(path, []byte("stale"), 0o600))

	g, err := NewGraph(MustNewConfig(WithGenerator(stubGenerator{})), shop())
	require.NoError(t, err)
	require.NoError(t, NewFileWriter(g).WriteFile(path))

	buf, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "stale", string(buf))
}

func TestFileWriter_RenderFailure(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "erd.drawio")

	g, err := NewGraph(MustNewConfig(WithGenerator(stubGenerator{err: errors.New("boom")})), shop())
	require.NoError(t, err)

	w := NewFileWriter(g)
	err = w.WriteFile(path)
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.Zero(t, w.Metrics())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
