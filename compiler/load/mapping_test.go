package load

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/modeldraw"
)

func TestFormatOf(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatOf("maps.yaml"))
	assert.Equal(t, FormatYAML, FormatOf("MAPS.YML"))
	assert.Equal(t, FormatJSON, FormatOf("maps.json"))
	assert.Equal(t, FormatJSON, FormatOf("maps"))
	assert.Equal(t, "yaml", FormatYAML.String())
	assert.Equal(t, "json", FormatJSON.String())
}

func TestLoadMappings(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "maps.json")
	yamlPath := filepath.Join(dir, "maps.yml")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`[
		{"name": "usr", "maps_to": "User"},
		{"name": "owner", "maps_to": "Customer"}
	]`), 0o644))
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
- name: usr
  maps_to: User
- name: owner
  maps_to: Customer
`), 0o644))

	fromJSON, err := LoadMappings(jsonPath)
	require.NoError(t, err)
	fromYAML, err := LoadMappings(yamlPath)
	require.NoError(t, err)

	require.Len(t, fromJSON, 2)
	assert.Equal(t, &Mapping{Name: "usr", MapsTo: "User"}, fromJSON[0])
	assert.Equal(t, &Mapping{Name: "owner", MapsTo: "Customer"}, fromJSON[1])
	assert.Equal(t, fromJSON, fromYAML)
}

func TestLoadMappings_EmptyPath(t *testing.T) {
	ms, err := LoadMappings("")
	require.NoError(t, err)
	assert.Nil(t, ms)
}

func TestLoadMappings_Errors(t *testing.T) {
	dir := t.TempDir()

	t.Run("unreadable", func(t *testing.T) {
		_, err := LoadMappings(filepath.Join(dir, "nope.json"))
		require.Error(t, err)
	})

	t.Run("malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"name": "usr"}`), 0o644))
		_, err := LoadMappings(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode json")
	})

	t.Run("missing keys", func(t *testing.T) {
		path := filepath.Join(dir, "partial.json")
		require.NoError(t, os.WriteFile(path, []byte(`[{"name": "usr"}, {"maps_to": "User"}]`), 0o644))
		_, err := LoadMappings(path)
		require.Error(t, err)
		assert.True(t, modeldraw.IsMissingKey(err))
		assert.Contains(t, err.Error(), `"maps_to" at mappings[0]`)
		assert.Contains(t, err.Error(), `"name" at mappings[1]`)
	})
}
