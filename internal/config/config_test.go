package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	c, err := Parse([]byte(`
packages:
  - yamlmeta/store
  - ./examples/...
include:
  - "yamlmeta/store.*"
exclude:
  - "*.Entity"
strict: true
`))
	require.NoError(t, err)

	assert.Equal(t, []string{"yamlmeta/store", "./examples/..."}, c.Packages)
	assert.Equal(t, DefaultOutput, c.Output)
	assert.Equal(t, FormatJSON, c.Format)
	assert.True(t, c.Strict)
	require.NoError(t, c.Validate())

	assert.True(t, c.Filter("yamlmeta/store.Order"))
	assert.False(t, c.Filter("yamlmeta/store.Entity"))
	assert.False(t, c.Filter("yamlmeta/examples/shapes.Shape"))
}

func TestParse_ExpandEnv(t *testing.T) {
	t.Setenv("YAMLMETA_OUT", "/tmp/models")

	c, err := Parse([]byte("packages: [a]\noutput: ${YAMLMETA_OUT}\n"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/models", c.Output)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("packages: [a]\nunknown: 1\n"))
	require.Error(t, err)
}

func TestParse_InvalidGlob(t *testing.T) {
	_, err := Parse([]byte("packages: [a]\ninclude: [\"[\"]\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "include")
}

func TestParse_UnsupportedFormat(t *testing.T) {
	_, err := Parse([]byte("packages: [a]\nformat: xml\n"))
	require.Error(t, err)
}

func TestValidate_NoPatterns(t *testing.T) {
	c, err := Parse([]byte("output: out\n"))
	require.NoError(t, err)

	assert.True(t, errors.Is(c.Validate(), ErrNoPatterns))
}

func TestFilter_NoGlobs(t *testing.T) {
	c := &Config{}
	require.NoError(t, c.Init())

	assert.True(t, c.Filter("anything.Goes"))
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yamlmeta.yml")
	require.NoError(t, os.WriteFile(path, []byte("packages: [yamlmeta/store]\n"), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"yamlmeta/store"}, c.Packages)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)
}
