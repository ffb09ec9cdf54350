package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/xlsdeid/pkg/deid"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "xlsdeid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
identifying_strings: [name, dob, ssn]
sheet: Patients
values:
  case_insensitive: true
  canonical_numbers: false
preview_rows: 5
debug: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.Debug)

	opts := cfg.Options()
	assert.Equal(t, "Patients", opts.Sheet)
	assert.Equal(t, []string{"name", "dob", "ssn"}, opts.InitialIdentifyingStrings())
	assert.True(t, opts.CaseInsensitiveValues)
	assert.False(t, opts.ShouldCanonicalizeNumbers())
	assert.Equal(t, 5, opts.PreviewLimit())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	opts := cfg.Options()
	assert.Equal(t, deid.DefaultIdentifyingStrings, opts.InitialIdentifyingStrings())
	assert.True(t, opts.ShouldCanonicalizeNumbers())
	assert.Equal(t, deid.DefaultPreviewRows, opts.PreviewLimit())

	cfg, err = Load(writeConfig(t, "sheet: Data\n"))
	require.NoError(t, err)
	assert.Nil(t, cfg.IdentifyingStrings)
	assert.True(t, cfg.Options().ShouldCanonicalizeNumbers())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "identifying_strings: {"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "preview_rows: -1\n"))
	assert.Error(t, err)
}
