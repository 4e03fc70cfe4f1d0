package part

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

func writePartsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "parts.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFile_AddsNewPart(t *testing.T) {
	path := writePartsFile(t, `
vivado:
  - ["vivado", "-mode", "batch", "-source", "{script}"]
`)

	r := DefaultRegistry()
	require.NoError(t, LoadFile(r, path))

	got, err := r.Lookup("vivado")
	require.NoError(t, err)
	assert.Equal(t, domain.CommandTemplate{"vivado", "-mode", "batch", "-source", "{script}"}, got.Commands[0])
}

func TestLoadFile_ReplacesBuiltin(t *testing.T) {
	path := writePartsFile(t, `
script:
  - ["sh", "{file}"]
`)

	r := DefaultRegistry()
	require.NoError(t, LoadFile(r, path))

	got, err := r.Lookup("script")
	require.NoError(t, err)
	require.Len(t, got.Commands, 1)
	assert.Equal(t, domain.CommandTemplate{"sh", "{file}"}, got.Commands[0])

	// Untouched built-ins survive the merge.
	_, err = r.Lookup("fusesoc")
	assert.NoError(t, err)
}

func TestLoadFile_MultipleCommands_OrderPreserved(t *testing.T) {
	path := writePartsFile(t, `
petalinux:
  - ["petalinux-config", "--silentconfig"]
  - ["petalinux-build"]
  - ["petalinux-package", "--boot"]
`)

	r := NewRegistry()
	require.NoError(t, LoadFile(r, path))

	got, err := r.Lookup("petalinux")
	require.NoError(t, err)
	require.Len(t, got.Commands, 3)
	assert.Equal(t, "petalinux-config", got.Commands[0][0])
	assert.Equal(t, "petalinux-build", got.Commands[1][0])
	assert.Equal(t, "petalinux-package", got.Commands[2][0])
}

func TestLoadFile_Missing(t *testing.T) {
	err := LoadFile(NewRegistry(), filepath.Join(t.TempDir(), "nope.yml"))
	require.ErrorIs(t, err, boberrors.ErrPartsFileMissing)
}

func TestLoadFile_InvalidYAML(t *testing.T) {
	path := writePartsFile(t, "script: [unclosed")

	err := LoadFile(NewRegistry(), path)
	require.ErrorIs(t, err, boberrors.ErrPartsFileParse)
}
