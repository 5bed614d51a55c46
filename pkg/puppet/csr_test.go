// pkg/puppet/csr_test.go

package puppet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestValidateExtensionName(t *testing.T) {
	assert.NoError(t, ValidateExtensionName("pp_role"))
	assert.NoError(t, ValidateExtensionName("pp_authorization"))
	assert.Error(t, ValidateExtensionName("pp_made_up"))
	assert.Error(t, ValidateExtensionName("role"))
	assert.Error(t, ValidateExtensionName(""))
}

func TestValidateExtensionsRejectsUnknownKeys(t *testing.T) {
	err := ValidateExtensions(map[string]string{
		"pp_role":    "webserver",
		"pp_made_up": "nope",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pp_made_up")
}

func TestWriteCSRAttributes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "csr_attributes.yaml")

	err := WriteCSRAttributes(context.Background(), path, map[string]string{
		"pp_role":        "webserver",
		"pp_environment": "production",
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var got struct {
		ExtensionRequests map[string]string `yaml:"extension_requests"`
	}
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, "webserver", got.ExtensionRequests["pp_role"])
	assert.Equal(t, "production", got.ExtensionRequests["pp_environment"])
}

func TestWriteCSRAttributesInvalidKeyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "csr_attributes.yaml")

	err := WriteCSRAttributes(context.Background(), path, map[string]string{
		"pp_bogus": "value",
	})
	require.Error(t, err)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "no file may exist after a rejected write")

	// The temp file must not linger either.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWriteCSRAttributesReplacesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "csr_attributes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("extension_requests:\n  pp_role: old\n"), 0o644))

	err := WriteCSRAttributes(context.Background(), path, map[string]string{"pp_role": "new"})
	require.NoError(t, err)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "pp_role: new")
	assert.NotContains(t, string(raw), "old")
}
