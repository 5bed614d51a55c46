// pkg/puppet/autosign_test.go

package puppet

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureAutosignEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosign.conf")
	ctx := context.Background()

	require.NoError(t, EnsureAutosignEntry(ctx, path, "example.com"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "*.example.com\n", string(raw))

	// Reapplying must not duplicate the entry.
	require.NoError(t, EnsureAutosignEntry(ctx, path, "example.com"))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "*.example.com"))

	// A second domain appends without touching the first.
	require.NoError(t, EnsureAutosignEntry(ctx, path, "other.org"))
	raw, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "*.example.com\n*.other.org\n", string(raw))
}
