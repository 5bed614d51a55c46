// pkg/pb_err/util_test.go

package pb_err

import (
	"testing"

	cerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, GetExitCode(nil))
	assert.Equal(t, ExitSystem, GetExitCode(cerr.New("disk full")))
	assert.Equal(t, ExitValidation, GetExitCode(NewValidationError(cerr.New("bad input"))))
	assert.Equal(t, ExitValidation, GetExitCode(NewExpectedError(cerr.New("cancelled"))))

	// Classification survives wrapping.
	wrapped := cerr.Wrap(NewValidationError(cerr.New("bad input")), "while resolving")
	assert.Equal(t, ExitValidation, GetExitCode(wrapped))
}

func TestIsExpectedUserError(t *testing.T) {
	assert.False(t, IsExpectedUserError(nil))
	assert.False(t, IsExpectedUserError(cerr.New("boom")))
	assert.True(t, IsExpectedUserError(NewExpectedError(cerr.New("cancelled"))))
	assert.True(t, IsExpectedUserError(cerr.Wrap(NewExpectedError(cerr.New("cancelled")), "outer")))
}

func TestExtractSummary(t *testing.T) {
	output := `preparing
Error: could not resolve host
retrying
fatal: giving up`
	got := ExtractSummary(output, 2)
	assert.Contains(t, got, "could not resolve host")
	assert.Contains(t, got, "giving up")

	assert.Equal(t, "No output provided.", ExtractSummary("  \n ", 3))
	assert.Equal(t, "all fine here", ExtractSummary("all fine here\nsecond line", 3))
}
