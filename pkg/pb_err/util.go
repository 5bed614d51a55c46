// pkg/pb_err/util.go

package pb_err

import (
	"errors"
	"strings"
)

// Exit codes for the process. The initial convergence run never maps here;
// its failures are downgraded to warnings by the orchestrator.
const (
	ExitOK         = 0
	ExitSystem     = 1 // mutation/preflight/system failure
	ExitValidation = 2 // invalid or missing input
)

// NewExpectedError wraps an error for softer UX handling.
func NewExpectedError(err error) error {
	if err == nil {
		return nil
	}
	return &UserError{cause: err}
}

// IsExpectedUserError checks if the error is marked as expected.
func IsExpectedUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// ValidationError marks input-validation failures so the root command can
// exit with ExitValidation before any mutation happened.
type ValidationError struct {
	cause error
}

func (e *ValidationError) Error() string { return e.cause.Error() }
func (e *ValidationError) Unwrap() error { return e.cause }

// NewValidationError wraps an error as an input-validation failure.
func NewValidationError(err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{cause: err}
}

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return ExitValidation
	}
	if IsExpectedUserError(err) {
		return ExitValidation
	}
	return ExitSystem
}

// ExtractSummary extracts a concise error summary from full command output.
func ExtractSummary(output string, maxCandidates int) string {
	trimmed := strings.TrimSpace(output)
	if trimmed == "" {
		return "No output provided."
	}

	lines := strings.Split(trimmed, "\n")
	var candidates []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "error") ||
			strings.Contains(lower, "failed") ||
			strings.Contains(lower, "cannot") ||
			strings.Contains(lower, "fatal") ||
			strings.Contains(lower, "timeout") {
			candidates = append(candidates, line)
		}
	}

	if len(candidates) > 0 {
		if len(candidates) > maxCandidates {
			candidates = candidates[:maxCandidates]
		}
		return strings.Join(candidates, " - ")
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}

	return "Unknown error."
}
