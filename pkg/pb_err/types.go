// pkg/pb_err/types.go

package pb_err

// UserError marks an error as expected and user-correctable (cancelled
// confirmation, missing mandatory input). These are reported without a
// stack trace and map to a distinct exit path from system errors.
type UserError struct {
	cause error
}

func (e *UserError) Error() string {
	return e.cause.Error()
}

func (e *UserError) Unwrap() error {
	return e.cause
}
