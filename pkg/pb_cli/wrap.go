// pkg/pb_cli/wrap.go

package pb_cli

import (
	"context"

	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Wrap adapts a handler taking a RuntimeContext into a cobra RunE, adding
// panic recovery and outcome logging. Expected user errors (cancelled
// confirmation, missing unattended input) pass through unstacked.
func Wrap(fn func(rc *pb_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		rc := pb_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		err = fn(rc, cmd, args)
		if err != nil && !pb_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
