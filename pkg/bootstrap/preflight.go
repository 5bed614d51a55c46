// pkg/bootstrap/preflight.go

package bootstrap

import (
	"context"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Preflight runs every check that can fail before the machine is touched.
// Nothing is mutated here; a failure leaves the system exactly as found.
func Preflight(rc *pb_io.RuntimeContext, req *Request) error {
	logger := otelzap.Ctx(rc.Ctx)

	if !platform.IsElevated(rc.Ctx) {
		return pb_err.NewExpectedError(
			cerr.New("bootstrap must run with administrative privileges"))
	}

	if req.SkipServerCheck {
		logger.Info("Skipping Puppet server reachability check")
	} else if err := CheckServerReachable(rc.Ctx, req.Server); err != nil {
		return err
	}

	logger.Info("Preflight checks passed", zap.String("server", req.Server))
	return nil
}

// CheckServerReachable pings the Puppet server. ICMP is a coarse probe, but
// it catches the common typo'd-hostname and offline-server cases before any
// package is installed.
func CheckServerReachable(ctx context.Context, server string) error {
	countFlag := "-c"
	if platform.GetOSPlatform() == "windows" {
		countFlag = "-n"
	}

	otelzap.Ctx(ctx).Info("Checking that the Puppet server responds to ping",
		zap.String("server", server))

	if _, err := execute.Run(ctx, execute.Options{
		Command: "ping",
		Args:    []string{countFlag, "4", server},
		Capture: true,
	}); err != nil {
		return pb_err.NewExpectedError(
			cerr.Wrapf(err, "could not reach the Puppet server at %s: is the name correct and the server online?", server))
	}
	return nil
}
