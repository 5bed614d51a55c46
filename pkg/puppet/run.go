// pkg/puppet/run.go

package puppet

import (
	"context"
	"strconv"
	"time"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// With --detailed-exitcodes the agent exits 0 for a clean no-change run and
// 2 when changes were applied; both mean the run itself worked. Anything
// else (4: failures, 6: changes plus failures, 1: run failed outright,
// including an unsigned certificate after --waitforcert gives up) is a
// failed first run.
const (
	exitNoChanges      = 0
	exitChangesApplied = 2
)

// FirstRun triggers the initial convergence run, streaming its output to
// the operator. waitForCert > 0 makes the agent poll for its certificate
// to be signed at that interval in seconds.
func FirstRun(ctx context.Context, waitForCert int) error {
	logger := otelzap.Ctx(ctx)

	args := []string{"agent", "--test", "--detailed-exitcodes"}
	if waitForCert > 0 {
		args = append(args, "--waitforcert", strconv.Itoa(waitForCert))
		logger.Info("terminal prompt: Please ensure you sign the certificate for this node on the Puppet server")
	}

	logger.Info("Performing first Puppet run", zap.Strings("args", args))

	_, err := execute.Run(ctx, execute.Options{
		Command: BinPath(),
		Args:    args,
		Timeout: 2 * time.Hour,
	})
	if err != nil {
		switch code := execute.ExitCode(err); code {
		case exitNoChanges, exitChangesApplied:
			logger.Info("Puppet run completed", zap.Int("exit_code", code))
			return nil
		default:
			return cerr.Wrapf(err, "initial puppet run failed (exit code %d)", code)
		}
	}
	return nil
}
