// pkg/pb_unix/systemctl.go

package pb_unix

import (
	"context"
	"os/exec"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureServiceRunning sets the unit's startup mode to automatic if it is
// not already enabled and starts it if it is not already active. Both
// halves are no-ops when the unit is in the desired state, so a rerun of
// the bootstrap converges without touching a healthy service.
func EnsureServiceRunning(ctx context.Context, unit string) error {
	logger := otelzap.Ctx(ctx)

	if _, err := exec.LookPath("systemctl"); err != nil {
		return cerr.Wrap(err, "systemctl not found")
	}

	if IsEnabled(ctx, unit) {
		logger.Debug("Service already enabled", zap.String("unit", unit))
	} else {
		logger.Info("Enabling service", zap.String("unit", unit))
		if out, err := execute.Run(ctx, execute.Options{
			Command: "systemctl",
			Args:    []string{"enable", unit},
			Capture: true,
		}); err != nil {
			return cerr.Wrapf(err, "failed to enable %s: %s", unit, strings.TrimSpace(out))
		}
	}

	if IsActive(ctx, unit) {
		logger.Debug("Service already running", zap.String("unit", unit))
		return nil
	}

	logger.Info("Starting service", zap.String("unit", unit))
	if out, err := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"start", unit},
		Capture: true,
	}); err != nil {
		return cerr.Wrapf(err, "failed to start %s: %s", unit, strings.TrimSpace(out))
	}
	return nil
}

// IsActive reports whether the unit is currently running.
func IsActive(ctx context.Context, unit string) bool {
	out, err := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-active", unit},
		Capture: true,
	})
	return err == nil && strings.TrimSpace(out) == "active"
}

// IsEnabled reports whether the unit starts at boot.
func IsEnabled(ctx context.Context, unit string) bool {
	out, err := execute.Run(ctx, execute.Options{
		Command: "systemctl",
		Args:    []string{"is-enabled", unit},
		Capture: true,
	})
	return err == nil && strings.TrimSpace(out) == "enabled"
}
