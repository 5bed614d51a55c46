// pkg/pb_windows/service.go

package pb_windows

import (
	"context"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureServiceRunning sets the Windows service's startup type to
// automatic if it is disabled and starts it if stopped. No-op when the
// service is already in the desired state.
func EnsureServiceRunning(ctx context.Context, name string) error {
	logger := otelzap.Ctx(ctx)

	startType, err := queryValue(ctx, name, "StartType")
	if err != nil {
		return err
	}
	if strings.EqualFold(startType, "Automatic") {
		logger.Debug("Service already set to automatic start", zap.String("service", name))
	} else {
		logger.Info("Setting service startup type to automatic", zap.String("service", name))
		if _, err := execute.Run(ctx, execute.Options{
			Command: "powershell",
			Args: []string{"-NoProfile", "-NonInteractive", "-Command",
				"Set-Service -Name '" + name + "' -StartupType Automatic"},
			Capture: true,
		}); err != nil {
			return cerr.Wrapf(err, "failed to set startup type for %s", name)
		}
	}

	status, err := queryValue(ctx, name, "Status")
	if err != nil {
		return err
	}
	if strings.EqualFold(status, "Running") {
		logger.Debug("Service already running", zap.String("service", name))
		return nil
	}

	logger.Info("Starting service", zap.String("service", name))
	if _, err := execute.Run(ctx, execute.Options{
		Command: "powershell",
		Args: []string{"-NoProfile", "-NonInteractive", "-Command",
			"Start-Service -Name '" + name + "'"},
		Capture: true,
	}); err != nil {
		return cerr.Wrapf(err, "failed to start %s", name)
	}
	return nil
}

// SetServiceAccount points the service at a dedicated logon account. The
// password never reaches the log; only the account name does.
func SetServiceAccount(ctx context.Context, name, account, password string) error {
	logger := otelzap.Ctx(ctx)
	logger.Info("Configuring service account",
		zap.String("service", name),
		zap.String("account", account))

	if _, err := execute.Run(ctx, execute.Options{
		Command: "sc.exe",
		Args:    []string{"config", name, "obj=", account, "password=", password},
		Capture: true,
	}); err != nil {
		return cerr.Wrapf(err, "failed to set service account for %s", name)
	}
	return nil
}

func queryValue(ctx context.Context, name, property string) (string, error) {
	out, err := execute.Run(ctx, execute.Options{
		Command: "powershell",
		Args: []string{"-NoProfile", "-NonInteractive", "-Command",
			"(Get-Service -Name '" + name + "')." + property},
		Capture: true,
	})
	if err != nil {
		return "", cerr.Wrapf(err, "failed to query service %s", name)
	}
	return strings.TrimSpace(out), nil
}
