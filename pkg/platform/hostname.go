// pkg/platform/hostname.go

package platform

import (
	"context"
	"os"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// CurrentHostname returns the machine's hostname.
func CurrentHostname() (string, error) {
	name, err := os.Hostname()
	if err != nil {
		return "", cerr.Wrap(err, "failed to read current hostname")
	}
	return strings.TrimSpace(name), nil
}

// SetHostname renames the machine. Linux uses hostnamectl so the change
// persists; Windows uses Rename-Computer, which takes effect at next boot
// but updates the name Puppet derives its certname from immediately.
func SetHostname(ctx context.Context, name string) error {
	logger := otelzap.Ctx(ctx)
	logger.Info("Setting hostname", zap.String("hostname", name))

	if GetOSPlatform() == "windows" {
		if _, err := execute.Run(ctx, execute.Options{
			Command: "powershell",
			Args:    []string{"-NoProfile", "-NonInteractive", "-Command", "Rename-Computer -NewName '" + name + "' -Force"},
			Capture: true,
		}); err != nil {
			return cerr.Wrapf(err, "failed to rename computer to %q", name)
		}
		return nil
	}

	if _, err := execute.Run(ctx, execute.Options{
		Command: "hostnamectl",
		Args:    []string{"set-hostname", name},
		Capture: true,
	}); err != nil {
		return cerr.Wrapf(err, "failed to set hostname to %q", name)
	}
	return nil
}
