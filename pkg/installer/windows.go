// pkg/installer/windows.go

package installer

import (
	"context"
	"os"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// IsInstalledWindows checks for the agent by its install location; the MSI
// always lands the binaries there.
func IsInstalledWindows() bool {
	_, err := os.Stat(puppet.BinPath())
	return err == nil
}

// InstallWindows downloads the agent MSI (BITS first, HTTP fallback) and
// runs msiexec non-interactively, blocking until it finishes. Only a zero
// exit code is success.
//
// PUPPET_MASTER_SERVER and the other identity MSI properties are
// deliberately not passed: an installation configured that way cannot be
// cleanly repointed later, so identity is applied afterwards via
// `puppet config set`.
func InstallWindows(ctx context.Context, v puppet.Version) error {
	logger := otelzap.Ctx(ctx)

	url := MSIDownloadURL(v)
	path, err := DownloadWithBITS(ctx, url)
	if err != nil {
		return err
	}

	logger.Info("Installing Puppet agent MSI",
		zap.String("path", path),
		zap.String("version", v.String()))

	if _, err := execute.Run(ctx, execute.Options{
		Command: "msiexec",
		Args:    []string{"/qn", "/norestart", "/i", path},
		Timeout: installTimeout,
	}); err != nil {
		return cerr.Wrapf(err, "msiexec exited with code %d", execute.ExitCode(err))
	}
	return nil
}
