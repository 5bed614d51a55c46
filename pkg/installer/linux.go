// pkg/installer/linux.go

package installer

import (
	"context"
	"fmt"
	"time"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const installTimeout = 30 * time.Minute

// IsInstalled reports whether the app's package is already present. Puppet
// doesn't land on the PATH, so the package manager is the source of truth.
func IsInstalled(ctx context.Context, pm platform.PackageManager, app App) bool {
	var opts execute.Options
	switch pm {
	case platform.Apt:
		opts = execute.Options{Command: "dpkg-query", Args: []string{"-W", app.PackageName()}, Capture: true}
	case platform.Yum:
		opts = execute.Options{Command: "rpm", Args: []string{"-q", app.PackageName()}, Capture: true}
	default:
		return false
	}
	_, err := execute.Run(ctx, opts)
	return err == nil
}

// InstallLinux downloads the release package for the requested major line,
// registers the repository, and installs the app, pinned when an exact
// version was requested and latest of the line otherwise.
//
// Server/certificate/environment identity is deliberately NOT baked into
// the installation; it is applied afterwards with `puppet config set` so
// the node can be reconfigured cleanly later.
func InstallLinux(ctx context.Context, pm platform.PackageManager, rel platform.OSRelease, app App, v puppet.Version) error {
	logger := otelzap.Ctx(ctx)

	url, err := ReleasePackageURL(pm, rel, v.Major)
	if err != nil {
		return err
	}
	path, err := Download(ctx, url)
	if err != nil {
		return err
	}

	logger.Info("Installing release package", zap.String("path", path))
	if err := installReleasePackage(ctx, pm, path); err != nil {
		return err
	}

	logger.Info("Installing package",
		zap.String("package", app.PackageName()),
		zap.String("version", v.String()))
	return installPackage(ctx, pm, rel, app.PackageName(), v.Exact)
}

func installReleasePackage(ctx context.Context, pm platform.PackageManager, path string) error {
	switch pm {
	case platform.Apt:
		_, err := execute.Run(ctx, execute.Options{
			Command: "dpkg",
			Args:    []string{"-i", path},
			Timeout: installTimeout,
		})
		return cerr.Wrap(err, "failed to install release package")
	case platform.Yum:
		// -U upgrades or installs, so a rerun over an existing release
		// package succeeds.
		_, err := execute.Run(ctx, execute.Options{
			Command: "rpm",
			Args:    []string{"-U", "--replacepkgs", path},
			Timeout: installTimeout,
		})
		return cerr.Wrap(err, "failed to install release package")
	default:
		return cerr.Newf("no supported package manager: %q", pm)
	}
}

func installPackage(ctx context.Context, pm platform.PackageManager, rel platform.OSRelease, name, exactVersion string) error {
	switch pm {
	case platform.Apt:
		if _, err := execute.Run(ctx, execute.Options{
			Command: "apt-get",
			Args:    []string{"update"},
			Timeout: installTimeout,
		}); err != nil {
			return cerr.Wrap(err, "apt-get update failed")
		}
		spec := name
		if exactVersion != "" {
			// Debian-family packages carry the codename in the revision.
			spec = fmt.Sprintf("%s=%s-1%s", name, exactVersion, rel.Codename)
		}
		if _, err := execute.Run(ctx, execute.Options{
			Command: "apt-get",
			Args:    []string{"install", "-y", spec},
			Timeout: installTimeout,
		}); err != nil {
			return cerr.Wrapf(err, "failed to install %s", spec)
		}
		return nil
	case platform.Yum:
		spec := name
		if exactVersion != "" {
			spec = fmt.Sprintf("%s-%s", name, exactVersion)
		}
		if _, err := execute.Run(ctx, execute.Options{
			Command: "yum",
			Args:    []string{"install", "-y", spec},
			Timeout: installTimeout,
		}); err != nil {
			return cerr.Wrapf(err, "failed to install %s", spec)
		}
		return nil
	default:
		return cerr.Newf("no supported package manager: %q", pm)
	}
}
