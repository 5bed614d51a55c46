// pkg/platform/path.go

package platform

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

const profileScript = "/etc/profile.d/puppet-agent.sh"

// EnsureOnPath makes the given bin directory visible both to this process
// and to future login shells. Puppet does not put itself on the PATH, so
// without this every follow-up shell has to spell out /opt/puppetlabs/bin.
// Idempotent: a directory already present is left alone.
func EnsureOnPath(ctx context.Context, binDir string) error {
	logger := otelzap.Ctx(ctx)

	current := os.Getenv("PATH")
	if !containsPathEntry(current, binDir) {
		if err := os.Setenv("PATH", current+string(os.PathListSeparator)+binDir); err != nil {
			return cerr.Wrap(err, "failed to update process PATH")
		}
	}

	if GetOSPlatform() == "windows" {
		return persistWindowsPath(ctx, binDir)
	}

	// Persisting via profile.d keeps the change out of files that other
	// tooling owns (/etc/environment, user dotfiles).
	script := fmt.Sprintf("export PATH=\"$PATH:%s\"\n", binDir)
	if existing, err := os.ReadFile(profileScript); err == nil && string(existing) == script {
		logger.Debug("PATH profile script already present", zap.String("path", profileScript))
		return nil
	}
	if err := os.WriteFile(profileScript, []byte(script), 0o644); err != nil {
		return cerr.Wrapf(err, "failed to write %s", profileScript)
	}
	logger.Info("Added Puppet bin directory to PATH", zap.String("bin_dir", binDir))
	return nil
}

func persistWindowsPath(ctx context.Context, binDir string) error {
	logger := otelzap.Ctx(ctx)

	out, err := execute.Run(ctx, execute.Options{
		Command: "powershell",
		Args: []string{"-NoProfile", "-NonInteractive", "-Command",
			"[Environment]::GetEnvironmentVariable('Path', 'Machine')"},
		Capture: true,
	})
	if err != nil {
		return cerr.Wrap(err, "failed to read machine PATH")
	}
	if containsPathEntry(strings.TrimSpace(out), binDir) {
		logger.Debug("Machine PATH already contains Puppet bin directory")
		return nil
	}

	cmd := fmt.Sprintf(
		"[Environment]::SetEnvironmentVariable('Path', [Environment]::GetEnvironmentVariable('Path', 'Machine') + ';%s', 'Machine')",
		binDir)
	if _, err := execute.Run(ctx, execute.Options{
		Command: "powershell",
		Args:    []string{"-NoProfile", "-NonInteractive", "-Command", cmd},
		Capture: true,
	}); err != nil {
		return cerr.Wrap(err, "failed to persist machine PATH")
	}
	logger.Info("Added Puppet bin directory to machine PATH", zap.String("bin_dir", binDir))
	return nil
}

func containsPathEntry(pathVar, entry string) bool {
	for _, p := range strings.Split(pathVar, string(os.PathListSeparator)) {
		if strings.EqualFold(strings.TrimSpace(p), entry) {
			return true
		}
	}
	return false
}
