// pkg/bootstrap/steps.go

package bootstrap

import (
	"context"
	"strconv"
	"time"

	"github.com/chiselops/puppet-bootstrap/pkg/installer"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_unix"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_windows"
	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Machine describes the host the bootstrap runs on, detected once up front.
type Machine struct {
	PackageManager platform.PackageManager
	OSRelease      platform.OSRelease
}

// DetectMachine inspects the host and rejects unsupported systems before any
// step runs.
func DetectMachine(ctx context.Context, role Role) (Machine, error) {
	if role.IsWindows() {
		if platform.GetOSPlatform() != "windows" {
			return Machine{}, cerr.New("the windows role can only run on a Windows host")
		}
		return Machine{PackageManager: platform.Msi}, nil
	}

	if platform.GetOSPlatform() != "linux" {
		return Machine{}, cerr.Newf("the %s role can only run on a Linux host", role)
	}
	rel, err := platform.DetectOS()
	if err != nil {
		return Machine{}, err
	}
	if err := rel.CheckSupported(); err != nil {
		return Machine{}, err
	}
	pm, err := platform.DetectPackageManager()
	if err != nil {
		return Machine{}, err
	}
	return Machine{PackageManager: pm, OSRelease: rel}, nil
}

// BuildSteps assembles the ordered step list for a request. The order is
// fixed: the hostname changes first so everything downstream sees the final
// name, identity lands in puppet.conf before the first run, and the service
// is only enabled once that run had its chance.
func BuildSteps(req *Request, m Machine) []Step {
	app := installer.AppAgent
	if req.Role == RoleServer {
		app = installer.AppServer
	}

	steps := []Step{
		{
			Name:        "hostname",
			Description: "rename the machine",
			Enabled:     func() bool { return req.NewHostname != req.CurrentHostname },
			Check: func(ctx context.Context) (bool, error) {
				current, err := platform.CurrentHostname()
				if err != nil {
					return false, err
				}
				return current == req.NewHostname, nil
			},
			Run: func(ctx context.Context) error {
				return platform.SetHostname(ctx, req.NewHostname)
			},
		},
		{
			Name:        "install",
			Description: "install the " + app.PackageName() + " package",
			Check: func(ctx context.Context) (bool, error) {
				if req.Role.IsWindows() {
					return installer.IsInstalledWindows(), nil
				}
				return installer.IsInstalled(ctx, m.PackageManager, app), nil
			},
			Run: func(ctx context.Context) error {
				if req.Role.IsWindows() {
					return installer.InstallWindows(ctx, req.Version)
				}
				return installer.InstallLinux(ctx, m.PackageManager, m.OSRelease, app, req.Version)
			},
		},
		{
			Name:        "path",
			Description: "put the puppet command on the PATH",
			Run: func(ctx context.Context) error {
				return platform.EnsureOnPath(ctx, puppet.BinDir())
			},
		},
		{
			Name:        "csr-extensions",
			Description: "write the CSR extension attributes",
			Enabled:     func() bool { return len(req.CSRExtensions) > 0 },
			Run: func(ctx context.Context) error {
				return puppet.WriteCSRAttributes(ctx, puppet.CSRAttributesPath(), req.CSRExtensions)
			},
		},
		{
			Name:        "configure",
			Description: "write node identity to puppet.conf",
			Run: func(ctx context.Context) error {
				return applyConfig(ctx, req)
			},
		},
		{
			Name:        "autosign",
			Description: "allow automatic certificate signing for the domain",
			Enabled:     func() bool { return req.Role == RoleServer && req.AutosignDomain != "" },
			Run: func(ctx context.Context) error {
				return puppet.EnsureAutosignEntry(ctx, puppet.AutosignPath(), req.AutosignDomain)
			},
		},
		{
			Name:        "settle",
			Description: "wait for the installation to settle",
			Enabled:     func() bool { return !req.SkipInitialRun },
			Run: func(ctx context.Context) error {
				otelzap.Ctx(ctx).Info("Waiting before the first run",
					zap.Duration("delay", settleDelay))
				select {
				case <-time.After(settleDelay):
					return nil
				case <-ctx.Done():
					return ctx.Err()
				}
			},
		},
		{
			Name:        "initial-run",
			Description: "perform the first convergence run",
			Enabled:     func() bool { return !req.SkipInitialRun },
			Run: func(ctx context.Context) error {
				return puppet.FirstRun(ctx, req.WaitForCert)
			},
			// A first run that fails (unsigned certificate, catalog error)
			// still leaves a working installation; the operator can rerun
			// the agent once the cause is fixed.
			WarnOnly: true,
		},
		{
			Name:        "service-account",
			Description: "run the agent service under the given account",
			Enabled:     func() bool { return req.Role.IsWindows() && req.ServiceAccount != "" },
			Run: func(ctx context.Context) error {
				account := req.ServiceAccount
				if req.ServiceDomain != "" {
					account = req.ServiceDomain + "\\" + account
				}
				return pb_windows.SetServiceAccount(ctx, req.ServiceUnit(), account, req.ServicePassword)
			},
		},
		{
			Name:        "service",
			Description: "enable and start the " + req.ServiceUnit() + " service",
			Enabled:     func() bool { return req.EnableService },
			Run: func(ctx context.Context) error {
				if req.Role.IsWindows() {
					return pb_windows.EnsureServiceRunning(ctx, req.ServiceUnit())
				}
				return pb_unix.EnsureServiceRunning(ctx, req.ServiceUnit())
			},
		},
	}
	return steps
}

// applyConfig writes where the node reports and what it calls itself. The
// keys go to [main] so every puppet application agrees on them; only the
// environment is agent-specific.
func applyConfig(ctx context.Context, req *Request) error {
	main := []puppet.Option{
		{Key: "server", Value: req.Server},
		{Key: "masterport", Value: strconv.Itoa(req.Port)},
	}
	if req.CertName != "" {
		main = append(main, puppet.Option{Key: "certname", Value: req.CertName})
	}

	if err := puppet.SetConfigOptions(ctx, "main", main); err != nil {
		return err
	}
	return puppet.SetConfigOptions(ctx, "agent", []puppet.Option{
		{Key: "environment", Value: req.Environment},
	})
}
