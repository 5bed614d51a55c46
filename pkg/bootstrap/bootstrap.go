// pkg/bootstrap/bootstrap.go

package bootstrap

import (
	"fmt"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Run is the whole bootstrap: detect the host, resolve inputs, check
// preconditions, confirm, then execute the step sequence. Every phase before
// Execute is read-only, so a failure up to and including the confirmation
// gate leaves the machine untouched.
func Run(rc *pb_io.RuntimeContext, p *interaction.Prompter, role Role, f Flags) error {
	logger := otelzap.Ctx(rc.Ctx)

	p.Display(rc.Ctx, "Welcome! This utility installs Puppet and connects this machine to your Puppet server.")

	machine, err := DetectMachine(rc.Ctx, role)
	if err != nil {
		return err
	}

	req, err := Resolve(rc, p, role, f)
	if err != nil {
		return err
	}

	if err := Preflight(rc, req); err != nil {
		return err
	}

	if err := Confirm(rc, p, req); err != nil {
		return err
	}

	warned, err := Execute(rc, BuildSteps(req, machine))
	if err != nil {
		return err
	}

	logger.Info("Bootstrap complete",
		zap.String("role", string(role)),
		zap.String("server", req.Server),
		zap.Strings("warned_steps", warned))
	p.Display(rc.Ctx, finalMessage(req, warned))
	return nil
}

func finalMessage(req *Request, warned []string) string {
	name := req.CertName
	if name == "" {
		name = req.NewHostname
	}
	if len(warned) > 0 {
		return fmt.Sprintf("Bootstrap finished, but these steps need attention: %s. Check the log, fix the cause, and rerun; completed steps will be skipped.",
			strings.Join(warned, ", "))
	}
	if req.Role == RoleServer {
		return fmt.Sprintf("Puppet server bootstrap finished. Sign agent certificates with: puppetserver ca sign --certname <name> (this server is %s).", name)
	}
	return fmt.Sprintf("Puppet agent bootstrap finished. If the certificate is not signed automatically, sign %q on %s.", name, req.Server)
}
