// cmd/server/server.go

package server

import (
	"github.com/spf13/cobra"

	"github.com/chiselops/puppet-bootstrap/pkg/bootstrap"
	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_cli"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
)

var flags bootstrap.Flags

// ServerCmd bootstraps this machine as a Puppet server.
var ServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Install Puppet server on this machine",
	Long: `Installs the puppetserver package for the requested version line, points the
machine's own agent at itself, optionally allows automatic certificate
signing for a domain, performs the first convergence run, and enables the
puppetserver service.

The machine must carry a fully qualified hostname; agents will address it by
that name. Anything not given as a flag is prompted for.`,
	RunE: pb_cli.Wrap(func(rc *pb_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		return bootstrap.Run(rc, interaction.NewPrompter(), bootstrap.RoleServer, flags)
	}),
}

func init() {
	f := ServerCmd.Flags()

	f.StringVarP(&flags.Version, "puppet-version", "v", "7",
		"Puppet version to install: a major line (e.g. 7) or an exact version (e.g. 7.12.1)")
	f.StringVarP(&flags.Server, "puppet-server", "s", "",
		"server name agents will use (default this machine's fully qualified hostname)")
	f.IntVar(&flags.Port, "puppet-server-port", 8140,
		"port the Puppet server listens on")
	f.StringVarP(&flags.Environment, "environment", "e", "",
		"Puppet environment this server's own agent joins (default production)")
	f.StringVar(&flags.CertName, "certificate-name", "",
		"certificate name to use instead of the hostname")
	f.StringVar(&flags.CSRExtensionsJSON, "csr-extensions", "",
		"certificate extension attributes as a JSON object of recognized pp_* short names")
	f.StringVar(&flags.NewHostname, "new-hostname", "",
		"rename the machine before bootstrapping (must be fully qualified)")
	f.StringVar(&flags.AutosignDomain, "autosign-domain", "",
		"automatically sign certificate requests from this domain")
	f.BoolVar(&flags.EnableService, "enable-service", true,
		"enable and start the puppetserver service once bootstrapped")
	f.IntVar(&flags.WaitForCert, "wait-for-cert", 30,
		"seconds between certificate signing checks during the first run, 0 to not wait")

	f.BoolVar(&flags.SkipInitialRun, "skip-initial-run", false,
		"do not perform the first convergence run")
	f.BoolVar(&flags.SkipServerCheck, "skip-puppet-server-check", false,
		"do not ping the server name before installing")
	f.BoolVar(&flags.SkipOptionalPrompts, "skip-optional-prompts", false,
		"take defaults for optional settings instead of prompting")
	f.BoolVar(&flags.SkipConfirmation, "skip-confirmation", false,
		"show the summary and proceed after a pause instead of asking")
	f.BoolVar(&flags.Unattended, "unattended", false,
		"never prompt: implies the skip flags and fails on missing mandatory input")
}
