// cmd/agent/agent.go

package agent

import (
	"github.com/spf13/cobra"

	"github.com/chiselops/puppet-bootstrap/pkg/bootstrap"
	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_cli"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/chiselops/puppet-bootstrap/pkg/platform"
)

var flags bootstrap.Flags

// AgentCmd bootstraps this machine as a Puppet agent.
var AgentCmd = &cobra.Command{
	Use:   "agent",
	Short: "Install the Puppet agent and point it at a Puppet server",
	Long: `Installs the Puppet agent package for the requested version line, writes the
server, port, environment and certificate name to puppet.conf, performs the
first convergence run, and enables the puppet service.

Anything not given as a flag is prompted for. With --unattended no prompts
are shown: optional settings take their defaults and missing mandatory ones
fail the run before any change is made.`,
	RunE: pb_cli.Wrap(func(rc *pb_io.RuntimeContext, cmd *cobra.Command, args []string) error {
		role := bootstrap.RoleAgentLinux
		if platform.GetOSPlatform() == "windows" {
			role = bootstrap.RoleAgentWindows
		}
		return bootstrap.Run(rc, interaction.NewPrompter(), role, flags)
	}),
}

func init() {
	f := AgentCmd.Flags()

	f.StringVarP(&flags.Version, "agent-version", "v", "7",
		"Puppet version to install: a major line (e.g. 7) or an exact version (e.g. 7.12.1)")
	f.StringVarP(&flags.Server, "puppet-server", "s", "",
		"fully qualified domain name of the Puppet server")
	f.IntVar(&flags.Port, "puppet-server-port", 8140,
		"port the Puppet server listens on")
	f.StringVarP(&flags.Environment, "environment", "e", "",
		"Puppet environment the node joins (default production)")
	f.StringVar(&flags.CertName, "certificate-name", "",
		"certificate name to request instead of the hostname")
	f.StringVar(&flags.CSRExtensionsJSON, "csr-extensions", "",
		"certificate extension attributes as a JSON object of recognized pp_* short names")
	f.StringVar(&flags.NewHostname, "new-hostname", "",
		"rename the machine before bootstrapping")
	f.BoolVar(&flags.EnableService, "enable-service", true,
		"enable and start the puppet service once bootstrapped")
	f.IntVar(&flags.WaitForCert, "wait-for-cert", 30,
		"seconds between certificate signing checks during the first run, 0 to not wait")
	f.StringVar(&flags.ServiceAccount, "service-user", "",
		"Windows account to run the puppet service as")
	f.StringVar(&flags.ServiceDomain, "service-domain", "",
		"domain of the Windows service account")
	f.StringVar(&flags.ServicePassword, "service-password", "",
		"password for the Windows service account (prompted for when omitted)")

	f.BoolVar(&flags.SkipInitialRun, "skip-initial-run", false,
		"do not perform the first convergence run")
	f.BoolVar(&flags.SkipServerCheck, "skip-puppet-server-check", false,
		"do not ping the Puppet server before installing")
	f.BoolVar(&flags.SkipOptionalPrompts, "skip-optional-prompts", false,
		"take defaults for optional settings instead of prompting")
	f.BoolVar(&flags.SkipConfirmation, "skip-confirmation", false,
		"show the summary and proceed after a pause instead of asking")
	f.BoolVar(&flags.Unattended, "unattended", false,
		"never prompt: implies the skip flags and fails on missing mandatory input")
}
