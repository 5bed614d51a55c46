/* cmd/root.go */

package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/chiselops/puppet-bootstrap/cmd/agent"
	"github.com/chiselops/puppet-bootstrap/cmd/server"
	"github.com/chiselops/puppet-bootstrap/pkg/logger"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
)

var logLevelFlag string

// RootCmd is the base command for puppet-bootstrap.
var RootCmd = &cobra.Command{
	Use:   "puppet-bootstrap",
	Short: "Install Puppet and connect this machine to a Puppet server",
	Long: `puppet-bootstrap installs the Puppet agent or Puppet server on this machine,
writes its identity to puppet.conf, performs the first convergence run, and
enables the service. Run it with no flags for a guided interactive setup, or
pass --unattended with the required flags for provisioning pipelines.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.SetLevel(logger.ParseLogLevel(logLevelFlag))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// RegisterCommands adds all subcommands to the root command.
func RegisterCommands() {
	RootCmd.PersistentFlags().StringVar(&logLevelFlag, "loglevel", "info",
		"log verbosity (debug, info, warn, error)")

	RootCmd.AddCommand(agent.AgentCmd)
	RootCmd.AddCommand(server.ServerCmd)
}

// Execute runs the root command and maps the outcome to the process exit
// code: 0 success, 1 system failure, 2 invalid input or operator abort.
func Execute() {
	defer func() { _ = logger.Sync() }()

	RegisterCommands()

	if err := RootCmd.Execute(); err != nil {
		code := pb_err.GetExitCode(err)
		if pb_err.IsExpectedUserError(err) || code == pb_err.ExitValidation {
			logger.L().Warn("Bootstrap did not proceed", zap.Error(err))
		} else {
			logger.L().Error("Bootstrap failed", zap.Error(err))
		}
		_ = logger.Sync()
		os.Exit(code)
	}
}
