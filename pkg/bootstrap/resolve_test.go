// pkg/bootstrap/resolve_test.go

package bootstrap

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func resolveRC() *pb_io.RuntimeContext {
	return &pb_io.RuntimeContext{Ctx: context.Background(), Log: zap.NewNop()}
}

func scriptedPrompter(input string) *interaction.Prompter {
	return interaction.NewPrompterFrom(strings.NewReader(input), &bytes.Buffer{})
}

func unattendedLinuxFlags() Flags {
	return Flags{
		Version:       "7",
		Server:        "puppet.example.com",
		Port:          8140,
		NewHostname:   "web01.example.com",
		EnableService: true,
		WaitForCert:   30,
		Unattended:    true,
	}
}

func TestResolveUnattendedLinuxAgent(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Version = "7.12.1"

	req, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.NoError(t, err)

	assert.Equal(t, "puppet.example.com", req.Server)
	assert.Equal(t, "7", req.Version.Major)
	assert.Equal(t, "7.12.1", req.Version.Exact)
	assert.Equal(t, "production", req.Environment, "unattended takes the default environment")
	assert.Equal(t, "web01.example.com", req.NewHostname)
	assert.True(t, req.SkipConfirmation)
	assert.True(t, req.SkipOptionalPrompts)
	assert.True(t, req.SkipServerCheck)
	assert.True(t, req.EnableService)

	if req.NewHostname != req.CurrentHostname {
		assert.Equal(t, req.NewHostname, req.CertName,
			"a renamed machine requests its certificate under the new name")
	}
}

func TestResolveUnattendedRejectsUnqualifiedLinuxHostname(t *testing.T) {
	f := unattendedLinuxFlags()
	f.NewHostname = "web01"

	_, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.Error(t, err)
	assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
	assert.Contains(t, err.Error(), "not fully qualified")
}

func TestResolveUnattendedRequiresServer(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Server = ""

	_, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.Error(t, err)
	assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
}

func TestResolveWindowsStripsQualifiedHostname(t *testing.T) {
	f := unattendedLinuxFlags()
	f.NewHostname = "win01.corp.example.com"

	req, err := Resolve(resolveRC(), nil, RoleAgentWindows, f)
	require.NoError(t, err)

	assert.Equal(t, "win01", req.NewHostname,
		"Windows computer names cannot carry a domain suffix")
	assert.Equal(t, "win01.corp.example.com", req.CertName,
		"the stripped fully qualified name becomes the certificate name")
}

func TestResolveWindowsExplicitCertNameWins(t *testing.T) {
	f := unattendedLinuxFlags()
	f.NewHostname = "win01.corp.example.com"
	f.CertName = "custom-cert"

	req, err := Resolve(resolveRC(), nil, RoleAgentWindows, f)
	require.NoError(t, err)

	assert.Equal(t, "win01", req.NewHostname)
	assert.Equal(t, "custom-cert", req.CertName)
}

func TestResolveAgentQualifiesShortServerName(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Server = "puppet"

	req, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.NoError(t, err)
	assert.Equal(t, "puppet.example.com", req.Server,
		"a short server name takes the domain of the machine's own name")
}

func TestResolveWindowsInfersDomainFromStrippedName(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Server = "puppet"
	f.NewHostname = "win01.corp.example.com"

	req, err := Resolve(resolveRC(), nil, RoleAgentWindows, f)
	require.NoError(t, err)
	assert.Equal(t, "puppet.corp.example.com", req.Server)
}

func TestResolveServerDefaultsToOwnHostname(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Server = ""
	f.NewHostname = "puppet.example.com"

	req, err := Resolve(resolveRC(), nil, RoleServer, f)
	require.NoError(t, err)
	assert.Equal(t, "puppet.example.com", req.Server)
}

func TestResolveServerQualifiesShortServerName(t *testing.T) {
	f := unattendedLinuxFlags()
	f.Server = "puppet2"
	f.NewHostname = "puppet.example.com"

	req, err := Resolve(resolveRC(), nil, RoleServer, f)
	require.NoError(t, err)
	assert.Equal(t, "puppet2.example.com", req.Server)
}

func TestResolveCSRExtensionsFromJSON(t *testing.T) {
	f := unattendedLinuxFlags()
	f.CSRExtensionsJSON = `{"pp_role": "webserver", "pp_environment": "production"}`

	req, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"pp_role":        "webserver",
		"pp_environment": "production",
	}, req.CSRExtensions)
}

func TestResolveCSRExtensionsRejectsUnknownKey(t *testing.T) {
	f := unattendedLinuxFlags()
	f.CSRExtensionsJSON = `{"pp_bogus": "x"}`

	_, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.Error(t, err)
	assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
}

func TestResolveCSRExtensionsRejectsMalformedJSON(t *testing.T) {
	f := unattendedLinuxFlags()
	f.CSRExtensionsJSON = `not json`

	_, err := Resolve(resolveRC(), nil, RoleAgentLinux, f)
	require.Error(t, err)
	assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
}

func TestResolveUnattendedServiceAccountRequiresPassword(t *testing.T) {
	f := unattendedLinuxFlags()
	f.NewHostname = "win01"
	f.ServiceAccount = "svc_puppet"

	_, err := Resolve(resolveRC(), nil, RoleAgentWindows, f)
	require.Error(t, err)
	assert.Equal(t, pb_err.ExitValidation, pb_err.GetExitCode(err))
	assert.Contains(t, err.Error(), "password")
}

func TestResolveInteractiveReasksForQualifiedHostname(t *testing.T) {
	f := Flags{
		Version:     "7",
		Server:      "puppet.example.com",
		Port:        8140,
		NewHostname: "web01",
	}
	// Inputs consumed in order: the corrected hostname, "no" to changing
	// the environment, empty certificate name, "no" to CSR extensions.
	p := scriptedPrompter("web01.example.com\nn\n\nn\n")

	req, err := Resolve(resolveRC(), p, RoleAgentLinux, f)
	require.NoError(t, err)
	assert.Equal(t, "web01.example.com", req.NewHostname)
	assert.Equal(t, "production", req.Environment)
}

func TestResolveInteractiveEnvironmentChange(t *testing.T) {
	f := Flags{
		Version:     "7",
		Server:      "puppet.example.com",
		Port:        8140,
		NewHostname: "web01.example.com",
	}
	// "yes" to changing the environment, then its name, empty certificate
	// name, "no" to CSR extensions.
	p := scriptedPrompter("y\nstaging\n\nn\n")

	req, err := Resolve(resolveRC(), p, RoleAgentLinux, f)
	require.NoError(t, err)
	assert.Equal(t, "staging", req.Environment)
}
