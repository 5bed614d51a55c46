// pkg/bootstrap/types.go

package bootstrap

import (
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Role selects which machine profile is being bootstrapped.
type Role string

const (
	RoleAgentLinux   Role = "agent-linux"
	RoleAgentWindows Role = "agent-windows"
	RoleServer       Role = "server"
)

// IsWindows reports whether the role targets a Windows host.
func (r Role) IsWindows() bool { return r == RoleAgentWindows }

// App returns which Puppet application the role installs.
func (r Role) App() string {
	if r == RoleServer {
		return "server"
	}
	return "agent"
}

// Request is the fully resolved configuration for one bootstrap run. It is
// built once by the input resolver, frozen when the confirmation gate
// accepts it, and then only read by the orchestrator.
type Request struct {
	Role    Role `validate:"required,oneof=agent-linux agent-windows server"`
	Version puppet.Version

	Server      string `validate:"required,fqdn"`
	Port        int    `validate:"min=1,max=65535"`
	Environment string `validate:"required"`

	// CertName overrides the certificate name derived from the hostname.
	CertName string

	// NewHostname, when set, renames the machine before anything else so
	// the certificate name is derived from the final name.
	NewHostname     string
	CurrentHostname string

	CSRExtensions map[string]string

	EnableService   bool
	ServiceAccount  string
	ServiceDomain   string
	ServicePassword string

	// WaitForCert is the agent's certificate polling interval in seconds;
	// 0 disables waiting.
	WaitForCert int `validate:"min=0"`

	// AutosignDomain, server role only: domain granted a wildcard
	// autosign entry.
	AutosignDomain string

	SkipServerCheck     bool
	SkipOptionalPrompts bool
	SkipConfirmation    bool
	SkipInitialRun      bool
	Unattended          bool
}

var validate = validator.New()

// Normalize enforces the unattended invariant: unattended mode forces all
// prompt- and check-skipping flags on, regardless of how they were given.
func (r *Request) Normalize() {
	if r.Unattended {
		r.SkipConfirmation = true
		r.SkipOptionalPrompts = true
		r.SkipServerCheck = true
	}
}

// Validate checks the resolved request before any mutation.
func (r *Request) Validate() error {
	if r.Version.Major == "" {
		return pb_err.NewValidationError(cerr.New("no version selector was resolved"))
	}
	if err := validate.Struct(r); err != nil {
		return pb_err.NewValidationError(cerr.Wrap(err, "invalid bootstrap request"))
	}
	if len(r.CSRExtensions) > 0 {
		if err := puppet.ValidateExtensions(r.CSRExtensions); err != nil {
			return pb_err.NewValidationError(err)
		}
	}
	return nil
}

// ServiceUnit returns the OS service the role manages.
func (r *Request) ServiceUnit() string {
	if r.Role == RoleServer {
		return "puppetserver"
	}
	return "puppet"
}

// DomainOf extracts the domain part of an FQDN.
func DomainOf(fqdn string) string {
	_, domain, found := strings.Cut(fqdn, ".")
	if !found {
		return ""
	}
	return strings.TrimPrefix(domain, ".")
}

// QualifyHostname appends the domain when the name is not already
// fully qualified.
func QualifyHostname(name, domain string) string {
	if strings.Contains(name, ".") || domain == "" {
		return name
	}
	return name + "." + domain
}
