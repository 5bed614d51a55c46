// pkg/bootstrap/resolve.go

package bootstrap

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/chiselops/puppet-bootstrap/pkg/platform"
	"github.com/chiselops/puppet-bootstrap/pkg/puppet"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Flags carries the raw command-line values before resolution. Empty string
// and zero values mean "not given"; the resolver decides whether to prompt,
// default, or fail for each one.
type Flags struct {
	Version           string
	Server            string
	Port              int
	Environment       string
	CertName          string
	NewHostname       string
	CSRExtensionsJSON string

	EnableService   bool
	WaitForCert     int
	ServiceAccount  string
	ServiceDomain   string
	ServicePassword string

	AutosignDomain string

	SkipInitialRun      bool
	SkipServerCheck     bool
	SkipOptionalPrompts bool
	SkipConfirmation    bool
	Unattended          bool
}

const defaultEnvironment = "production"

// Resolve turns raw flags into a validated Request for the given role,
// prompting interactively for anything missing. Resolution order for every
// setting is explicit flag, then prompt, then default; unattended mode
// replaces every prompt with its default or a hard failure.
func Resolve(rc *pb_io.RuntimeContext, p *interaction.Prompter, role Role, f Flags) (*Request, error) {
	logger := otelzap.Ctx(rc.Ctx)

	req := &Request{
		Role:                role,
		Port:                f.Port,
		EnableService:       f.EnableService,
		WaitForCert:         f.WaitForCert,
		ServiceAccount:      f.ServiceAccount,
		ServiceDomain:       f.ServiceDomain,
		ServicePassword:     f.ServicePassword,
		SkipInitialRun:      f.SkipInitialRun,
		SkipServerCheck:     f.SkipServerCheck,
		SkipOptionalPrompts: f.SkipOptionalPrompts,
		SkipConfirmation:    f.SkipConfirmation,
		Unattended:          f.Unattended,
	}
	req.Normalize()

	resolver := &interaction.Resolver{
		Prompter:    p,
		SkipPrompts: req.SkipOptionalPrompts,
		Unattended:  req.Unattended,
	}

	version, err := puppet.ParseVersion(f.Version)
	if err != nil {
		return nil, pb_err.NewValidationError(err)
	}
	req.Version = version

	current, err := platform.CurrentHostname()
	if err != nil {
		return nil, cerr.Wrap(err, "failed to determine current hostname")
	}
	req.CurrentHostname = current

	if err := resolveHostname(rc, p, resolver, req, f); err != nil {
		return nil, err
	}
	if err := resolveServer(rc, resolver, req, f); err != nil {
		return nil, err
	}
	if err := resolveEnvironment(rc, resolver, req, f); err != nil {
		return nil, err
	}
	if err := resolveCertName(rc, resolver, req, f); err != nil {
		return nil, err
	}
	if err := resolveCSRExtensions(rc, p, resolver, req, f); err != nil {
		return nil, err
	}
	if role.IsWindows() {
		if err := resolveServiceAccount(rc, p, req); err != nil {
			return nil, err
		}
	}
	if role == RoleServer {
		req.AutosignDomain = f.AutosignDomain
		if req.AutosignDomain == "" && !req.SkipOptionalPrompts {
			enable, err := p.Bool(rc.Ctx, "Would you like certificate requests from this domain to be signed automatically?")
			if err != nil {
				return nil, err
			}
			if enable {
				req.AutosignDomain = DomainOf(req.NewHostname)
			}
		}
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger.Info("Resolved bootstrap request",
		zap.String("role", string(role)),
		zap.String("server", req.Server),
		zap.String("version", req.Version.String()),
		zap.String("environment", req.Environment))
	return req, nil
}

// resolveHostname settles the machine's final name before anything that
// derives from it. Linux names must be fully qualified; Windows names must
// not be, and a qualified name is split into the short computer name while
// the full form becomes the default certificate name.
func resolveHostname(rc *pb_io.RuntimeContext, p *interaction.Prompter, r *interaction.Resolver, req *Request, f Flags) error {
	logger := otelzap.Ctx(rc.Ctx)

	name := f.NewHostname
	if name == "" && !req.SkipOptionalPrompts {
		change, err := r.OptionalBool(rc.Ctx,
			fmt.Sprintf("This machine is named %q. Would you like to change that?", req.CurrentHostname), false)
		if err != nil {
			return err
		}
		if change {
			name, err = p.String(rc.Ctx, "What should the new hostname be?", true)
			if err != nil {
				return err
			}
		}
	}
	if name == "" {
		name = req.CurrentHostname
	}

	switch {
	case req.Role.IsWindows():
		if strings.Contains(name, ".") {
			fqdn := name
			name = strings.SplitN(name, ".", 2)[0]
			logger.Warn("Windows computer names cannot be fully qualified, using the short form",
				zap.String("given", fqdn), zap.String("hostname", name))
			if f.CertName == "" && req.CertName == "" {
				req.CertName = fqdn
			}
		}
	default:
		// Linux: certificates, config and autosigning all key off the
		// fully qualified name, so an unqualified one is unusable.
		for interaction.ValidateFQDN(name) != nil {
			if req.Unattended {
				return pb_err.NewValidationError(
					cerr.Newf("hostname %q is not fully qualified", name))
			}
			logger.Warn("Hostname is not fully qualified", zap.String("hostname", name))
			var err error
			name, err = p.StringValidated(rc.Ctx,
				fmt.Sprintf("%q is not a fully qualified domain name. What should this machine be called?", name),
				true, interaction.ValidateFQDN)
			if err != nil {
				return err
			}
		}
	}

	req.NewHostname = name
	return nil
}

// resolveServer settles which Puppet server the node reports to. The server
// role defaults to the machine itself; agents must be told. A short name is
// qualified with the domain inferred from the machine's own name before
// being rejected.
func resolveServer(rc *pb_io.RuntimeContext, r *interaction.Resolver, req *Request, f Flags) error {
	domain := inferredDomain(req)

	if req.Role == RoleServer {
		server := f.Server
		if server == "" {
			server = req.NewHostname
		}
		req.Server = QualifyHostname(server, domain)
		return nil
	}

	if f.Server != "" {
		server := QualifyHostname(f.Server, domain)
		if err := interaction.ValidateFQDN(server); err != nil {
			return pb_err.NewValidationError(cerr.Wrapf(err, "invalid puppet server %q", f.Server))
		}
		req.Server = server
		return nil
	}

	server, err := r.String(rc.Ctx, interaction.Field{
		Name:      "puppet server",
		Prompt:    "What is the fully qualified domain name of the Puppet server?",
		Mandatory: true,
		Validate:  interaction.ValidateFQDN,
	}, "")
	if err != nil {
		return err
	}
	req.Server = server
	return nil
}

// inferredDomain is the administrative domain taken from the machine's own
// name. On Windows the short computer name carries no domain, but the
// certificate name preserves the fully qualified form it was stripped from.
func inferredDomain(req *Request) string {
	if strings.Contains(req.NewHostname, ".") {
		return DomainOf(req.NewHostname)
	}
	if strings.Contains(req.CertName, ".") {
		return DomainOf(req.CertName)
	}
	return ""
}

// resolveEnvironment keeps the default unless the operator asks to change it.
func resolveEnvironment(rc *pb_io.RuntimeContext, r *interaction.Resolver, req *Request, f Flags) error {
	if f.Environment != "" && f.Environment != defaultEnvironment {
		req.Environment = f.Environment
		return nil
	}

	req.Environment = defaultEnvironment
	change, err := r.OptionalBool(rc.Ctx,
		fmt.Sprintf("The node will join the %q environment. Would you like a different one?", defaultEnvironment), false)
	if err != nil {
		return err
	}
	if change {
		env, err := r.Prompter.String(rc.Ctx, "Which environment should the node join?", true)
		if err != nil {
			return err
		}
		req.Environment = env
	}
	return nil
}

func resolveCertName(rc *pb_io.RuntimeContext, r *interaction.Resolver, req *Request, f Flags) error {
	if f.CertName != "" {
		req.CertName = f.CertName
		return nil
	}
	if req.CertName != "" {
		// Already derived from a stripped Windows FQDN.
		return nil
	}

	name, err := r.String(rc.Ctx, interaction.Field{
		Name:   "certificate name",
		Prompt: "What certificate name should the node request?",
	}, "")
	if err != nil {
		return err
	}
	req.CertName = name

	// A renamed Linux machine requests its certificate under the new name
	// even without an explicit override, so the server sees the final name.
	if req.CertName == "" && !req.Role.IsWindows() && req.NewHostname != req.CurrentHostname {
		req.CertName = req.NewHostname
	}
	return nil
}

// resolveCSRExtensions takes extensions from the JSON flag when given,
// otherwise collects key/value pairs interactively. Keys are checked against
// the recognized short names either way; a bad key from the flag is fatal,
// while interactive entry re-prompts.
func resolveCSRExtensions(rc *pb_io.RuntimeContext, p *interaction.Prompter, r *interaction.Resolver, req *Request, f Flags) error {
	if f.CSRExtensionsJSON != "" {
		extensions := map[string]string{}
		if err := json.Unmarshal([]byte(f.CSRExtensionsJSON), &extensions); err != nil {
			return pb_err.NewValidationError(cerr.Wrap(err, "csr-extensions is not a valid JSON object"))
		}
		if err := puppet.ValidateExtensions(extensions); err != nil {
			return pb_err.NewValidationError(err)
		}
		req.CSRExtensions = extensions
		return nil
	}

	want, err := r.OptionalBool(rc.Ctx, "Would you like to add certificate extension attributes to this node's CSR?", false)
	if err != nil {
		return err
	}
	if !want {
		return nil
	}

	extensions := map[string]string{}
	for {
		key, err := p.StringValidated(rc.Ctx, "Extension short name (e.g. pp_role)", true, puppet.ValidateExtensionName)
		if err != nil {
			return err
		}
		value, err := p.String(rc.Ctx, fmt.Sprintf("Value for %s", key), true)
		if err != nil {
			return err
		}
		extensions[key] = value

		more, err := p.Bool(rc.Ctx, "Add another extension attribute?")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}
	req.CSRExtensions = extensions
	return nil
}

// resolveServiceAccount fills in the hidden credential when an account was
// named without one. Unattended runs must supply it up front.
func resolveServiceAccount(rc *pb_io.RuntimeContext, p *interaction.Prompter, req *Request) error {
	if req.ServiceAccount == "" || req.ServicePassword != "" {
		return nil
	}
	if req.Unattended {
		return pb_err.NewValidationError(
			cerr.New("a service account was given without a password and no prompt is possible in unattended mode"))
	}
	password, err := p.Secret(rc.Ctx, fmt.Sprintf("Password for service account %s", req.ServiceAccount))
	if err != nil {
		return err
	}
	req.ServicePassword = password
	return nil
}
