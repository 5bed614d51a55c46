// pkg/bootstrap/confirm.go

package bootstrap

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chiselops/puppet-bootstrap/pkg/interaction"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_err"
	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// settleDelay is how long a confirmation-skipping run pauses after showing
// the summary. The pause is the operator's last chance to interrupt and is
// never shortened, even in unattended mode.
const settleDelay = 10 * time.Second

// Summary renders the resolved request for operator review. The ordering is
// fixed so two identical requests always produce identical summaries, and
// credentials are never included.
func Summary(req *Request) string {
	var b strings.Builder
	b.WriteString("About to bootstrap this machine with the following settings:\n")

	line := func(label, value string) {
		fmt.Fprintf(&b, "  %-22s %s\n", label+":", value)
	}

	line("role", string(req.Role))
	line("puppet version", req.Version.String())
	line("puppet server", req.Server)
	line("server port", fmt.Sprintf("%d", req.Port))
	line("environment", req.Environment)
	if req.NewHostname != req.CurrentHostname {
		line("new hostname", req.NewHostname)
	}
	if req.CertName != "" {
		line("certificate name", req.CertName)
	}
	if len(req.CSRExtensions) > 0 {
		keys := make([]string, 0, len(req.CSRExtensions))
		for k := range req.CSRExtensions {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			line("csr extension "+k, req.CSRExtensions[k])
		}
	}
	if req.WaitForCert > 0 {
		line("wait for certificate", fmt.Sprintf("%ds", req.WaitForCert))
	}
	line("enable service", fmt.Sprintf("%t", req.EnableService))
	if req.ServiceAccount != "" {
		account := req.ServiceAccount
		if req.ServiceDomain != "" {
			account = req.ServiceDomain + "\\" + account
		}
		line("service account", account+" (password hidden)")
	}
	if req.AutosignDomain != "" {
		line("autosign domain", "*."+req.AutosignDomain)
	}
	if req.SkipInitialRun {
		line("initial agent run", "skipped")
	}
	return b.String()
}

// Confirm shows the summary and gates the run. Interactive runs require an
// explicit yes; runs that skip confirmation still pause for settleDelay so
// the summary can be read and the run aborted.
func Confirm(rc *pb_io.RuntimeContext, p *interaction.Prompter, req *Request) error {
	logger := otelzap.Ctx(rc.Ctx)
	p.Display(rc.Ctx, Summary(req))

	if !req.SkipConfirmation {
		proceed, err := p.Bool(rc.Ctx, "Do you want to proceed?")
		if err != nil {
			return err
		}
		if !proceed {
			return pb_err.NewExpectedError(cerr.New("bootstrap cancelled by operator"))
		}
		return nil
	}

	logger.Info("Confirmation skipped, pausing before proceeding",
		zap.Duration("delay", settleDelay))
	p.Display(rc.Ctx, fmt.Sprintf("Proceeding in %s. Interrupt now to abort.", settleDelay))

	select {
	case <-time.After(settleDelay):
		return nil
	case <-rc.Ctx.Done():
		return pb_err.NewExpectedError(cerr.Wrap(rc.Ctx.Err(), "bootstrap aborted during the confirmation pause"))
	}
}
