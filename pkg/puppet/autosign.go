// pkg/puppet/autosign.go

package puppet

import (
	"context"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// EnsureAutosignEntry appends a wildcard trust entry for the given domain
// to the server's autosign policy, so agents in the administrative domain
// get their certificates signed without operator action. Idempotent: an
// entry already present is left alone.
func EnsureAutosignEntry(ctx context.Context, path, domain string) error {
	logger := otelzap.Ctx(ctx)
	entry := "*." + domain

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return cerr.Wrapf(err, "failed to read %s", path)
	}
	for _, line := range strings.Split(string(existing), "\n") {
		if strings.TrimSpace(line) == entry {
			logger.Debug("Autosign entry already present", zap.String("entry", entry))
			return nil
		}
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return cerr.Wrapf(err, "failed to open %s", path)
	}
	defer f.Close()

	if _, err := f.WriteString(entry + "\n"); err != nil {
		return cerr.Wrapf(err, "failed to append autosign entry to %s", path)
	}

	logger.Info("Added autosign entry", zap.String("entry", entry), zap.String("path", path))
	return nil
}
