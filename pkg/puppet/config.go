// pkg/puppet/config.go

package puppet

import (
	"context"
	"os"

	"github.com/chiselops/puppet-bootstrap/pkg/execute"
	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Option is one puppet.conf key/value pair. Options are applied in slice
// order so summaries and logs stay deterministic.
type Option struct {
	Key   string
	Value string
}

var validSections = map[string]struct{}{
	"main":   {},
	"agent":  {},
	"server": {},
	"master": {},
	"user":   {},
}

// SetConfigOptions applies each option to the given puppet.conf section via
// `puppet config set`, one key at a time. A failing key is recorded and the
// remaining keys are still attempted; the aggregate error carries every
// failure so the whole step is surfaced once.
// See https://www.puppet.com/docs/puppet/7/config_file_main.html
func SetConfigOptions(ctx context.Context, section string, options []Option) error {
	logger := otelzap.Ctx(ctx)

	if _, ok := validSections[section]; !ok {
		return cerr.Newf("invalid puppet.conf section %q", section)
	}
	if _, err := os.Stat(BinPath()); err != nil {
		return cerr.Wrapf(err, "could not find the puppet command at %s", BinPath())
	}
	if _, err := os.Stat(ConfigFilePath()); err != nil {
		return cerr.Wrapf(err, "could not find the puppet configuration file at %s", ConfigFilePath())
	}

	var result *multierror.Error
	for _, opt := range options {
		logger.Info("Setting configuration option",
			zap.String("section", section),
			zap.String("key", opt.Key),
			zap.String("value", opt.Value))

		if _, err := execute.Run(ctx, execute.Options{
			Command: BinPath(),
			Args: []string{
				"config", "set", opt.Key, opt.Value,
				"--config", ConfigFilePath(),
				"--section", section,
			},
			Capture: true,
		}); err != nil {
			result = multierror.Append(result,
				cerr.Wrapf(err, "failed to set %s = %s in section %s", opt.Key, opt.Value, section))
		}
	}
	return result.ErrorOrNil()
}
