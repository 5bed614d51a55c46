// pkg/bootstrap/orchestrator.go

package bootstrap

import (
	"context"

	"github.com/chiselops/puppet-bootstrap/pkg/pb_io"
	"github.com/chiselops/puppet-bootstrap/pkg/telemetry"
	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

// Step is one ordered unit of the bootstrap. Check reports whether the step
// is already satisfied; a satisfied step is skipped, which is what lets an
// interrupted run be re-executed and resume where it stopped. Steps with
// WarnOnly report failure without aborting the run.
type Step struct {
	Name        string
	Description string

	// Enabled reports whether the step applies to this request at all.
	// Nil means always enabled.
	Enabled func() bool

	// Check reports whether the step's outcome is already in place.
	// Nil means the step always runs; the step itself must then be
	// safe to repeat.
	Check func(ctx context.Context) (bool, error)

	Run func(ctx context.Context) error

	WarnOnly bool
}

// Execute runs the steps in order, stopping at the first hard failure. Each
// step logs its disposition so an operator reading the log can see exactly
// which mutations happened. The returned slice names the warn-only steps
// that failed, so the caller can report a degraded but usable outcome.
func Execute(rc *pb_io.RuntimeContext, steps []Step) ([]string, error) {
	logger := otelzap.Ctx(rc.Ctx)
	var warned []string

	for i, step := range steps {
		if step.Enabled != nil && !step.Enabled() {
			logger.Debug("Step does not apply", zap.String("step", step.Name))
			continue
		}

		ctx, span := telemetry.Start(rc.Ctx, "step."+step.Name)

		if step.Check != nil {
			done, err := step.Check(ctx)
			if err != nil {
				span.End()
				return warned, cerr.Wrapf(err, "failed to check state for step %s", step.Name)
			}
			if done {
				logger.Info("Step already satisfied, skipping",
					zap.String("step", step.Name),
					zap.Int("position", i+1))
				span.End()
				continue
			}
		}

		logger.Info("Running step",
			zap.String("step", step.Name),
			zap.String("description", step.Description),
			zap.Int("position", i+1),
			zap.Int("total", len(steps)))

		err := step.Run(ctx)
		span.End()

		if err != nil {
			if step.WarnOnly {
				logger.Warn("Step failed but is not fatal, continuing",
					zap.String("step", step.Name),
					zap.Error(err))
				warned = append(warned, step.Name)
				continue
			}
			return warned, cerr.Wrapf(err, "bootstrap step %s failed", step.Name)
		}

		logger.Info("Step complete", zap.String("step", step.Name))
	}
	return warned, nil
}
