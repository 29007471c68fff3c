// pkg/discovery/runner.go

package discovery

import (
	"os"
	"time"

	cerr "github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/telemetry"
)

// Steps returns the full discovery sequence in its fixed order, fresh for
// one run.
func Steps() []*Step {
	return []*Step{
		newSystemInfoStep(),
		newUserIdentityStep(),
		newLocalAccountsStep(),
		newNetworkConfigStep(),
		newRemoteSystemsStep(),
		newPasswordPolicyStep(),
		newNetworkSharesStep(),
	}
}

// Run detects the platform once, then executes every step in order. Step
// outcomes never cancel later steps and never surface as an error: the
// transcript is the report, and the process exit code stays zero.
func Run(rc *scout_io.RuntimeContext) error {
	t := NewTranscript(os.Stdout)

	id := platform.Detect(rc)
	t.Banner("scout — host reconnaissance")
	t.Attempt("platform: %s/%s", id.Family, id.Distro)

	env := NewEnv(id, t)
	steps := Steps()
	RunSteps(rc, env, steps)

	t.Banner("Host reconnaissance complete")
	recap(rc, t, steps)
	return nil
}

// RunSteps executes the given steps against env, in order, unconditionally.
func RunSteps(rc *scout_io.RuntimeContext, env *Env, steps []*Step) {
	for _, s := range steps {
		ctx, span := telemetry.Start(rc.Ctx, "discovery."+s.Technique,
			attribute.String("step", s.Name))
		stepRC := &scout_io.RuntimeContext{
			Ctx:        ctx,
			Log:        rc.Log.Named(s.Technique),
			Span:       span,
			Timestamp:  time.Now(),
			Command:    rc.Command,
			Attributes: rc.Attributes,
		}

		started := time.Now()
		s.Execute(stepRC, env)
		s.duration = time.Since(started)

		span.SetAttributes(attribute.String("outcome", string(s.Outcome())))
		span.End()
	}
}

// recap prints one line per step and logs degraded outcomes for debugging.
// It never changes the exit code.
func recap(rc *scout_io.RuntimeContext, t *Transcript, steps []*Step) {
	logger := otelzap.Ctx(rc.Ctx)

	var degraded *multierror.Error
	for _, s := range steps {
		line := "%s [%s]: %s (%s)"
		args := []any{s.Name, s.Technique, s.Outcome(), s.duration.Round(time.Millisecond)}
		switch s.Outcome() {
		case OutcomeExecuted:
			t.Success(line, args...)
		case OutcomeExecutedViaFallbackTool, OutcomeExecutedViaFallbackCommand:
			t.Attempt(line, args...)
		default:
			t.Failure(line, args...)
			degraded = multierror.Append(degraded,
				cerr.Newf("step %s ended %s", s.Name, s.Outcome()))
		}
	}

	if degraded != nil {
		logger.Debug("Steps with degraded outcomes", zap.Error(degraded))
	}
}
