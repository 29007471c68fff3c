// pkg/discovery/step.go

// Package discovery orchestrates the reconnaissance steps. Each step is an
// independent state machine walking an ordered candidate chain; no step's
// failure blocks any other step.
package discovery

import (
	"context"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// Outcome is a step's terminal result.
type Outcome string

const (
	OutcomeNotStarted                 Outcome = "not_started"
	OutcomeExecuted                   Outcome = "executed"
	OutcomeExecutedViaFallbackTool    Outcome = "executed_via_fallback_tool"
	OutcomeExecutedViaFallbackCommand Outcome = "executed_via_fallback_command"
	OutcomeSkippedNoToolAvailable     Outcome = "skipped_no_tool_available"
	OutcomeSkippedUnsupportedPlatform Outcome = "skipped_unsupported_platform"
)

// State is a step's position in its lifecycle.
type State int

const (
	StateNotStarted State = iota
	StateTryingCandidate
	StateSucceeded
	StateSkippedUnsupportedPlatform
	StateSkippedNoToolAvailable
)

// Ensurer is the slice of pkg/tools a step needs.
type Ensurer interface {
	Ensure(rc *scout_io.RuntimeContext, tool tools.Tool) bool
}

// Env is the read-only environment shared by every step in one run.
type Env struct {
	ID      platform.Identity
	Ensurer Ensurer
	Probe   func(string) bool
	Run     func(context.Context, execute.Options) (execute.Result, error)
	T       *Transcript
}

// NewEnv wires the production seams.
func NewEnv(id platform.Identity, t *Transcript) *Env {
	return &Env{
		ID:      id,
		Ensurer: tools.NewEnsurer(id),
		Probe:   platform.IsCommandAvailable,
		Run:     execute.Run,
		T:       t,
	}
}

// Candidate is one entry in a step's fallback chain.
type Candidate struct {
	Tool tools.Tool
	Args []string
	// Sudo runs the command through the elevation prefix.
	Sudo bool
	// EnsureOnMiss installs Tool.Package when the command is absent.
	EnsureOnMiss bool
	// NextOnNonZero falls through to the next candidate on nonzero exit
	// (net group on a workgroup machine is an expected nonzero).
	NextOnNonZero bool
	// WarnOnNonZero narrates nonzero exit as a warning but still counts the
	// candidate as executed.
	WarnOnNonZero bool
}

// Step is one technique category, created fresh per run and mutated only by
// its own execution.
type Step struct {
	Name      string
	Technique string

	state     State
	candidate int
	outcome   Outcome
	duration  time.Duration

	run func(rc *scout_io.RuntimeContext, env *Env, s *Step)
}

func (s *Step) Outcome() Outcome {
	if s.outcome == "" {
		return OutcomeNotStarted
	}
	return s.outcome
}

func (s *Step) State() State { return s.state }

// Execute runs the step to its terminal state. Errors never escape; they are
// narrated into the transcript and absorbed here.
func (s *Step) Execute(rc *scout_io.RuntimeContext, env *Env) {
	logger := otelzap.Ctx(rc.Ctx)
	env.T.Header(s.Technique, s.Name)
	s.run(rc, env, s)
	logger.Info("Step finished",
		zap.String("step", s.Name),
		zap.String("technique", s.Technique),
		zap.String("outcome", string(s.Outcome())))
}

// runChain walks the candidate chain strictly in order. The first candidate
// present (or made present) executes and terminates the chain; exhausting it
// terminates in SkippedNoToolAvailable.
func (s *Step) runChain(rc *scout_io.RuntimeContext, env *Env, candidates []Candidate) {
	viaFallbackCommand := false

	for i, c := range candidates {
		s.state = StateTryingCandidate
		s.candidate = i

		available := env.Probe(c.Tool.Command)
		if !available && c.EnsureOnMiss {
			env.T.Attempt("%s not found; attempting to install %s", c.Tool.Command, c.Tool.Package)
			available = env.Ensurer.Ensure(rc, c.Tool)
			if !available {
				env.T.Failure("could not provision %s", c.Tool.Package)
			}
		}
		if !available {
			env.T.Attempt("%s unavailable; trying next option", c.Tool.Command)
			continue
		}

		opts := execute.Options{Command: c.Tool.Command, Args: c.Args, Sudo: c.Sudo}
		res, err := env.Run(rc.Ctx, opts)
		env.T.Output(res.Output)

		if err != nil {
			switch {
			case c.NextOnNonZero:
				env.T.Attempt("%s exited %d; falling back", c.Tool.Command, res.ExitCode)
				viaFallbackCommand = true
				continue
			case c.WarnOnNonZero:
				env.T.Attempt("%s exited %d (continuing)", c.Tool.Command, res.ExitCode)
			default:
				env.T.Failure("%s failed: exit %d", c.Tool.Command, res.ExitCode)
			}
		}

		s.state = StateSucceeded
		switch {
		case viaFallbackCommand:
			s.outcome = OutcomeExecutedViaFallbackCommand
		case i > 0:
			s.outcome = OutcomeExecutedViaFallbackTool
		default:
			s.outcome = OutcomeExecuted
		}
		env.T.Success("%s via %s", s.Name, c.Tool.Command)
		return
	}

	s.state = StateSkippedNoToolAvailable
	s.outcome = OutcomeSkippedNoToolAvailable
	env.T.Failure("%s: no usable tool found", s.Name)
}

// skipUnsupported terminates the step for platforms with no candidate list.
func (s *Step) skipUnsupported(env *Env) {
	s.state = StateSkippedUnsupportedPlatform
	s.outcome = OutcomeSkippedUnsupportedPlatform
	env.T.Failure("%s: unsupported platform %s", s.Name, env.ID.Family)
}
