// pkg/execute/execute.go

package execute

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_err"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/telemetry"
)

// Options describes one process invocation. Commands always run argv-style;
// there is no shell mode.
type Options struct {
	Command string
	Args    []string
	Dir     string
	Timeout time.Duration
	// Sudo prepends the privilege-elevation prefix. The caller decides when
	// elevation is required; execute only does the prepending.
	Sudo bool
	// Logger overrides the global logger when set.
	Logger *zap.Logger
}

// Result is the structured outcome of one invocation. Exit status is carried
// explicitly; callers decide what a nonzero status means for them.
type Result struct {
	Output   string
	ExitCode int
}

// Run executes a command and returns its combined output plus exit status.
// A nonzero exit comes back as both Result.ExitCode and a wrapped error, so
// callers that expect nonzero (net group on a workgroup machine) can keep the
// output and ignore the error.
func Run(ctx context.Context, opts Options) (Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	// No default deadline: discovery commands run as long as they need to.
	rc := ctx
	if opts.Timeout > 0 {
		var cancel context.CancelFunc
		rc, cancel = context.WithTimeout(ctx, opts.Timeout)
		defer cancel()
	}

	name, args := opts.Command, opts.Args
	if opts.Sudo {
		args = append([]string{name}, args...)
		name = "sudo"
	}
	cmdStr := buildCommandString(name, args...)

	rc, span := telemetry.Start(rc, "execute.Run")
	defer span.End()
	span.SetAttributes(
		attribute.String("command", name),
		attribute.String("args", strings.Join(args, " ")),
	)

	logger.Debug("Starting execution", zap.String("command", cmdStr))

	cmd := exec.CommandContext(rc, name, args...)
	if opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	err := cmd.Run()
	res := Result{Output: buf.String(), ExitCode: exitCode(cmd, err)}

	if err != nil {
		summary := scout_err.ExtractSummary(res.Output, 2)
		span.RecordError(err)
		logger.Debug("Execution failed",
			zap.String("command", cmdStr),
			zap.Int("exit_code", res.ExitCode),
			zap.String("summary", summary),
		)
		return res, cerr.Wrapf(err, "command %q failed", cmdStr)
	}

	logger.Debug("Execution succeeded", zap.String("command", cmdStr))
	return res, nil
}

// RunSimple executes a command, discarding output, for callers that only
// care whether it succeeded.
func RunSimple(ctx context.Context, cmd string, args ...string) error {
	_, err := Run(ctx, Options{Command: cmd, Args: args})
	return err
}

func exitCode(cmd *exec.Cmd, err error) int {
	if cmd.ProcessState != nil {
		return cmd.ProcessState.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func buildCommandString(command string, args ...string) string {
	return command + " " + strings.Join(args, " ")
}
