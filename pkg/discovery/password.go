// pkg/discovery/password.go

package discovery

import (
	"bufio"
	"os"
	"strings"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// loginDefsPath is a var so tests can point it at a fixture.
var loginDefsPath = "/etc/login.defs"

// ErrMissingDataFile reports an absent policy file; non-fatal, narrated only.
var ErrMissingDataFile = cerr.New("policy data file not found")

// Password Policy Discovery.
func newPasswordPolicyStep() *Step {
	return &Step{
		Name:      "Password policy",
		Technique: "T1201",
		run:       runPasswordPolicy,
	}
}

func runPasswordPolicy(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	switch {
	case env.ID.IsWindows():
		s.runChain(rc, env, []Candidate{
			{
				Tool:          tools.Tool{Command: "net"},
				Args:          []string{"accounts"},
				NextOnNonZero: true,
			},
			{
				Tool: tools.Tool{Command: "wmic"},
				Args: []string{"useraccount", "get", "name,passwordrequired,passwordexpires"},
			},
		})

	case env.ID.IsLinux(), env.ID.IsDarwin():
		runLoginDefs(rc, env, s)

	default:
		s.skipUnsupported(env)
	}
}

// runLoginDefs reads the login defaults file directly; there is no command
// in this chain. Absence is reported, never fatal.
func runLoginDefs(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	logger := otelzap.Ctx(rc.Ctx)
	s.state = StateTryingCandidate

	file, err := os.Open(loginDefsPath)
	if err != nil {
		err = cerr.Wrapf(ErrMissingDataFile, "%s", loginDefsPath)
		logger.Warn("Password policy file unavailable", zap.Error(err))
		env.T.Failure("cannot read %s: file absent", loginDefsPath)
		s.state = StateSkippedNoToolAvailable
		s.outcome = OutcomeSkippedNoToolAvailable
		return
	}
	defer file.Close()

	var policy []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if strings.HasPrefix(line, "PASS_") {
			policy = append(policy, line)
		}
	}

	env.T.Success("Login defaults from %s", loginDefsPath)
	env.T.Output(strings.Join(policy, "\n"))
	s.state = StateSucceeded
	s.outcome = OutcomeExecuted
}
