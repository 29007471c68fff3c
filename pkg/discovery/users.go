// pkg/discovery/users.go

package discovery

import (
	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// System Owner/User Discovery.
func newUserIdentityStep() *Step {
	return &Step{
		Name:      "User identity",
		Technique: "T1033",
		run:       runUserIdentity,
	}
}

// runUserIdentity has no platform branching and no failure path: whoami is
// universal and the logged-in-users listing degrades to a note where absent.
func runUserIdentity(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	res, err := env.Run(rc.Ctx, execute.Options{Command: "whoami"})
	if err == nil {
		env.T.Success("Current user")
	} else {
		env.T.Failure("whoami failed: exit %d", res.ExitCode)
	}
	env.T.Output(res.Output)

	if env.Probe("who") {
		res, err = env.Run(rc.Ctx, execute.Options{Command: "who"})
		if err == nil {
			env.T.Success("Logged-in users")
		} else {
			env.T.Failure("who failed: exit %d", res.ExitCode)
		}
		env.T.Output(res.Output)
	} else {
		env.T.Attempt("who unavailable on this platform")
	}

	s.state = StateSucceeded
	s.outcome = OutcomeExecuted
}

// Account Discovery: Local Account.
func newLocalAccountsStep() *Step {
	return &Step{
		Name:      "Local accounts",
		Technique: "T1087.001",
		run:       runLocalAccounts,
	}
}

func runLocalAccounts(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	switch {
	case env.ID.IsWindows():
		s.runChain(rc, env, []Candidate{
			{
				Tool:         tools.Tool{Command: "net", Package: "net", Description: "local group lister"},
				Args:         []string{"localgroup", "administrators"},
				EnsureOnMiss: true,
			},
		})

	case env.ID.IsLinux(), env.ID.IsDarwin():
		// The admin group and the glibc package that ships getent both vary
		// by distro family.
		group, pkg := "wheel", "glibc-common"
		if env.ID.IsDebianFamily() {
			group, pkg = "sudo", "libc-bin"
		}
		s.runChain(rc, env, []Candidate{
			{
				Tool:         tools.Tool{Command: "getent", Package: pkg, Description: "group entry lookup"},
				Args:         []string{"group", group},
				EnsureOnMiss: true,
			},
		})

	default:
		s.skipUnsupported(env)
	}
}
