// pkg/discovery/shares.go

package discovery

import (
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

const smbShareQuery = "Import-Module SmbShare; Get-SmbShare"

// Network Share Discovery.
func newNetworkSharesStep() *Step {
	return &Step{
		Name:      "Network shares",
		Technique: "T1135",
		run:       runNetworkShares,
	}
}

func runNetworkShares(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	switch {
	case env.ID.IsWindows():
		// A module call coming back nonzero is a warning, not an abort.
		s.runChain(rc, env, []Candidate{
			{
				Tool:          tools.Tool{Command: "pwsh"},
				Args:          []string{"-Command", smbShareQuery},
				WarnOnNonZero: true,
			},
			{
				Tool:          tools.Tool{Command: "powershell"},
				Args:          []string{"-Command", smbShareQuery},
				WarnOnNonZero: true,
			},
		})

	case env.ID.IsLinux(), env.ID.IsDarwin():
		s.runChain(rc, env, []Candidate{
			{Tool: tools.Tool{Command: "smbclient"}, Args: []string{"-L", "localhost", "-N"}},
			{Tool: tools.Tool{Command: "nmblookup"}, Args: []string{"-S", "WORKGROUP"}},
			{
				Tool:         tools.Tool{Command: "smbclient", Package: "smbclient", Description: "SMB share lister"},
				Args:         []string{"-L", "localhost", "-N"},
				EnsureOnMiss: true,
			},
		})

	default:
		s.skipUnsupported(env)
	}
}
