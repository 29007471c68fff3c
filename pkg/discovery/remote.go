// pkg/discovery/remote.go

package discovery

import (
	"fmt"
	"net"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// Remote System Discovery.
func newRemoteSystemsStep() *Step {
	return &Step{
		Name:      "Remote systems",
		Technique: "T1018",
		run:       runRemoteSystems,
	}
}

func runRemoteSystems(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	switch {
	case env.ID.IsWindows():
		s.runChain(rc, env, []Candidate{
			{
				Tool:          tools.Tool{Command: "net"},
				Args:          []string{"group", "Domain Computers", "/domain"},
				NextOnNonZero: true, // expected nonzero on a workgroup machine
			},
			{Tool: tools.Tool{Command: "wmic"}, Args: []string{"ntdomain", "list", "brief"}},
		})

	case env.ID.IsDarwin():
		// No install fallback here: the non-interactive Homebrew formula set
		// does not carry these scanners, so only a suggestion is printed.
		s.runChain(rc, env, []Candidate{
			{Tool: tools.Tool{Command: "nmap"}, Args: []string{"-sn", localSubnet()}},
			{Tool: tools.Tool{Command: "arp-scan"}, Args: []string{"--localnet"}, Sudo: true},
		})
		if s.Outcome() == OutcomeSkippedNoToolAvailable {
			env.T.Attempt("install nmap or arp-scan manually to sweep the local subnet")
		}

	case env.ID.IsLinux():
		candidates := []Candidate{}
		if subnet := localSubnet(); subnet != "" {
			candidates = append(candidates, Candidate{
				Tool:         tools.Tool{Command: "nmap", Package: "nmap", Description: "subnet sweep scanner"},
				Args:         []string{"-sn", subnet},
				EnsureOnMiss: true,
			})
		} else {
			env.T.Attempt("could not determine local subnet; skipping ping sweep")
		}
		candidates = append(candidates, Candidate{
			Tool:         tools.Tool{Command: "arp-scan", Package: "arp-scan", Description: "ARP-based scanner"},
			Args:         []string{"--localnet"},
			Sudo:         true,
			EnsureOnMiss: true,
		})
		s.runChain(rc, env, candidates)

	default:
		s.skipUnsupported(env)
	}
}

// localSubnet derives the /24 around the preferred outbound address. The UDP
// dial never sends a packet; it only asks the kernel for a route.
func localSubnet() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP.To4() == nil {
		return ""
	}
	network := addr.IP.To4().Mask(net.CIDRMask(24, 32))
	return fmt.Sprintf("%s/24", network)
}
