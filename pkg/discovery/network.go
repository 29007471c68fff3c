// pkg/discovery/network.go

package discovery

import (
	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

// System Network Configuration Discovery.
func newNetworkConfigStep() *Step {
	return &Step{
		Name:      "Network configuration",
		Technique: "T1016",
		run:       runNetworkConfig,
	}
}

// runNetworkConfig runs three independent sub-probes in sequence, each with
// its own candidate chain; one sub-probe coming up empty never stops the
// others.
func runNetworkConfig(rc *scout_io.RuntimeContext, env *Env, s *Step) {
	if env.ID.Family == platform.FamilyUnknown {
		s.skipUnsupported(env)
		return
	}

	subs := []struct {
		name       string
		candidates []Candidate
	}{
		{"Interfaces", interfaceCandidates(env)},
		{"Routing table", routingCandidates(env)},
		{"Shares and mounts", mountCandidates(env)},
	}

	outcomes := make([]Outcome, 0, len(subs))
	for _, sub := range subs {
		probe := &Step{Name: sub.name, Technique: s.Technique}
		if len(sub.candidates) == 0 {
			probe.skipUnsupported(env)
		} else {
			probe.runChain(rc, env, sub.candidates)
		}
		outcomes = append(outcomes, probe.Outcome())
	}

	s.finishFromSubOutcomes(env, outcomes)
}

// finishFromSubOutcomes folds sub-probe outcomes into one terminal state:
// any success carries the step, a fallback anywhere is reported as such.
func (s *Step) finishFromSubOutcomes(env *Env, outcomes []Outcome) {
	var executed, fallbackTool, fallbackCommand bool
	for _, o := range outcomes {
		switch o {
		case OutcomeExecuted:
			executed = true
		case OutcomeExecutedViaFallbackTool:
			executed, fallbackTool = true, true
		case OutcomeExecutedViaFallbackCommand:
			executed, fallbackCommand = true, true
		}
	}

	switch {
	case !executed:
		s.state = StateSkippedNoToolAvailable
		s.outcome = OutcomeSkippedNoToolAvailable
	case fallbackCommand:
		s.state = StateSucceeded
		s.outcome = OutcomeExecutedViaFallbackCommand
	case fallbackTool:
		s.state = StateSucceeded
		s.outcome = OutcomeExecutedViaFallbackTool
	default:
		s.state = StateSucceeded
		s.outcome = OutcomeExecuted
	}
}

func interfaceCandidates(env *Env) []Candidate {
	if env.ID.IsWindows() {
		return []Candidate{
			{Tool: tools.Tool{Command: "ipconfig"}, Args: []string{"/all"}},
		}
	}
	return []Candidate{
		{Tool: tools.Tool{Command: "ip"}, Args: []string{"addr"}},
		{Tool: tools.Tool{Command: "ifconfig"}, Args: []string{"-a"}},
		{
			Tool:         tools.Tool{Command: "ip", Package: "iproute2", Description: "modern interface tool"},
			Args:         []string{"addr"},
			EnsureOnMiss: true,
		},
		{
			Tool:         tools.Tool{Command: "ifconfig", Package: "net-tools", Description: "legacy interface tool"},
			Args:         []string{"-a"},
			EnsureOnMiss: true,
		},
	}
}

func routingCandidates(env *Env) []Candidate {
	if env.ID.IsWindows() {
		return []Candidate{
			{Tool: tools.Tool{Command: "netstat"}, Args: []string{"-rn"}},
			{Tool: tools.Tool{Command: "route"}, Args: []string{"print"}},
		}
	}
	return []Candidate{
		{Tool: tools.Tool{Command: "netstat"}, Args: []string{"-rn"}},
		{Tool: tools.Tool{Command: "route"}, Args: []string{"-n"}},
		{Tool: tools.Tool{Command: "ip"}, Args: []string{"route"}},
		{
			Tool:         tools.Tool{Command: "netstat", Package: "net-tools", Description: "routing table tool"},
			Args:         []string{"-rn"},
			EnsureOnMiss: true,
		},
	}
}

func mountCandidates(env *Env) []Candidate {
	if env.ID.IsWindows() {
		return []Candidate{
			{Tool: tools.Tool{Command: "net"}, Args: []string{"share"}},
			{Tool: tools.Tool{Command: "wmic"}, Args: []string{"share", "list", "brief"}},
		}
	}
	return []Candidate{
		{Tool: tools.Tool{Command: "df"}, Args: []string{"-h"}},
		{
			Tool:         tools.Tool{Command: "df", Package: "coreutils", Description: "disk free tool"},
			Args:         []string{"-h"},
			EnsureOnMiss: true,
		},
	}
}
