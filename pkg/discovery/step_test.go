package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/tools"
)

func linuxEnv(host *fakeHost, ensurer *fakeEnsurer) (*Env, *fakeEnsurer) {
	if ensurer == nil {
		ensurer = &fakeEnsurer{host: host}
	}
	ensurer.host = host
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, ensurer)
	return env, ensurer
}

func TestRunChainFirstCandidateWins(t *testing.T) {
	t.Parallel()

	host := &fakeHost{present: map[string]bool{"ip": true}}
	env, _ := linuxEnv(host, nil)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "ip"}, Args: []string{"addr"}},
		{Tool: tools.Tool{Command: "ifconfig"}, Args: []string{"-a"}},
	})

	assert.Equal(t, OutcomeExecuted, s.Outcome())
	assert.Equal(t, StateSucceeded, s.State())
	assert.Equal(t, []string{"ip addr"}, host.ran)
}

func TestRunChainFallsBackToNextTool(t *testing.T) {
	t.Parallel()

	host := &fakeHost{present: map[string]bool{"ifconfig": true}}
	env, _ := linuxEnv(host, nil)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "ip"}, Args: []string{"addr"}},
		{Tool: tools.Tool{Command: "ifconfig"}, Args: []string{"-a"}},
	})

	assert.Equal(t, OutcomeExecutedViaFallbackTool, s.Outcome())
	assert.Equal(t, []string{"ifconfig -a"}, host.ran)
}

func TestRunChainExhaustsEveryCandidate(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	env, ensurer := linuxEnv(host, nil)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "a"}},
		{Tool: tools.Tool{Command: "b", Package: "pkg-b"}, EnsureOnMiss: true},
		{Tool: tools.Tool{Command: "c", Package: "pkg-c"}, EnsureOnMiss: true},
	})

	assert.Equal(t, OutcomeSkippedNoToolAvailable, s.Outcome())
	assert.Equal(t, StateSkippedNoToolAvailable, s.State())
	// No candidate silently skipped: both installable candidates attempted.
	assert.Equal(t, []string{"pkg-b", "pkg-c"}, ensurer.calls)
	assert.Empty(t, host.ran)
}

func TestRunChainEnsureMakesToolPresent(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	ensurer := &fakeEnsurer{succeed: map[string]bool{"iproute2": true}}
	env, _ := linuxEnv(host, ensurer)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "ip", Package: "iproute2"}, Args: []string{"addr"}, EnsureOnMiss: true},
	})

	assert.Equal(t, OutcomeExecuted, s.Outcome())
	assert.Equal(t, []string{"ip addr"}, host.ran)
}

func TestRunChainNextOnNonZero(t *testing.T) {
	t.Parallel()

	host := &fakeHost{
		present: map[string]bool{"net": true, "wmic": true},
		exits:   map[string]int{"net group Domain Computers /domain": 2},
	}
	env, _ := linuxEnv(host, nil)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "net"}, Args: []string{"group", "Domain Computers", "/domain"}, NextOnNonZero: true},
		{Tool: tools.Tool{Command: "wmic"}, Args: []string{"ntdomain", "list", "brief"}},
	})

	assert.Equal(t, OutcomeExecutedViaFallbackCommand, s.Outcome())
	require.Len(t, host.ran, 2)
	assert.Equal(t, "wmic ntdomain list brief", host.ran[1])
}

func TestRunChainWarnOnNonZeroStillExecutes(t *testing.T) {
	t.Parallel()

	host := &fakeHost{
		present: map[string]bool{"pwsh": true},
		exits:   map[string]int{"pwsh -Command " + smbShareQuery: 1},
	}
	env, _ := linuxEnv(host, nil)
	s := &Step{Name: "test", Technique: "T0000"}

	s.runChain(testRC(t), env, []Candidate{
		{Tool: tools.Tool{Command: "pwsh"}, Args: []string{"-Command", smbShareQuery}, WarnOnNonZero: true},
		{Tool: tools.Tool{Command: "powershell"}, Args: []string{"-Command", smbShareQuery}, WarnOnNonZero: true},
	})

	assert.Equal(t, OutcomeExecuted, s.Outcome())
	require.Len(t, host.ran, 1)
}

func TestSkipUnsupported(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyUnknown,
		Distro: platform.DistroUnknown,
	}, host, &fakeEnsurer{host: host})
	s := &Step{Name: "test", Technique: "T0000"}

	s.skipUnsupported(env)

	assert.Equal(t, OutcomeSkippedUnsupportedPlatform, s.Outcome())
	assert.Equal(t, StateSkippedUnsupportedPlatform, s.State())
}
