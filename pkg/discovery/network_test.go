package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
)

// Ubuntu host with no ip/ifconfig and both installs failing: the interfaces
// sub-probe walks its whole chain and the routing sub-probe still runs.
func TestNetworkConfigInterfacesExhaustedRoutingStillRuns(t *testing.T) {
	t.Parallel()

	host := &fakeHost{present: map[string]bool{"netstat": true, "df": true}}
	ensurer := &fakeEnsurer{host: host}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, ensurer)

	s := newNetworkConfigStep()
	s.run(testRC(t), env, s)

	// ip (absent) → ifconfig (absent) → install iproute2 → install net-tools.
	assert.Equal(t, []string{"iproute2", "net-tools"}, ensurer.calls)
	// Routing and mounts proceeded regardless.
	assert.Contains(t, host.ran, "netstat -rn")
	assert.Contains(t, host.ran, "df -h")
	assert.Equal(t, OutcomeExecuted, s.Outcome())
}

func TestNetworkConfigInstallRecoversInterfaces(t *testing.T) {
	t.Parallel()

	host := &fakeHost{present: map[string]bool{"netstat": true, "df": true}}
	ensurer := &fakeEnsurer{host: host, succeed: map[string]bool{"iproute2": true}}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, ensurer)

	s := newNetworkConfigStep()
	s.run(testRC(t), env, s)

	assert.Contains(t, host.ran, "ip addr")
	// Interfaces succeeded via the third candidate; the step reports it.
	assert.Equal(t, OutcomeExecutedViaFallbackTool, s.Outcome())
}

func TestNetworkConfigNothingAvailable(t *testing.T) {
	t.Parallel()

	host := &fakeHost{}
	ensurer := &fakeEnsurer{host: host}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, ensurer)

	s := newNetworkConfigStep()
	s.run(testRC(t), env, s)

	assert.Equal(t, OutcomeSkippedNoToolAvailable, s.Outcome())
	assert.Empty(t, host.ran)
}

func TestNetworkConfigWindowsChains(t *testing.T) {
	t.Parallel()

	host := &fakeHost{present: map[string]bool{
		"ipconfig": true, "netstat": true, "net": true,
	}}
	ensurer := &fakeEnsurer{host: host}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyWindows,
		Distro: platform.DistroUnknown,
	}, host, ensurer)

	s := newNetworkConfigStep()
	s.run(testRC(t), env, s)

	assert.Equal(t, OutcomeExecuted, s.Outcome())
	assert.Contains(t, host.ran, "ipconfig /all")
	assert.Contains(t, host.ran, "net share")
}
