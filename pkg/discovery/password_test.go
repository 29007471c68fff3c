package discovery

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
)

func TestPasswordPolicyReadsLoginDefs(t *testing.T) {
	fixture := filepath.Join(t.TempDir(), "login.defs")
	content := "# comment\nPASS_MAX_DAYS\t99999\nPASS_MIN_DAYS\t0\nUMASK\t022\nPASS_WARN_AGE\t7\n"
	if err := os.WriteFile(fixture, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	orig := loginDefsPath
	loginDefsPath = fixture
	defer func() { loginDefsPath = orig }()

	host := &fakeHost{}
	env, buf := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, &fakeEnsurer{host: host})

	s := newPasswordPolicyStep()
	s.run(testRC(t), env, s)

	assert.Equal(t, OutcomeExecuted, s.Outcome())
	assert.Contains(t, buf.String(), "PASS_MAX_DAYS")
	assert.Contains(t, buf.String(), "PASS_WARN_AGE")
	assert.NotContains(t, buf.String(), "UMASK")
}

func TestPasswordPolicyMissingFileIsNonFatal(t *testing.T) {
	orig := loginDefsPath
	loginDefsPath = filepath.Join(t.TempDir(), "absent.defs")
	defer func() { loginDefsPath = orig }()

	host := &fakeHost{}
	env, buf := newFakeEnv(platform.Identity{
		Family: platform.FamilyLinux,
		Distro: platform.DistroUbuntu,
	}, host, &fakeEnsurer{host: host})

	s := newPasswordPolicyStep()
	s.run(testRC(t), env, s)

	assert.Equal(t, OutcomeSkippedNoToolAvailable, s.Outcome())
	assert.Contains(t, buf.String(), "file absent")
}

func TestPasswordPolicyWindowsFallsBackToWmic(t *testing.T) {
	t.Parallel()

	host := &fakeHost{
		present: map[string]bool{"net": true, "wmic": true},
		exits:   map[string]int{"net accounts": 1},
	}
	env, _ := newFakeEnv(platform.Identity{
		Family: platform.FamilyWindows,
		Distro: platform.DistroUnknown,
	}, host, &fakeEnsurer{host: host})

	s := newPasswordPolicyStep()
	s.run(testRC(t), env, s)

	assert.Equal(t, OutcomeExecutedViaFallbackCommand, s.Outcome())
	assert.Contains(t, host.ran, "wmic useraccount get name,passwordrequired,passwordexpires")
}
