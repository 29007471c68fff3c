// pkg/pkgmgr/bootstrap.go

package pkgmgr

import (
	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

// Bootstrap installers fetch-and-execute the managers' official install
// scripts. These are the self-hosting cases: the manager installs itself.

const homebrewInstaller = `/bin/bash -c "$(curl -fsSL https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh)"`

const chocolateyInstaller = `Set-ExecutionPolicy Bypass -Scope Process -Force; ` +
	`[System.Net.ServicePointManager]::SecurityProtocol = [System.Net.ServicePointManager]::SecurityProtocol -bor 3072; ` +
	`iex ((New-Object System.Net.WebClient).DownloadString('https://community.chocolatey.org/install.ps1'))`

func (m *Manager) bootstrapHomebrew(rc *scout_io.RuntimeContext) error {
	_, err := m.run(rc.Ctx, execute.Options{
		Command: "/bin/bash",
		Args:    []string{"-c", homebrewInstaller},
	})
	return err
}

func (m *Manager) bootstrapChocolatey(rc *scout_io.RuntimeContext) error {
	_, err := m.run(rc.Ctx, execute.Options{
		Command: "powershell",
		Args:    []string{"-NoProfile", "-ExecutionPolicy", "Bypass", "-Command", chocolateyInstaller},
	})
	return err
}
