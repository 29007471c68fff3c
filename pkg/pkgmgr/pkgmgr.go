// pkg/pkgmgr/pkgmgr.go

// Package pkgmgr resolves and drives the host's package manager. Dispatch is
// keyed on the detected platform identity, first by family, then (for Linux)
// by distribution. The installer's own exit status is never the success
// signal; callers re-probe the tool's presence afterwards.
package pkgmgr

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

// Manager installs packages through whatever client the platform provides.
// The probe and run seams exist so tests can simulate hosts scout is not
// running on.
type Manager struct {
	probe func(string) bool
	run   func(context.Context, execute.Options) (execute.Result, error)
}

func NewManager() *Manager {
	return &Manager{
		probe: platform.IsCommandAvailable,
		run:   execute.Run,
	}
}

// Install provisions packageName for the given platform identity.
func (m *Manager) Install(rc *scout_io.RuntimeContext, packageName, description string, id platform.Identity) error {
	logger := otelzap.Ctx(rc.Ctx)
	logger.Info("Attempting package install",
		zap.String("package", packageName),
		zap.String("description", description),
		zap.String("family", string(id.Family)),
		zap.String("distro", string(id.Distro)))

	switch id.Family {
	case platform.FamilyLinux:
		return m.installLinux(rc, packageName, id)
	case platform.FamilyDarwin:
		return m.installDarwin(rc, packageName)
	case platform.FamilyWindows:
		return m.installWindows(rc, packageName)
	default:
		return cerr.Wrapf(ErrUnsupportedPlatform, "family %s", id.Family)
	}
}

func (m *Manager) installLinux(rc *scout_io.RuntimeContext, packageName string, id platform.Identity) error {
	switch {
	case id.IsRHELFamily():
		return m.installRHEL(rc, packageName)
	case id.IsDebianFamily():
		return m.installDebian(rc, packageName)
	default:
		// Unrecognized distro: fail immediately, no blind attempt.
		return cerr.Wrapf(ErrUnsupportedDistro, "distro %s", id.Distro)
	}
}

// installRHEL prefers yum and falls back to dnf when yum is absent.
func (m *Manager) installRHEL(rc *scout_io.RuntimeContext, packageName string) error {
	logger := otelzap.Ctx(rc.Ctx)

	var verb string
	switch {
	case m.probe("yum"):
		verb = "yum"
	case m.probe("dnf"):
		verb = "dnf"
	default:
		return cerr.Wrap(ErrUnsupportedManager, "neither yum nor dnf on PATH")
	}

	logger.Info("Installing via RHEL-family manager",
		zap.String("manager", verb), zap.String("package", packageName))
	_, err := m.run(rc.Ctx, execute.Options{
		Command: verb,
		Args:    []string{"install", "-y", packageName},
		Sudo:    true,
	})
	return err
}

// installDebian refreshes the index and installs through apt-get.
func (m *Manager) installDebian(rc *scout_io.RuntimeContext, packageName string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if !m.probe("apt-get") {
		return cerr.Wrap(ErrUnsupportedManager, "apt-get not on PATH")
	}

	logger.Info("Installing via apt-get", zap.String("package", packageName))
	if _, err := m.run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"update", "-y"},
		Sudo:    true,
	}); err != nil {
		// A stale index is not fatal to the install attempt itself.
		logger.Warn("apt-get update failed; trying install anyway", zap.Error(err))
	}

	_, err := m.run(rc.Ctx, execute.Options{
		Command: "apt-get",
		Args:    []string{"install", "-y", packageName},
		Sudo:    true,
	})
	return err
}

func (m *Manager) installDarwin(rc *scout_io.RuntimeContext, packageName string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if !m.probe("brew") {
		logger.Warn("Homebrew not found; bootstrapping")
		if err := m.bootstrapHomebrew(rc); err != nil {
			return cerr.WithHint(
				cerr.Wrap(err, "failed to install Homebrew"),
				"install manually from https://brew.sh")
		}
		// Re-detect: the bootstrap script's exit status is not trusted.
		if !m.probe("brew") {
			return cerr.Wrap(ErrBootstrapFailed, "brew still absent after bootstrap")
		}
	}

	logger.Info("Installing via Homebrew", zap.String("package", packageName))
	_, err := m.run(rc.Ctx, execute.Options{
		Command: "brew",
		Args:    []string{"install", packageName},
	})
	return err
}

func (m *Manager) installWindows(rc *scout_io.RuntimeContext, packageName string) error {
	logger := otelzap.Ctx(rc.Ctx)

	if !m.probe("choco") {
		logger.Warn("Chocolatey not found; bootstrapping")
		if err := m.bootstrapChocolatey(rc); err != nil {
			return cerr.WithHint(
				cerr.Wrap(err, "failed to install Chocolatey"),
				"install manually from https://chocolatey.org/install")
		}
		if !m.probe("choco") {
			return cerr.Wrap(ErrBootstrapFailed, "choco still absent after bootstrap")
		}
	}

	logger.Info("Installing via Chocolatey", zap.String("package", packageName))
	_, err := m.run(rc.Ctx, execute.Options{
		Command: "choco",
		Args:    []string{"install", "-y", packageName},
	})
	return err
}
