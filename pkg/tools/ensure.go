// pkg/tools/ensure.go

// Package tools makes a named tool usable, installing it when absent.
package tools

import (
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/pkgmgr"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/platform"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

// Tool is a capability: the command name checked on PATH and the package
// that provides it. The two are distinct on purpose — a command and its
// distribution package are not always named alike (ip lives in iproute2).
type Tool struct {
	Command     string
	Package     string
	Description string
}

// Installer is the slice of pkgmgr the ensurer needs.
type Installer interface {
	Install(rc *scout_io.RuntimeContext, packageName, description string, id platform.Identity) error
}

// Ensurer composes the presence probe with the package resolver into one
// idempotent "make tool usable" operation.
type Ensurer struct {
	id        platform.Identity
	probe     func(string) bool
	installer Installer
}

func NewEnsurer(id platform.Identity) *Ensurer {
	return &Ensurer{
		id:        id,
		probe:     platform.IsCommandAvailable,
		installer: pkgmgr.NewManager(),
	}
}

// Ensure reports whether tool.Command is usable, installing tool.Package
// first when it is not. Already-present tools are a fast no-op; nothing is
// ever reinstalled. The return value is the post-install re-probe — ground
// truth regardless of what the installer claimed — and false means "degrade
// gracefully", never "abort".
func (e *Ensurer) Ensure(rc *scout_io.RuntimeContext, tool Tool) bool {
	logger := otelzap.Ctx(rc.Ctx)

	if e.probe(tool.Command) {
		logger.Debug("Tool already available", zap.String("tool", tool.Command))
		return true
	}

	logger.Info("Tool missing; attempting install",
		zap.String("tool", tool.Command),
		zap.String("package", tool.Package))

	if err := e.installer.Install(rc, tool.Package, tool.Description, e.id); err != nil {
		logger.Warn("Package install did not succeed",
			zap.String("package", tool.Package),
			zap.Error(err))
	}

	// The re-probe decides, not the installer's exit status: a wrapper
	// package can install cleanly without the binary landing on PATH.
	available := e.probe(tool.Command)
	if available {
		logger.Info("Tool now available after install", zap.String("tool", tool.Command))
	} else {
		logger.Warn("Tool still missing after install attempt", zap.String("tool", tool.Command))
	}
	return available
}
