// pkg/platform/detect.go

package platform

import (
	"bufio"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/execute"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

const osReleasePath = "/etc/os-release"

// distroIDs maps the /etc/os-release ID field to the closed Distro set.
// Anything not listed is DistroUnknown; adding a distro is a data change.
var distroIDs = map[string]Distro{
	"amzn":   DistroAmazonLinux,
	"ubuntu": DistroUbuntu,
	"fedora": DistroFedora,
	"centos": DistroCentOS,
	"debian": DistroDebian,
}

// Detect classifies the host. Called exactly once per run; there is no
// failure mode — anything unrecognized comes back Unknown/Unknown.
func Detect(rc *scout_io.RuntimeContext) Identity {
	logger := otelzap.Ctx(rc.Ctx)

	id := Identity{Family: detectFamily(), Distro: DistroUnknown}
	id.Kernel = kernelIdentity(rc, id.Family)

	// An emulation layer (MINGW/MSYS/CYGWIN) reports a Windows kernel even
	// when the build target says otherwise; the kernel line wins.
	if fam := classifyKernel(id.Kernel); fam != FamilyUnknown && fam != id.Family {
		id.Family = fam
	}

	if id.Family == FamilyLinux {
		if file, err := os.Open(osReleasePath); err == nil {
			id.Distro = parseOSReleaseID(file)
			file.Close()
		} else {
			// Family stands even without the descriptor file.
			logger.Debug("No os-release descriptor; distro unknown",
				zap.String("path", osReleasePath))
		}
	}

	logger.Info("Platform detected",
		zap.String("family", string(id.Family)),
		zap.String("distro", string(id.Distro)))
	return id
}

func detectFamily() OSFamily {
	switch runtime.GOOS {
	case "linux":
		return FamilyLinux
	case "darwin":
		return FamilyDarwin
	case "windows":
		return FamilyWindows
	default:
		return FamilyUnknown
	}
}

// classifyKernel maps a kernel identity string to a family by prefix. Covers
// the emulation-layer case where uname on Windows reports MINGW/MSYS/CYGWIN.
func classifyKernel(kernel string) OSFamily {
	switch {
	case strings.HasPrefix(kernel, "Linux"):
		return FamilyLinux
	case strings.HasPrefix(kernel, "Darwin"):
		return FamilyDarwin
	case strings.HasPrefix(kernel, "MINGW"),
		strings.HasPrefix(kernel, "MSYS"),
		strings.HasPrefix(kernel, "CYGWIN"):
		return FamilyWindows
	default:
		return FamilyUnknown
	}
}

// parseOSReleaseID scans os-release content for the ID field and maps it
// through the fixed distro table.
func parseOSReleaseID(r io.Reader) Distro {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "ID=") {
			continue
		}
		value := strings.Trim(strings.TrimPrefix(line, "ID="), `"`)
		if distro, ok := distroIDs[value]; ok {
			return distro
		}
		return DistroUnknown
	}
	return DistroUnknown
}

// kernelIdentity captures the raw kernel line for the system-info step.
func kernelIdentity(rc *scout_io.RuntimeContext, family OSFamily) string {
	switch family {
	case FamilyLinux, FamilyDarwin:
		res, err := execute.Run(rc.Ctx, execute.Options{Command: "uname", Args: []string{"-a"}})
		if err != nil {
			return ""
		}
		return strings.TrimSpace(res.Output)
	case FamilyWindows:
		res, err := execute.Run(rc.Ctx, execute.Options{Command: "cmd", Args: []string{"/C", "ver"}})
		if err != nil {
			return ""
		}
		return strings.TrimSpace(res.Output)
	default:
		// Unrecognized build target; uname is the only identity signal left.
		res, err := execute.Run(rc.Ctx, execute.Options{Command: "uname", Args: []string{"-s"}})
		if err != nil {
			return ""
		}
		return strings.TrimSpace(res.Output)
	}
}
