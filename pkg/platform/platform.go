// pkg/platform/platform.go

// Package platform identifies the host operating system family and, on
// Linux, its distribution. The Identity value is computed once per run and
// passed by value to everything downstream; Unknown is a legitimate result
// that disables platform-specific branches, never an error.
package platform

import (
	"os/exec"
)

// OSFamily is the closed set of operating-system families scout recognizes.
type OSFamily string

const (
	FamilyLinux   OSFamily = "linux"
	FamilyDarwin  OSFamily = "darwin"
	FamilyWindows OSFamily = "windows"
	FamilyUnknown OSFamily = "unknown"
)

// Distro is the closed set of Linux distributions scout recognizes. It is
// only meaningful when the family is Linux; elsewhere it is DistroUnknown by
// convention.
type Distro string

const (
	DistroAmazonLinux Distro = "amazon"
	DistroUbuntu      Distro = "ubuntu"
	DistroFedora      Distro = "fedora"
	DistroCentOS      Distro = "centos"
	DistroDebian      Distro = "debian"
	DistroRHEL        Distro = "rhel"
	DistroUnknown     Distro = "unknown"
)

// Identity is the detected platform, immutable once computed.
type Identity struct {
	Family OSFamily
	Distro Distro
	// Kernel is the raw kernel identity line (uname -a output on unix,
	// the OS version string on Windows). Best effort; may be empty.
	Kernel string
}

func (id Identity) IsLinux() bool   { return id.Family == FamilyLinux }
func (id Identity) IsDarwin() bool  { return id.Family == FamilyDarwin }
func (id Identity) IsWindows() bool { return id.Family == FamilyWindows }

// IsDebianFamily reports whether the distro installs through apt.
func (id Identity) IsDebianFamily() bool {
	return id.Distro == DistroUbuntu || id.Distro == DistroDebian
}

// IsRHELFamily reports whether the distro installs through yum/dnf.
func (id Identity) IsRHELFamily() bool {
	switch id.Distro {
	case DistroAmazonLinux, DistroCentOS, DistroFedora, DistroRHEL:
		return true
	}
	return false
}

// IsCommandAvailable checks if a command resolves on the current PATH.
// Absence is an ordinary false, never an error.
func IsCommandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
