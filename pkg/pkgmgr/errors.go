// pkg/pkgmgr/errors.go

package pkgmgr

import (
	cerr "github.com/cockroachdb/errors"
)

// Install failure taxonomy. Callers match with errors.Is; every one of these
// is narrated and absorbed at the discovery-step boundary, never fatal.
var (
	ErrUnsupportedPlatform = cerr.New("package install not supported on this platform")
	ErrUnsupportedDistro   = cerr.New("package install not supported on this distribution")
	ErrUnsupportedManager  = cerr.New("no usable package manager found")
	ErrBootstrapFailed     = cerr.New("package manager bootstrap failed")
)
