// pkg/scout_cli/wrap.go

package scout_cli

import (
	"context"

	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/CodeMonkeyCybersecurity/scout/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/scout/pkg/scout_io"
)

// Wrap gives every command panic recovery, a RuntimeContext, and span
// lifecycle around its RunE.
func Wrap(fn func(rc *scout_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := scout_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)

		defer func() {
			if r := recover(); r != nil {
				err = cerr.AssertionFailedf("panic: %v", r)
				rc.Log.Error("Panic recovered", zap.Any("panic", r))
			}
		}()

		return fn(rc, cmd, args)
	}
}
