// pkg/zscrub_cli/wrap.go

package zscrub_cli

import (
	"context"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/logger"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_err"
	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/zscrub_io"
	cerr "github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
)

// Wrap adapts a RuntimeContext-based handler to cobra's RunE,
// providing panic recovery, outcome logging and expected-error
// classification in one place.
func Wrap(fn func(rc *zscrub_io.RuntimeContext, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		logger.InitFallback()

		rc := zscrub_io.NewContext(context.Background(), cmd.Name())
		defer rc.End(&err)
		defer rc.HandlePanic(&err)

		err = fn(rc, cmd, args)
		if err != nil && !zscrub_err.IsExpectedUserError(err) {
			err = cerr.WithStack(err)
		}
		return err
	}
}
