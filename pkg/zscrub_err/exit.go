// pkg/zscrub_err/exit.go
//
// Exit code mapping for terminal outcomes: user errors exit softly,
// interruptions use the conventional 128+SIGINT code, everything else
// is a general failure.

package zscrub_err

import (
	"errors"

	"github.com/CodeMonkeyCybersecurity/zscrub/pkg/interrupt"
)

const (
	ExitOK          = 0
	ExitFailure     = 1
	ExitValidation  = 2
	ExitInterrupted = 130
)

// GetExitCode maps an error to the process exit code.
func GetExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, interrupt.ErrInterrupted):
		return ExitInterrupted
	case IsExpectedUserError(err):
		return ExitValidation
	default:
		return ExitFailure
	}
}
