package ebuild

import (
	"os"

	"github.com/goplus/ebuild/pkgs/logging"
)

// Exit codes of a build script.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exit is replaced in tests.
var exit = os.Exit

// ExitCodeForError returns ExitSuccess for nil and ExitFailure otherwise.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	return ExitFailure
}

// Main runs fn with the command line arguments after the program name.
// If fn returns an error, Main logs it unless it was already reported and
// exits with ExitFailure. Main is meant to be the whole body of a build
// script's main function.
func Main(fn func(args []string) error) {
	if err := setup(); err != nil {
		terminate(err)
		return
	}
	if err := fn(os.Args[1:]); err != nil {
		terminate(err)
	}
}

// Check terminates the script if err is not nil. It exists for scripts
// that prefer to stop at the failing line instead of returning the error.
func Check(err error) {
	if err != nil {
		terminate(err)
	}
}

func terminate(err error) {
	if !logging.IsReported(err) {
		logging.Default().Erro("%v", err)
	}
	exit(ExitCodeForError(err))
}
