// Package ebuild is the API a build script written in Go uses directly.
//
// A build script is an ordinary main package:
//
//	func main() {
//		ebuild.Main(func(args []string) error {
//			if err := ebuild.Mkdirs("build", "obj"); err != nil {
//				return err
//			}
//			return ebuild.Cmd("cc", "-o", ebuild.Path("build", "app"), "main.c")
//		})
//	}
//
// Every step announces itself before it runs. The functions return errors
// instead of exiting; Main, or Check for inline use, turns the first error
// into a non-zero exit status so the build stops at the first broken step.
package ebuild

import (
	"sync"

	"github.com/goplus/ebuild/internal/env"
	"github.com/goplus/ebuild/pkgs/fsutil"
	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/goplus/ebuild/pkgs/proc"
	"github.com/rotisserie/eris"
)

var (
	configOnce sync.Once
	config     env.Config
	configErr  error
)

// setup applies the environment configuration to the default logger once.
func setup() error {
	configOnce.Do(func() {
		config, configErr = env.Load()
		if configErr != nil {
			configErr = eris.Wrap(configErr, "invalid environment")
			return
		}
		logging.SetDefault(config.Logger())
	})
	return configErr
}

func fsys() *fsutil.FS {
	setup()
	return fsutil.New(logging.Default(), fsutil.Options{FollowSymlinks: config.FollowSymlinks})
}

// Cmd runs argv[0] with the remaining arguments and waits for it. A
// nonzero exit, a signal or a failure to start all return an error. Cmd
// panics if argv is empty.
func Cmd(argv ...string) error {
	setup()
	return proc.Run(argv...)
}

// CmdLine splits line with shell quoting rules and runs the result like Cmd.
func CmdLine(line string) error {
	setup()
	argv, err := proc.Command(line)
	if err != nil {
		logging.Default().Erro("%v", err)
		return logging.Reported(err)
	}
	return proc.Run(argv...)
}

// Mkdirs creates the directory named by joining segments and every missing
// prefix along it. Directories that already exist only produce a warning.
func Mkdirs(segments ...string) error {
	return fsys().Mkdirs(segments...)
}

// Rm removes path and, for a directory, everything beneath it. A missing
// path only produces a warning. Symbolic links are removed, not followed,
// unless EBUILD_FOLLOW_SYMLINKS is set.
func Rm(path string) error {
	return fsys().Remove(path)
}

// IsDir reports whether path is a directory. A missing path is false.
func IsDir(path string) (bool, error) {
	return fsys().IsDir(path)
}

// Info announces a step on standard output.
func Info(format string, args ...any) {
	setup()
	logging.Default().Info(format, args...)
}

// Warn reports a recoverable problem on standard error.
func Warn(format string, args ...any) {
	setup()
	logging.Default().Warn(format, args...)
}

// Erro reports a failure on standard error.
func Erro(format string, args ...any) {
	setup()
	logging.Default().Erro(format, args...)
}
