// Package proc runs one external command at a time and classifies how it
// ended.
//
// A command is announced with an INFO line, started with the executable
// search rules of the platform, and waited for. The child inherits the
// standard streams unless the Cmd overrides them. Anything but a zero exit
// status is returned as an error wrapping ErrFailed: *SpawnError when the
// child never ran, *ExitError for a nonzero status and *SignalError when a
// POSIX signal killed it. Each failure is logged as ERRO before it is
// returned, and the error is marked as reported.
package proc

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/goplus/ebuild/pkgs/logging"
	"mvdan.cc/sh/v3/shell"
)

// ErrFailed is wrapped by every error describing an unsuccessful command.
var ErrFailed = errors.New("command failed")

// SpawnError reports that the child process could not be started.
type SpawnError struct {
	Name string
	Err  error
}

func (e *SpawnError) Error() string {
	return "could not start child process: " + e.Err.Error()
}

func (e *SpawnError) Unwrap() []error { return []error{ErrFailed, e.Err} }

// ExitError reports a child that exited with a nonzero status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command exited with exit code %d", e.Code)
}

func (e *ExitError) Unwrap() error { return ErrFailed }

// SignalError reports a child terminated by a signal. POSIX only.
type SignalError struct {
	Signal int
	Name   string
}

func (e *SignalError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("command process was terminated by signal %d", e.Signal)
	}
	return fmt.Sprintf("command process was terminated by signal %d (%s)", e.Signal, e.Name)
}

func (e *SignalError) Unwrap() error { return ErrFailed }

// Cmd describes a command to run. Args[0] is the executable name or path.
type Cmd struct {
	Args []string

	// Dir is the working directory of the child; empty means the current one.
	Dir string

	// Env overrides or adds variables on top of the current environment.
	Env map[string]string

	// Nil streams are inherited from the current process.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Runner executes commands and logs through a Logger.
type Runner struct {
	log *logging.Logger
}

// New returns a Runner logging to log. A nil log discards output.
func New(log *logging.Logger) *Runner {
	if log == nil {
		log = logging.Discard()
	}
	return &Runner{log: log}
}

// Run executes argv with the default Logger. It panics if argv is empty.
func Run(argv ...string) error {
	return New(logging.Default()).Run(Cmd{Args: argv})
}

// Run starts c, waits for it and classifies the result. It panics if
// c.Args is empty.
func (r *Runner) Run(c Cmd) error {
	if len(c.Args) == 0 {
		panic("proc: command requires at least one argument")
	}
	r.log.Info("%s", strings.Join(c.Args, " "))

	cmd := exec.Command(c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.Stdin = orReader(c.Stdin, os.Stdin)
	cmd.Stdout = orWriter(c.Stdout, os.Stdout)
	cmd.Stderr = orWriter(c.Stderr, os.Stderr)
	if len(c.Env) > 0 {
		cmd.Env = mergeEnv(os.Environ(), c.Env)
	}

	if err := cmd.Start(); err != nil {
		return r.fail(&SpawnError{Name: c.Args[0], Err: err})
	}

	err := cmd.Wait()
	if state := cmd.ProcessState; state != nil {
		if serr := signalError(state); serr != nil {
			return r.fail(serr)
		}
		if code := state.ExitCode(); code != 0 {
			return r.fail(&ExitError{Code: code})
		}
	}
	if err != nil {
		r.log.Erro("could not wait for child process: %v", err)
		return logging.Reported(err)
	}
	return nil
}

func (r *Runner) fail(err error) error {
	r.log.Erro("%s", err.Error())
	return logging.Reported(err)
}

// Command splits a shell-style command line into arguments. Quotes and
// backslash escapes follow POSIX shell rules and $VAR references are
// expanded from the current environment. No command is run.
func Command(line string) ([]string, error) {
	args, err := shell.Fields(line, nil)
	if err != nil {
		return nil, fmt.Errorf("parse command %q: %w", line, err)
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("parse command %q: empty command", line)
	}
	return args, nil
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}

func mergeEnv(base []string, override map[string]string) []string {
	envMap := make(map[string]string, len(base))
	for _, kv := range base {
		if k, v, ok := strings.Cut(kv, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range override {
		envMap[k] = v
	}
	keys := make([]string, 0, len(envMap))
	for k := range envMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+envMap[k])
	}
	return out
}
