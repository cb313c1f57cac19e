package proc

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "EBUILD_HELPER_PROCESS"

// TestMain lets the test binary double as the child process:
// with EBUILD_HELPER_PROCESS=1 it runs a small command from its arguments.
func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		os.Exit(helper(os.Args[1:]))
	}
	os.Exit(m.Run())
}

func helper(args []string) int {
	if len(args) == 0 {
		return 2
	}
	switch args[0] {
	case "exit":
		code, _ := strconv.Atoi(args[1])
		return code
	case "echo":
		fmt.Println(strings.Join(args[1:], " "))
	case "env":
		fmt.Println(os.Getenv(args[1]))
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Println(wd)
	case "kill":
		p, _ := os.FindProcess(os.Getpid())
		p.Kill()
		time.Sleep(time.Minute)
	default:
		return 2
	}
	return 0
}

func helperCmd(args ...string) Cmd {
	return Cmd{
		Args: append([]string{os.Args[0]}, args...),
		Env:  map[string]string{helperEnv: "1"},
	}
}

func newTestRunner() (*Runner, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	l := logging.New(logging.Options{Stdout: &stdout, Stderr: &stderr, Color: logging.ColorNever})
	return New(l), &stdout, &stderr
}

func TestRunSuccess(t *testing.T) {
	r, logOut, logErr := newTestRunner()
	var out bytes.Buffer
	c := helperCmd("echo", "hello", "world")
	c.Stdout = &out

	require.NoError(t, r.Run(c))
	assert.Equal(t, "hello world\n", out.String())
	assert.Equal(t, "[INFO] "+strings.Join(c.Args, " ")+"\n", logOut.String())
	assert.Empty(t, logErr.String())
}

func TestRunExitCode(t *testing.T) {
	r, _, logErr := newTestRunner()

	err := r.Run(helperCmd("exit", "7"))
	require.Error(t, err)

	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 7, exitErr.Code)
	assert.ErrorIs(t, err, ErrFailed)
	assert.True(t, logging.IsReported(err))
	assert.Equal(t, "[ERRO] command exited with exit code 7\n", logErr.String())
}

func TestRunMissingExecutable(t *testing.T) {
	r, _, logErr := newTestRunner()

	err := r.Run(Cmd{Args: []string{"ebuild-definitely-not-a-real-program", "-v"}})
	require.Error(t, err)

	var spawnErr *SpawnError
	require.True(t, errors.As(err, &spawnErr))
	assert.Equal(t, "ebuild-definitely-not-a-real-program", spawnErr.Name)
	assert.ErrorIs(t, err, ErrFailed)

	var exitErr *ExitError
	assert.False(t, errors.As(err, &exitErr))
	assert.True(t, strings.HasPrefix(logErr.String(), "[ERRO] could not start child process: "))
}

func TestRunEnvOverride(t *testing.T) {
	r, _, _ := newTestRunner()
	var out bytes.Buffer
	c := helperCmd("env", "EBUILD_TEST_VALUE")
	c.Env["EBUILD_TEST_VALUE"] = "from-override"
	c.Stdout = &out

	require.NoError(t, r.Run(c))
	assert.Equal(t, "from-override\n", out.String())
}

func TestRunDir(t *testing.T) {
	r, _, _ := newTestRunner()
	dir := t.TempDir()
	var out bytes.Buffer
	exe, err := filepath.Abs(os.Args[0])
	require.NoError(t, err)
	c := helperCmd("pwd")
	c.Args[0] = exe
	c.Dir = dir
	c.Stdout = &out

	require.NoError(t, r.Run(c))

	got, err := filepath.EvalSymlinks(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestPackageRun(t *testing.T) {
	old := logging.Default()
	t.Cleanup(func() { logging.SetDefault(old) })
	var stdout, stderr bytes.Buffer
	logging.SetDefault(logging.New(logging.Options{Stdout: &stdout, Stderr: &stderr, Color: logging.ColorNever}))
	t.Setenv(helperEnv, "1")

	require.NoError(t, Run(os.Args[0], "exit", "0"))
	assert.Error(t, Run(os.Args[0], "exit", "3"))
	assert.Contains(t, stderr.String(), "exit code 3")
}

func TestRunEmptyPanics(t *testing.T) {
	r, _, _ := newTestRunner()
	assert.Panics(t, func() { _ = r.Run(Cmd{}) })
	assert.Panics(t, func() { _ = Run() })
}

func TestCommand(t *testing.T) {
	t.Setenv("EBUILD_CC", "clang")

	tests := []struct {
		line string
		want []string
	}{
		{"cc -o main main.c", []string{"cc", "-o", "main", "main.c"}},
		{`$EBUILD_CC -DNAME="hello world" 'x y'`, []string{"clang", "-DNAME=hello world", "x y"}},
		{`echo a\ b   c`, []string{"echo", "a b", "c"}},
	}
	for _, tt := range tests {
		got, err := Command(tt.line)
		require.NoError(t, err, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}

	_, err := Command("   ")
	assert.Error(t, err)
	_, err = Command(`echo "unterminated`)
	assert.Error(t, err)
}

func TestMergeEnv(t *testing.T) {
	got := mergeEnv([]string{"B=2", "A=1", "PATH=/bin"}, map[string]string{"A": "x", "C": "3"})
	assert.Equal(t, []string{"A=x", "B=2", "C=3", "PATH=/bin"}, got)
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "command exited with exit code 2", (&ExitError{Code: 2}).Error())
	assert.Equal(t, "command process was terminated by signal 9 (SIGKILL)", (&SignalError{Signal: 9, Name: "SIGKILL"}).Error())
	assert.Equal(t, "command process was terminated by signal 15", (&SignalError{Signal: 15}).Error())

	inner := errors.New("exec: \"x\": executable file not found in $PATH")
	spawn := &SpawnError{Name: "x", Err: inner}
	assert.ErrorIs(t, spawn, inner)
	assert.ErrorIs(t, spawn, ErrFailed)
}
