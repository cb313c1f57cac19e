// Package logging writes the tagged progress lines of a build script.
//
// Every line has the form "[TAG] message". INFO lines go to the standard
// stream, WARN and ERRO lines go to the error stream. The Logger is backed
// by zerolog; events are re-rendered by a level-aware writer before they
// reach the streams.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ColorMode controls whether tags are colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses "auto", "always" or "never". The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

// Options configures a Logger. Nil streams default to os.Stdout and os.Stderr.
type Options struct {
	Stdout io.Writer
	Stderr io.Writer
	Color  ColorMode
	Debug  bool
}

// Logger emits tagged lines. It is safe for concurrent use.
type Logger struct {
	zl zerolog.Logger
}

// New creates a Logger writing to the streams in opts.
func New(opts Options) *Logger {
	stdout, stderr := opts.Stdout, opts.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	w := &tagWriter{
		stdout:   stdout,
		stderr:   stderr,
		colorOut: useColor(opts.Color, stdout),
		colorErr: useColor(opts.Color, stderr),
	}
	level := zerolog.InfoLevel
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	return &Logger{zl: zerolog.New(w).Level(level)}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

var std atomic.Pointer[Logger]

func init() {
	std.Store(New(Options{}))
}

// Default returns the process-wide Logger.
func Default() *Logger {
	return std.Load()
}

// SetDefault replaces the process-wide Logger.
func SetDefault(l *Logger) {
	if l == nil {
		l = Discard()
	}
	std.Store(l)
}

// Info announces an action on the standard stream.
func (l *Logger) Info(format string, args ...any) {
	msg(l.zl.Info(), format, args)
}

// Warn reports a recoverable condition on the error stream.
func (l *Logger) Warn(format string, args ...any) {
	msg(l.zl.Warn(), format, args)
}

// Erro reports a fatal condition on the error stream.
func (l *Logger) Erro(format string, args ...any) {
	msg(l.zl.Error(), format, args)
}

// Debug writes diagnostics to the error stream when debug output is enabled.
func (l *Logger) Debug(format string, args ...any) {
	msg(l.zl.Debug(), format, args)
}

func msg(evt *zerolog.Event, format string, args []any) {
	if len(args) == 0 {
		evt.Msg(format)
		return
	}
	evt.Msgf(format, args...)
}

// Errorf logs the formatted message as ERRO and returns it as an error that
// is already marked as reported.
func (l *Logger) Errorf(format string, args ...any) error {
	err := fmt.Errorf(format, args...)
	l.Erro("%s", err.Error())
	return Reported(err)
}

type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// Reported marks err as already logged, so top-level handlers do not print
// it a second time. Reported(nil) is nil.
func Reported(err error) error {
	if err == nil || IsReported(err) {
		return err
	}
	return &reportedError{err: err}
}

// IsReported reports whether err, or any error it wraps, was marked by Reported.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
