package logging

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/colorstring"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// tagWriter turns zerolog JSON events into "[TAG] message" lines.
type tagWriter struct {
	mu       sync.Mutex
	buf      strings.Builder
	stdout   io.Writer
	stderr   io.Writer
	colorOut bool
	colorErr bool
}

var _ zerolog.LevelWriter = (*tagWriter)(nil)

var colorize = colorstring.Colorize{
	Colors: colorstring.DefaultColors,
	Reset:  false,
}

func (w *tagWriter) Write(p []byte) (int, error) {
	return w.WriteLevel(zerolog.NoLevel, p)
}

func (w *tagWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	var evt struct {
		Message string `json:"message"`
	}
	d := json.NewDecoder(bytes.NewReader(p))
	d.UseNumber()
	if err := d.Decode(&evt); err != nil {
		return 0, err
	}

	tag, color := tagFor(level)
	out, colored := w.stdout, w.colorOut
	if level != zerolog.InfoLevel && level != zerolog.NoLevel {
		out, colored = w.stderr, w.colorErr
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Reset()
	if colored {
		w.buf.WriteString(colorize.Color("[" + color + "]"))
	}
	w.buf.WriteString("[" + tag + "]")
	if colored {
		w.buf.WriteString(colorize.Color("[reset]"))
	}
	w.buf.WriteByte(' ')
	w.buf.WriteString(evt.Message)
	w.buf.WriteByte('\n')

	if _, err := io.WriteString(out, w.buf.String()); err != nil {
		return 0, err
	}
	return len(p), nil
}

func tagFor(level zerolog.Level) (tag, color string) {
	switch level {
	case zerolog.WarnLevel:
		return "WARN", "yellow"
	case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
		return "ERRO", "red"
	case zerolog.DebugLevel, zerolog.TraceLevel:
		return "DEBG", "blue"
	default:
		return "INFO", "green"
	}
}

func useColor(mode ColorMode, w io.Writer) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
