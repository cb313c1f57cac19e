//go:build unix

package proc

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

func signalError(state *os.ProcessState) error {
	ws, ok := state.Sys().(syscall.WaitStatus)
	if !ok || !ws.Signaled() {
		return nil
	}
	sig := ws.Signal()
	return &SignalError{Signal: int(sig), Name: unix.SignalName(sig)}
}
