//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package dirent

import (
	"errors"
	"io/fs"
	"os"
	"syscall"
)

type handle struct {
	f     *os.File
	names []string
	dots  int
}

func openHandle(path string) (*handle, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, unwrapPath(err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, unwrapPath(err)
	}
	if !fi.IsDir() {
		f.Close()
		return nil, syscall.ENOTDIR
	}
	return &handle{f: f}, nil
}

func (h *handle) next() (string, error) {
	switch h.dots {
	case 0:
		h.dots++
		return ".", nil
	case 1:
		h.dots++
		return "..", nil
	}
	for len(h.names) == 0 {
		names, err := h.f.Readdirnames(64)
		if err != nil {
			return "", unwrapPath(err)
		}
		h.names = names
	}
	name := h.names[0]
	h.names = h.names[1:]
	return name, nil
}

func (h *handle) close() error {
	return unwrapPath(h.f.Close())
}

func unwrapPath(err error) error {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
