//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package dirent

import (
	"io"

	"golang.org/x/sys/unix"
)

const blockSize = 8192

type handle struct {
	fd    int
	buf   []byte
	bufp  int
	nbuf  int
	names []string
	dots  int
}

func openHandle(path string) (*handle, error) {
	for {
		fd, err := unix.Open(path, unix.O_RDONLY|unix.O_DIRECTORY|unix.O_CLOEXEC, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return nil, err
		}
		return &handle{fd: fd, buf: make([]byte, blockSize)}, nil
	}
}

// next yields "." and ".." first: ParseDirent drops the native records
// for them.
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
		if h.bufp >= h.nbuf {
			h.bufp = 0
			n, err := unix.ReadDirent(h.fd, h.buf)
			if err == unix.EINTR {
				h.nbuf = 0
				continue
			}
			if err != nil {
				return "", err
			}
			if n <= 0 {
				return "", io.EOF
			}
			h.nbuf = n
		}
		consumed, _, names := unix.ParseDirent(h.buf[h.bufp:h.nbuf], -1, h.names[:0])
		h.bufp += consumed
		h.names = names
	}

	name := h.names[0]
	h.names = h.names[1:]
	return name, nil
}

func (h *handle) close() error {
	return unix.Close(h.fd)
}
