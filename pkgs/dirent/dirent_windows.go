//go:build windows

package dirent

import (
	"io"
	"strings"

	"golang.org/x/sys/windows"
)

// handle emulates a readdir cursor on top of FindFirstFile/FindNextFile.
// The first match is fetched by FindFirstFile when the directory is opened
// and held in data until the first call to next.
type handle struct {
	h       windows.Handle
	data    windows.Win32finddata
	pending bool
	dots    int
}

func openHandle(path string) (*handle, error) {
	pattern := path
	if !strings.HasSuffix(pattern, `\`) && !strings.HasSuffix(pattern, "/") {
		pattern += `\`
	}
	pattern += "*"

	p, err := windows.UTF16PtrFromString(pattern)
	if err != nil {
		return nil, err
	}
	d := &handle{pending: true}
	h, err := windows.FindFirstFile(p, &d.data)
	if err != nil {
		return nil, err
	}
	d.h = h

	// Drive roots have no "." and ".." matches.
	if name := windows.UTF16ToString(d.data.FileName[:]); name != "." {
		d.dots = 2
	}
	return d, nil
}

func (d *handle) next() (string, error) {
	switch d.dots {
	case 2:
		d.dots--
		return ".", nil
	case 1:
		d.dots--
		return "..", nil
	}

	if d.pending {
		d.pending = false
		return windows.UTF16ToString(d.data.FileName[:]), nil
	}
	if err := windows.FindNextFile(d.h, &d.data); err != nil {
		if err == windows.ERROR_NO_MORE_FILES {
			return "", io.EOF
		}
		return "", err
	}
	return windows.UTF16ToString(d.data.FileName[:]), nil
}

func (d *handle) close() error {
	return windows.FindClose(d.h)
}
