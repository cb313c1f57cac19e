// Package dirent enumerates the names in a directory one at a time.
//
// The iterator behaves the same on every platform: names come back in
// native order, the "." and ".." pseudo entries are always yielded exactly
// once each, and once the sequence is exhausted it stays exhausted. On
// POSIX systems the cursor reads raw directory records from a descriptor;
// on Windows it wraps FindFirstFile/FindNextFile, the first match being
// fetched when the directory is opened.
package dirent

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync/atomic"
)

// SkipAll may be returned by an Each callback to stop iterating without error.
var SkipAll = fs.SkipAll

// open handles, for leak checks in tests.
var openHandles atomic.Int64

// Dir is an open directory cursor. A Dir is not safe for concurrent use.
type Dir struct {
	path string
	h    *handle
	eof  bool
}

// Open opens path for iteration. The caller must Close the returned Dir.
func Open(path string) (*Dir, error) {
	h, err := openHandle(path)
	if err != nil {
		return nil, &fs.PathError{Op: "opendir", Path: path, Err: err}
	}
	openHandles.Add(1)
	return &Dir{path: path, h: h}, nil
}

// Path returns the path the Dir was opened with.
func (d *Dir) Path() string {
	return d.path
}

// Next returns the next entry name. It returns io.EOF at the end of the
// sequence and on every call after that, and os.ErrClosed after Close.
func (d *Dir) Next() (string, error) {
	if d.h == nil {
		return "", os.ErrClosed
	}
	if d.eof {
		return "", io.EOF
	}
	name, err := d.h.next()
	if err == io.EOF {
		d.eof = true
		return "", io.EOF
	}
	if err != nil {
		return "", &fs.PathError{Op: "readdir", Path: d.path, Err: err}
	}
	return name, nil
}

// Close releases the native handle. Only the first call does any work;
// later calls return os.ErrClosed.
func (d *Dir) Close() error {
	if d.h == nil {
		return os.ErrClosed
	}
	h := d.h
	d.h = nil
	openHandles.Add(-1)
	if err := h.close(); err != nil {
		return &fs.PathError{Op: "closedir", Path: d.path, Err: err}
	}
	return nil
}

// Each calls fn for every entry of the directory at path, "." and ".."
// included. Iteration stops at the first error returned by fn, which Each
// returns unless it is SkipAll. The directory is closed before Each returns.
func Each(path string, fn func(name string) error) (err error) {
	d, err := Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := d.Close(); err == nil {
			err = cerr
		}
	}()

	for {
		name, nerr := d.Next()
		if nerr == io.EOF {
			return nil
		}
		if nerr != nil {
			return nerr
		}
		if ferr := fn(name); ferr != nil {
			if errors.Is(ferr, SkipAll) {
				return nil
			}
			return ferr
		}
	}
}

// Names returns every entry of the directory at path in native order.
func Names(path string) ([]string, error) {
	var names []string
	err := Each(path, func(name string) error {
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

// IsDots reports whether name is one of the "." or ".." pseudo entries.
func IsDots(name string) bool {
	return name == "." || name == ".."
}
