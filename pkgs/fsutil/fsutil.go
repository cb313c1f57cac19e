// Package fsutil provides the filesystem tree operations of a build script:
// mkdir -p style directory creation, recursive removal and a directory
// predicate.
//
// Every mutating operation announces itself with an INFO line before it
// acts. Creating a directory that already exists and removing a path that
// is already gone are reported as warnings and otherwise succeed; any other
// failure is logged as ERRO and returned as a reported error.
package fsutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goplus/ebuild/pkgs/dirent"
	"github.com/goplus/ebuild/pkgs/logging"
	"github.com/rotisserie/eris"
)

// PathSep is the separator used when joining path segments.
const PathSep = string(filepath.Separator)

// DirPerm is the permission used for directories created by Mkdirs.
const DirPerm fs.FileMode = 0o755

// Options tunes an FS.
type Options struct {
	// FollowSymlinks makes Remove treat a symbolic link to a directory as
	// that directory and delete the linked-to contents. By default the link
	// itself is removed and its target is left alone.
	FollowSymlinks bool
}

// FS performs tree operations and logs through a Logger.
type FS struct {
	log  *logging.Logger
	opts Options
}

// New returns an FS logging to log. A nil log discards output.
func New(log *logging.Logger, opts Options) *FS {
	if log == nil {
		log = logging.Discard()
	}
	return &FS{log: log, opts: opts}
}

func defaultFS() *FS {
	return New(logging.Default(), Options{})
}

// IsDir reports whether path names a directory, following symbolic links.
// A missing path is not an error and yields false.
func IsDir(path string) (bool, error) {
	ok, err := isDir(path)
	if err != nil {
		return false, eris.Wrapf(err, "could not retrieve information about file %s", path)
	}
	return ok, nil
}

// IsDir is like the package-level IsDir but logs failures.
func (f *FS) IsDir(path string) (bool, error) {
	ok, err := isDir(path)
	if err != nil {
		return false, f.statFailed(path, err)
	}
	return ok, nil
}

func isDir(path string) (bool, error) {
	fi, err := os.Stat(path)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

func (f *FS) statFailed(path string, err error) error {
	f.log.Erro("could not retrieve information about file %s: %s", path, reason(err))
	return logging.Reported(eris.Wrapf(err, "could not retrieve information about file %s", path))
}

// Mkdirs joins segments with PathSep and creates every prefix in turn:
// segments[0], segments[0]/segments[1], and so on. It panics if no segment
// is given.
func Mkdirs(segments ...string) error {
	return defaultFS().Mkdirs(segments...)
}

// Mkdirs creates each prefix of the joined segments. See the package-level Mkdirs.
func (f *FS) Mkdirs(segments ...string) error {
	if len(segments) == 0 {
		panic("fsutil: Mkdirs requires at least one path segment")
	}

	var prefix string
	for i, seg := range segments {
		if i == 0 {
			prefix = seg
		} else {
			prefix += PathSep + seg
		}

		f.log.Info("mkdirs %s", prefix)
		err := os.Mkdir(prefix, DirPerm)
		if err == nil {
			continue
		}
		if eris.Is(err, fs.ErrExist) {
			f.log.Warn("directory %s already exists", prefix)
			continue
		}
		f.log.Erro("could not create directory %s: %s", prefix, reason(err))
		return logging.Reported(eris.Wrapf(err, "could not create directory %s", prefix))
	}
	return nil
}

// Remove deletes path. A directory is emptied depth-first, children before
// the directory itself. A path that does not exist only produces a warning.
func Remove(path string) error {
	return defaultFS().Remove(path)
}

// Remove deletes path recursively. See the package-level Remove.
func (f *FS) Remove(path string) error {
	f.log.Info("rm %s", path)
	return f.remove(path)
}

func (f *FS) remove(path string) error {
	tree, err := f.isTree(path)
	if err != nil {
		return f.statFailed(path, err)
	}
	if !tree {
		return f.removeNode(path, "file")
	}

	err = dirent.Each(path, func(name string) error {
		if dirent.IsDots(name) {
			return nil
		}
		return f.remove(path + PathSep + name)
	})
	if err != nil {
		if logging.IsReported(err) {
			return err
		}
		if eris.Is(err, fs.ErrNotExist) {
			f.log.Warn("directory %s does not exist", path)
			return nil
		}
		f.log.Erro("could not read directory %s: %s", path, reason(err))
		return logging.Reported(eris.Wrapf(err, "could not read directory %s", path))
	}
	return f.removeNode(path, "directory")
}

// isTree reports whether Remove should descend into path.
func (f *FS) isTree(path string) (bool, error) {
	if f.opts.FollowSymlinks {
		return isDir(path)
	}
	fi, err := os.Lstat(path)
	if err != nil {
		if eris.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return fi.IsDir(), nil
}

func (f *FS) removeNode(path, kind string) error {
	err := os.Remove(path)
	if err == nil {
		return nil
	}
	if eris.Is(err, fs.ErrNotExist) {
		f.log.Warn("%s %s does not exist", kind, path)
		return nil
	}
	f.log.Erro("could not remove %s %s: %s", kind, path, reason(err))
	return logging.Reported(eris.Wrapf(err, "could not remove %s %s", kind, path))
}

// reason returns the system error text without the operation and path.
func reason(err error) string {
	var pe *fs.PathError
	if errors.As(err, &pe) {
		return pe.Err.Error()
	}
	return err.Error()
}
