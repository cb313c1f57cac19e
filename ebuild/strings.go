package ebuild

import (
	"path/filepath"
	"strings"

	"github.com/goplus/ebuild/pkgs/fsutil"
)

// PathSep is the path separator of the platform.
const PathSep = fsutil.PathSep

// Join concatenates items with sep between them. It panics without items.
func Join(sep string, items ...string) string {
	if len(items) == 0 {
		panic("ebuild: Join requires at least one item")
	}
	return strings.Join(items, sep)
}

// Concat concatenates items. It panics without items.
func Concat(items ...string) string {
	if len(items) == 0 {
		panic("ebuild: Concat requires at least one item")
	}
	return strings.Join(items, "")
}

// Path joins items with PathSep. Unlike filepath.Join it does not clean
// the result.
func Path(items ...string) string {
	return Join(PathSep, items...)
}

// NoExt strips the extension of the last path element: "src/main.c" becomes "src/main".
func NoExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

// EndsWith reports whether s ends with suffix.
func EndsWith(s, suffix string) bool {
	return strings.HasSuffix(s, suffix)
}

// Shift removes and returns the first element of *args. It panics if
// *args is empty.
func Shift(args *[]string) string {
	if len(*args) == 0 {
		panic("ebuild: Shift on empty arguments")
	}
	first := (*args)[0]
	*args = (*args)[1:]
	return first
}
