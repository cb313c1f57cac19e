package ebuild

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoin(t *testing.T) {
	assert.Equal(t, "a/b/c", Join("/", "a", "b", "c"))
	assert.Equal(t, "a", Join("/", "a"))
	assert.Equal(t, "cc -o main", Join(" ", "cc", "-o", "main"))
	assert.Equal(t, "a::b", Join("::", "a", "b"))
	assert.Panics(t, func() { Join("/") })
}

func TestConcat(t *testing.T) {
	assert.Equal(t, "main.o", Concat("main", ".o"))
	assert.Equal(t, "x", Concat("x"))
	assert.Panics(t, func() { Concat() })
}

func TestPath(t *testing.T) {
	assert.Equal(t, "build"+PathSep+"obj"+PathSep+"main.o", Path("build", "obj", "main.o"))
	assert.Equal(t, "build", Path("build"))
}

func TestNoExt(t *testing.T) {
	tests := []struct{ in, want string }{
		{"main.c", "main"},
		{"src/main.c", "src/main"},
		{"archive.tar.gz", "archive.tar"},
		{"Makefile", "Makefile"},
		{"dir.d/file", "dir.d/file"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NoExt(tt.in), tt.in)
	}
}

func TestEndsWith(t *testing.T) {
	assert.True(t, EndsWith("main.c", ".c"))
	assert.True(t, EndsWith("main.c", ""))
	assert.False(t, EndsWith("main.c", ".h"))
	assert.False(t, EndsWith("c", "main.c"))
}

func TestShift(t *testing.T) {
	args := []string{"build", "-v"}
	assert.Equal(t, "build", Shift(&args))
	assert.Equal(t, []string{"-v"}, args)
	assert.Equal(t, "-v", Shift(&args))
	assert.Empty(t, args)
	assert.Panics(t, func() { Shift(&args) })
}
