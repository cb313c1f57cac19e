// Command ebuild runs portable build steps from a shell or a makefile:
// commands with exit status checks, mkdir -p, recursive rm and friends.
package main

import "github.com/goplus/ebuild/cmd/ebuild/internal"

func main() {
	internal.Execute()
}
