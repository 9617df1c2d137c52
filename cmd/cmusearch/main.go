// Command cmusearch is a small operator CLI around the cmusearch engine:
// build an index from a corpus and configuration on disk, cache it, and
// run ad hoc queries against it. It exists because the engine itself
// exposes no host, transport, or UI (spec.md §1) -- something still has to
// drive it for offline index building and manual testing, the role the
// teacher package fills with its examples/basic and examples/custom
// programs.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
