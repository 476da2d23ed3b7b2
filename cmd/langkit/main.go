// langkit is a command-line driver for the demo grammar: it lexes,
// parses, and round-trips intermediate code through the langkit core
// packages, and hosts the interactive REPL.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
