package main

import (
	"fmt"
	"os"

	"github.com/mobanhawi/dux/internal/cli"
)

// osExit is a seam for tests; production always uses os.Exit.
var osExit = os.Exit

// execute runs the command tree; a seam so tests can stub out Execute
// without actually launching the TUI or touching the filesystem.
var execute = func() error {
	return cli.NewRootCommand().Execute()
}

func main() {
	osExit(run())
}

func run() int {
	if err := execute(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		return 1
	}
	return 0
}
