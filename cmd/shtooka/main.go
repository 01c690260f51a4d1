// ABOUTME: Entry point for the shtooka command line player
// ABOUTME: Runs the cobra root command and reports failures
package main

import (
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
