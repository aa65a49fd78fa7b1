// Package main is the entry point for the stagewatch CLI/TUI.
package main

import (
	"os"

	"github.com/stagewatch-io/stagewatch/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
