package main

import (
	"fmt"
	"os"

	"github.com/instlab/instctl/cmd/cli/commands"
	"github.com/instlab/instctl/internal/logger"
)

// Version information set at build time via ldflags
var version = "dev"

func main() {
	logger.InitializeAndConfigure()
	commands.SetVersion(version)

	if err := commands.Execute(); err != nil {
		// Single fatal path: one highlighted line, non-zero exit.
		fmt.Fprintf(os.Stderr, "\x1b[0;31m%v\x1b[0m\n", err)
		os.Exit(1)
	}
}
