package commands

import (
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(launchCmd)
	RootCmd.AddCommand(terminateCmd)
	RootCmd.AddCommand(listCmd)
}

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "instctl",
	Short: "instctl - launch, terminate and list EC2 instances",
	Long: `instctl is a command line tool for managing EC2 instances through the
classic EC2 API tools. Settings are read from a .env.<environment> file in
the working directory (default environment: staging).`,
	// Errors are printed once, by main, as the fatal bail line.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// SetVersion records the build version so --version reports it.
func SetVersion(v string) {
	RootCmd.Version = v
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
