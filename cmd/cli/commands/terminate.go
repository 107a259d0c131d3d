package commands

import (
	"github.com/spf13/cobra"

	"github.com/instlab/instctl/internal/config"
	"github.com/instlab/instctl/internal/ec2"
)

var terminateCmd = &cobra.Command{
	Use:   "terminate <instance-id>",
	Short: "Terminate an instance",
	Long: `Terminate waits for the instance to reach running state, removes its
address from the local known_hosts file, and shuts it down.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".", config.DefaultEnvironment)
		if err != nil {
			return err
		}
		if err := ec2.CheckTerminateTools(); err != nil {
			return err
		}

		manager := ec2.NewManager(cfg, ec2.NewRunner())
		return manager.Terminate(cmd.Context(), args[0])
	},
}
