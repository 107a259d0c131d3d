package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/instlab/instctl/internal/config"
	"github.com/instlab/instctl/internal/ec2"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List running instances",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(".", config.DefaultEnvironment)
		if err != nil {
			return err
		}
		if err := ec2.CheckListTools(); err != nil {
			return err
		}

		manager := ec2.NewManager(cfg, ec2.NewRunner())
		instances, err := manager.List(cmd.Context())
		if err != nil {
			return err
		}

		for _, instance := range instances {
			fmt.Printf("%s\t%s\t%s\n", instance.ID, instance.Name, instance.IP)
		}
		return nil
	},
}
