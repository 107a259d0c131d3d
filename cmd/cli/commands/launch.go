package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/instlab/instctl/internal/config"
	"github.com/instlab/instctl/internal/ec2"
	"github.com/instlab/instctl/internal/types"
)

const flagRole = "role"

func init() {
	launchCmd.Flags().String(flagRole, "", "role to include in the instance tag (e.g. web)")
}

var launchCmd = &cobra.Command{
	Use:   "launch [environment]",
	Short: "Launch a new instance",
	Long: `Launch provisions a new instance from the settings in
.env.<environment>, waits for it to reach running state, tags it, prints its
address with an SSH hint, and writes the address back to the SERVER= line of
the environment file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		environment := config.DefaultEnvironment
		if len(args) > 0 {
			environment = args[0]
		}
		role, _ := cmd.Flags().GetString(flagRole)

		cfg, err := config.Load(".", environment)
		if err != nil {
			return err
		}
		if err := ec2.CheckLaunchTools(); err != nil {
			return err
		}

		workdir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("error resolving working directory: %w", err)
		}
		tag := types.ResolveTag(cfg.Tag, workdir, role, environment)

		manager := ec2.NewManager(cfg, ec2.NewRunner())
		instance, err := manager.Launch(cmd.Context(), tag)
		if err != nil {
			return err
		}

		fmt.Println(instance.IP)
		fmt.Printf("ssh ubuntu@%s\n", instance.IP)

		if err := config.SaveServer(".", environment, instance.IP); err != nil {
			return fmt.Errorf("error saving server address: %w", err)
		}
		return nil
	},
}
