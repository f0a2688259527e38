package cmd

import (
	"fmt"

	"component-loader/core/deployment"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deployCmd represents the deploy command
var deployCmd = &cobra.Command{
	Use:   "deploy <file>",
	Short: "Apply a deployment file and tear it down again",
	Long: `Loads the libraries and creates the components listed in a deployment file, then
destroys the components in reverse order. Use it to validate a deployment before
passing it to "start --deploy".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := bootstrap()
		if err != nil {
			return err
		}
		d, err := deployment.Load(args[0])
		if err != nil {
			return err
		}

		applied, err := d.Apply(rt.loader, rt.logger)
		if err != nil {
			return fmt.Errorf("deployment failed: %w", err)
		}
		for _, skipped := range applied.Skipped {
			rt.logger.Warn("Skipped library", zap.Error(skipped))
		}

		fmt.Println("\n=== Deployment ===")
		fmt.Printf("Libraries Loaded: %d\n", len(rt.loader.Libraries()))
		fmt.Printf("Files Skipped: %d\n", len(applied.Skipped))
		fmt.Printf("Components Created: %d\n", len(applied.Components))
		for _, inst := range rt.loader.Instances() {
			fmt.Printf("  %s (%s)\n", inst.Name, inst.TypeName)
		}

		return applied.Teardown(rt.loader)
	},
}

func init() {
	RootCmd.AddCommand(deployCmd)
}
