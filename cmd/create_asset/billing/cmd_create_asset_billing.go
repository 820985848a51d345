package billing

import (
	"fmt"

	"github.com/launchpad-ops/tfscaffold/internal/generators/features"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var projectDir string

func NewBillingCmd() *cobra.Command {
	billingCmd := &cobra.Command{
		Use:           "billing",
		Short:         "Create assets for client billing",
		Long:          "Write the billing guide and draft invoice script for the billing model stored in the project record",
		SilenceErrors: true,
		PreRunE:       preRunCreateBilling,
		RunE:          runCreateBilling,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&projectDir, "project-dir", ".", "Directory of a project created by create-project")
	billingCmd.Flags().AddFlagSet(optionalFlags)

	billingCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)
		if usage := optionalFlags.FlagUsages(); usage != "" {
			fmt.Printf("Optional Flags:\n%s\n", usage)
		}
		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")
		return nil
	})

	return billingCmd
}

func preRunCreateBilling(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runCreateBilling(cmd *cobra.Command, args []string) error {
	record, err := persistence.NewFileService(projectDir).Load()
	if err != nil {
		return err
	}

	feature := features.NewFeature(features.Billing, features.FeatureOpts{ProjectDir: projectDir, Record: record})
	if _, _, err := feature.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create billing assets: %w", err)
	}

	return nil
}
