package update

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	force     bool
	checkOnly bool
)

func NewUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "update",
		Short:         "Update the tfscaffold binary to the latest version",
		Long:          "Updates the tfscaffold binary by downloading the latest GitHub release and replacing the running executable",
		SilenceErrors: true,
		RunE:          runUpdate,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.BoolVar(&force, "force", false, "Update without asking for confirmation, including from development builds")
	optionalFlags.BoolVar(&checkOnly, "check-only", false, "Only report whether an update is available")
	cmd.Flags().AddFlagSet(optionalFlags)

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{optionalFlags}
		groupNames := []string{"Optional Flags"}

		for i, fs := range flagOrder {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n%s\n", groupNames[i], usage)
			}
		}

		return nil
	})

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	updater := NewUpdater(UpdaterOpts{
		Force:     force,
		CheckOnly: checkOnly,
	})
	if err := updater.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	return nil
}
