package create_asset

import (
	"github.com/launchpad-ops/tfscaffold/cmd/create_asset/billing"
	"github.com/launchpad-ops/tfscaffold/cmd/create_asset/repo_handover"
	"github.com/launchpad-ops/tfscaffold/cmd/create_asset/reverse_proxy"
	"github.com/spf13/cobra"
)

func NewCreateAssetCmd() *cobra.Command {
	createAssetCmd := &cobra.Command{
		Use:   "create-asset",
		Short: "Regenerate optional feature kits for an existing project",
		Long:  "Regenerate the reverse proxy, repository handover or billing kit of a project created by create-project, using the settings stored in its project record.",
	}

	createAssetCmd.AddCommand(
		reverse_proxy.NewReverseProxyCmd(),
		repo_handover.NewRepoHandoverCmd(),
		billing.NewBillingCmd(),
	)

	return createAssetCmd
}
