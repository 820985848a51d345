package reverse_proxy

import (
	"fmt"

	"github.com/launchpad-ops/tfscaffold/internal/generators/create_asset/reverse_proxy"
	"github.com/launchpad-ops/tfscaffold/internal/generators/features"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	projectDir   string
	upstreamPort int
)

func NewReverseProxyCmd() *cobra.Command {
	reverseProxyCmd := &cobra.Command{
		Use:           "reverse-proxy",
		Short:         "Create assets for the reverse proxy",
		Long:          "Write a Caddyfile and a remote setup script that put the deployed server behind an HTTPS reverse proxy",
		SilenceErrors: true,
		PreRunE:       preRunCreateReverseProxy,
		RunE:          runCreateReverseProxy,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&projectDir, "project-dir", ".", "Directory of a project created by create-project")
	optionalFlags.IntVar(&upstreamPort, "upstream-port", reverse_proxy.DefaultUpstreamPort, "Port of the application behind the proxy")
	reverseProxyCmd.Flags().AddFlagSet(optionalFlags)

	reverseProxyCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{optionalFlags}
		groupNames := []string{"Optional Flags"}

		for i, fs := range flagOrder {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n", groupNames[i])
				fmt.Printf("%s\n", usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	return reverseProxyCmd
}

func preRunCreateReverseProxy(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runCreateReverseProxy(cmd *cobra.Command, args []string) error {
	if upstreamPort < 1 || upstreamPort > 65535 {
		return fmt.Errorf("failed to parse reverse proxy opts: --upstream-port must be between 1 and 65535, got %d", upstreamPort)
	}

	record, err := persistence.NewFileService(projectDir).Load()
	if err != nil {
		return err
	}

	feature := features.NewFeature(features.ReverseProxy, features.FeatureOpts{
		ProjectDir:   projectDir,
		Record:       record,
		UpstreamPort: upstreamPort,
	})
	if _, _, err := feature.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create reverse proxy assets: %w", err)
	}

	return nil
}
