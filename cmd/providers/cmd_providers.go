package providers

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/launchpad-ops/tfscaffold/internal/composer"
	"github.com/launchpad-ops/tfscaffold/internal/registry"
	"github.com/launchpad-ops/tfscaffold/internal/services/hcl"
	"github.com/launchpad-ops/tfscaffold/internal/services/markdown"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	catalogDir string
	force      bool
)

func NewProvidersCmd() *cobra.Command {
	providersCmd := &cobra.Command{
		Use:   "providers",
		Short: "Inspect and seed the provider catalog",
	}

	providersCmd.AddCommand(newListCmd(), newInitCmd())

	return providersCmd
}

func newListCmd() *cobra.Command {
	listCmd := &cobra.Command{
		Use:           "list",
		Short:         "List the providers in the catalog",
		SilenceErrors: true,
		PreRunE:       preRunProviders,
		RunE:          runList,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&catalogDir, "catalog-dir", "./providers", "Directory holding provider descriptors")
	listCmd.Flags().AddFlagSet(optionalFlags)

	return listCmd
}

func newInitCmd() *cobra.Command {
	initCmd := &cobra.Command{
		Use:           "init",
		Short:         "Write the built-in provider descriptors to the catalog directory",
		SilenceErrors: true,
		PreRunE:       preRunProviders,
		RunE:          runInit,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&catalogDir, "catalog-dir", "./providers", "Directory to write provider descriptors to")
	optionalFlags.BoolVar(&force, "force", false, "Overwrite descriptors that already exist")
	initCmd.Flags().AddFlagSet(optionalFlags)

	return initCmd
}

func preRunProviders(cmd *cobra.Command, args []string) error {
	return utils.BindEnvToFlags(cmd)
}

func runList(cmd *cobra.Command, args []string) error {
	reg, err := registry.Load(catalogDir)
	if err != nil {
		return err
	}

	return ProviderTable(reg).Print(os.Stdout)
}

func runInit(cmd *cobra.Command, args []string) error {
	written, err := registry.WriteBuiltinCatalog(catalogDir, force)
	if err != nil {
		return fmt.Errorf("failed to write provider catalog: %w", err)
	}

	if len(written) == 0 {
		slog.Info("catalog already up to date, use --force to overwrite", "directory", catalogDir)
		return nil
	}
	slog.Info("✅ provider catalog written", "directory", catalogDir, "files", len(written))

	return nil
}

// ProviderTable renders the provider menu with each provider's remote backends and hosting models.
func ProviderTable(reg *registry.Registry) *markdown.Markdown {
	var rows [][]string
	for _, entry := range reg.Menu() {
		d := entry.Descriptor

		backends := strings.Join(d.RemoteBackendTypes(), ", ")
		if backends == "" {
			backends = "local only"
		}

		var hosting []string
		options := composer.HostingOptions(d.ID)
		for _, h := range options {
			hosting = append(hosting, h.String())
		}
		if len(hosting) == 0 {
			hosting = append(hosting, "unclassified")
			// unclassified providers are generated self-managed
			options = []types.HostingModel{types.HostingSelfManaged}
		}

		mainTF := "generated"
		for _, h := range options {
			if !hcl.HasResourceTemplate(d.ID, h) {
				mainTF = "placeholder"
			}
		}

		rows = append(rows, []string{entry.Category, d.ID, d.Name, backends, strings.Join(hosting, ", "), mainTF})
	}

	return markdown.New().
		AddHeading(fmt.Sprintf("Providers (%d)", reg.Len()), 2).
		AddTable([]string{"Category", "ID", "Name", "State Backends", "Hosting", "main.tf"}, rows)
}
