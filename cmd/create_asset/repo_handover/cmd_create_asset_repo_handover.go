package repo_handover

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/launchpad-ops/tfscaffold/internal/generators/features"
	"github.com/launchpad-ops/tfscaffold/internal/services/github"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	projectDir string
	verify     bool
)

func NewRepoHandoverCmd() *cobra.Command {
	repoHandoverCmd := &cobra.Command{
		Use:           "repo-handover",
		Short:         "Create assets for the repository handover",
		Long:          "Write the handover script and client handoff notes that move the project repository to the client's GitHub account",
		SilenceErrors: true,
		PreRunE:       preRunCreateRepoHandover,
		RunE:          runCreateRepoHandover,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&projectDir, "project-dir", ".", "Directory of a project created by create-project")
	optionalFlags.BoolVar(&verify, "verify", false, "Check both repositories with the GitHub API (needs GITHUB_TOKEN)")
	repoHandoverCmd.Flags().AddFlagSet(optionalFlags)

	repoHandoverCmd.SetUsageFunc(func(c *cobra.Command) error {
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

	return repoHandoverCmd
}

func preRunCreateRepoHandover(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runCreateRepoHandover(cmd *cobra.Command, args []string) error {
	record, err := persistence.NewFileService(projectDir).Load()
	if err != nil {
		return err
	}

	opts := features.FeatureOpts{ProjectDir: projectDir, Record: record}
	if verify {
		verifier, err := github.NewVerifier(cmd.Context(), os.Getenv("GITHUB_TOKEN"))
		if err != nil {
			return fmt.Errorf("failed to set up handover verification: %w", err)
		}
		opts.Verifier = verifier
	}

	_, warnings, err := features.NewFeature(features.RepoHandover, opts).Run(cmd.Context())
	for _, w := range warnings {
		slog.Warn("⚠️ " + w)
	}
	if err != nil {
		return fmt.Errorf("failed to create repo handover assets: %w", err)
	}

	return nil
}
