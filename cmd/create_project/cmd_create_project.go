package create_project

import (
	"fmt"

	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	catalogDir     string
	outputDir      string
	answersFile    string
	projectName    string
	upstreamPort   int
	verifyHandover bool
)

func NewCreateProjectCmd() *cobra.Command {
	createProjectCmd := &cobra.Command{
		Use:   "create-project",
		Short: "Create a Terraform project interactively",
		Long: `Walks through provider selection, project naming, variables, reverse proxy, repository handover,
billing, state backend and hosting model, then writes the Terraform project and any enabled
optional kits into one directory. Use --answers to run the same questions from a file.`,
		SilenceErrors: true,
		PreRunE:       preRunCreateProject,
		RunE:          runCreateProject,
	}

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&catalogDir, "catalog-dir", "./providers", "Directory holding provider descriptors, seeded with the built-in catalog when empty")
	optionalFlags.StringVar(&outputDir, "output-dir", "", "Directory to write the project to (default ./<project-name>)")
	optionalFlags.StringVar(&answersFile, "answers", "", "YAML, JSON or TOML file answering the prompts non-interactively")
	optionalFlags.StringVar(&projectName, "project-name", "", "Default answer for the project name prompt")
	createProjectCmd.Flags().AddFlagSet(optionalFlags)

	featureFlags := pflag.NewFlagSet("features", pflag.ExitOnError)
	featureFlags.SortFlags = false
	featureFlags.IntVar(&upstreamPort, "upstream-port", 3000, "Port of the application behind the reverse proxy")
	featureFlags.BoolVar(&verifyHandover, "verify-handover", false, "Check the handover repositories with the GitHub API (needs GITHUB_TOKEN)")
	createProjectCmd.Flags().AddFlagSet(featureFlags)

	createProjectCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{optionalFlags, featureFlags}
		groupNames := []string{"Optional Flags", "Feature Flags"}

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

	return createProjectCmd
}

func preRunCreateProject(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runCreateProject(cmd *cobra.Command, args []string) error {
	opts, err := parseCreateProjectOpts()
	if err != nil {
		return fmt.Errorf("failed to parse create project opts: %v", err)
	}

	runner := NewCreateProjectRunner(*opts)
	if err := runner.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

func parseCreateProjectOpts() (*CreateProjectOpts, error) {
	if upstreamPort < 1 || upstreamPort > 65535 {
		return nil, fmt.Errorf("--upstream-port must be between 1 and 65535, got %d", upstreamPort)
	}

	opts := CreateProjectOpts{
		CatalogDir:     catalogDir,
		OutputDir:      outputDir,
		AnswersFile:    answersFile,
		ProjectName:    projectName,
		UpstreamPort:   upstreamPort,
		VerifyHandover: verifyHandover,
	}

	return &opts, nil
}
