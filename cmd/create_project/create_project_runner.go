package create_project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/launchpad-ops/tfscaffold/internal/composer"
	"github.com/launchpad-ops/tfscaffold/internal/generators/create_project"
	"github.com/launchpad-ops/tfscaffold/internal/generators/features"
	"github.com/launchpad-ops/tfscaffold/internal/registry"
	"github.com/launchpad-ops/tfscaffold/internal/services/github"
	"github.com/launchpad-ops/tfscaffold/internal/services/markdown"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/services/prereq"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

type CreateProjectOpts struct {
	CatalogDir     string
	OutputDir      string
	AnswersFile    string
	ProjectName    string
	UpstreamPort   int
	VerifyHandover bool
}

type CreateProjectRunner struct {
	opts    CreateProjectOpts
	checker *prereq.Checker
	in      io.Reader
	out     io.Writer
}

func NewCreateProjectRunner(opts CreateProjectOpts) *CreateProjectRunner {
	return &CreateProjectRunner{
		opts:    opts,
		checker: prereq.NewChecker(),
		in:      os.Stdin,
		out:     os.Stdout,
	}
}

func (r *CreateProjectRunner) Run(ctx context.Context) error {
	slog.Info("🏁 checking external tools")
	report := r.checker.Check(prereq.DefaultCollaborators)
	report.Print(r.out)
	if err := report.Err(); err != nil {
		return err
	}

	reg, err := registry.Load(r.opts.CatalogDir)
	if err != nil {
		return err
	}

	prompter, err := r.prompter()
	if err != nil {
		return err
	}

	result, err := composer.NewComposer(composer.ComposerOpts{
		Registry:      reg,
		Prompter:      prompter,
		Collaborators: report,
		ProjectName:   r.opts.ProjectName,
	}).Compose(ctx)
	if err != nil {
		return err
	}
	cfg := result.Config

	dir := r.opts.OutputDir
	if dir == "" {
		dir = filepath.Join(".", cfg.ProjectName)
	}

	set, err := create_project.NewProjectGenerator(create_project.ProjectOpts{Config: cfg, OutputDir: dir}).Run()
	if err != nil {
		return err
	}
	set.Warnings = append(result.Warnings, set.Warnings...)

	record, err := persistence.NewFileService(dir).Load()
	if err != nil {
		return fmt.Errorf("failed to reload project record: %w", err)
	}

	featureOpts := features.FeatureOpts{
		ProjectDir:   dir,
		Record:       record,
		UpstreamPort: r.opts.UpstreamPort,
	}
	if r.opts.VerifyHandover && record.RepoHandoverEnabled {
		if verifier, err := github.NewVerifier(ctx, os.Getenv("GITHUB_TOKEN")); err != nil {
			set.Warn(fmt.Sprintf("handover verification skipped: %v", err))
		} else {
			featureOpts.Verifier = verifier
		}
	}
	features.Run(ctx, set, features.Enabled(featureOpts))

	printSummary(r.out, cfg, set, report)
	return nil
}

func (r *CreateProjectRunner) prompter() (composer.Prompter, error) {
	if r.opts.AnswersFile != "" {
		slog.Info("using answers file", "file", r.opts.AnswersFile)
		return composer.LoadAnswerPrompter(r.opts.AnswersFile)
	}
	return composer.NewLinePrompter(r.in, r.out), nil
}

var summaryStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("63")).
	Padding(0, 1)

func printSummary(w io.Writer, cfg *types.ProjectConfiguration, set *types.GeneratedArtifactSet, report *prereq.Report) {
	status := color.GreenString("✅ project generated")
	if set.Degraded() {
		status = color.YellowString("⚠️ project generated with warnings")
	}

	body := fmt.Sprintf("%s\n\nProject:  %s\nProvider: %s (%s)\nBackend:  %s\nFiles:    %d in %s",
		status, cfg.ProjectName, cfg.Provider.Name, cfg.HostingModel, backendLabel(cfg), len(set.Files), set.Dir)
	fmt.Fprintln(w, summaryStyle.Render(body))

	if len(set.Warnings) > 0 {
		fmt.Fprintln(w, color.YellowString("Warnings:"))
		for _, warning := range set.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
	}
	if len(set.Failures) > 0 {
		fmt.Fprintln(w, color.RedString("Optional features that failed:"))
		for _, f := range set.Failures {
			fmt.Fprintf(w, "  - %s\n", f.Error())
		}
	}

	NextSteps(cfg, set, report).Print(w)
}

func backendLabel(cfg *types.ProjectConfiguration) string {
	if cfg.StateBackend.IsRemote() {
		return "remote (" + cfg.StateBackend.Type + ")"
	}
	return "local"
}

// NextSteps lists the manual actions left after generation.
func NextSteps(cfg *types.ProjectConfiguration, set *types.GeneratedArtifactSet, report *prereq.Report) *markdown.Markdown {
	steps := []string{
		fmt.Sprintf("`cd %s`", set.Dir),
		"Review `terraform.tfvars.json` and fill in credentials",
	}
	if report != nil && !report.Available(prereq.Terraform.Name) {
		steps = append(steps, "Install terraform 1.5 or newer")
	}
	if report != nil {
		var optional []string
		for _, tool := range report.MissingOptional() {
			if tool.Name == prereq.Terraform.Name {
				continue
			}
			optional = append(optional, fmt.Sprintf("`%s` (%s)", tool.Name, tool.Purpose))
		}
		if len(optional) > 0 {
			steps = append(steps, "Optional tools not installed: "+strings.Join(optional, ", "))
		}
	}
	steps = append(steps, "Run `./deploy.sh`")
	if cfg.ReverseProxyEnabled() {
		steps = append(steps, fmt.Sprintf("Point DNS for `%s` at the server, then run `./reverse-proxy/setup-remote.sh`", cfg.ReverseProxy.Domain))
	}
	if cfg.RepoHandoverEnabled() {
		steps = append(steps, "Run `./handover/handover.sh` when the client is ready")
	}
	if cfg.BillingEnabled() {
		steps = append(steps, "Read `billing/BILLING_GUIDE.md` and draft the first invoice with `./billing/draft-invoice.sh`")
	}

	return markdown.New().AddHeading("Next steps", 2).AddNumberedList(steps)
}
