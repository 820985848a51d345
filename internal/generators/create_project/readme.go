package create_project

import (
	"fmt"

	"github.com/launchpad-ops/tfscaffold/internal/services/markdown"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

// NewReadme documents the generated project. Sensitive values are never printed.
func NewReadme(cfg *types.ProjectConfiguration) *markdown.Markdown {
	md := markdown.New()
	md.AddHeading(cfg.ProjectName, 1)
	md.AddParagraph(fmt.Sprintf("Terraform project for **%s** (%s hosting).", cfg.Provider.Name, cfg.HostingModel))

	backend := "local (`terraform.tfstate` in this directory)"
	if cfg.StateBackend.IsRemote() {
		backend = fmt.Sprintf("remote (`%s`)", cfg.StateBackend.Type)
	}
	md.AddKeyValueTable("Setting", "Value", [][2]string{
		{"Provider", cfg.Provider.Name},
		{"Hosting model", string(cfg.HostingModel)},
		{"State backend", backend},
		{"Reverse proxy", enabled(cfg.ReverseProxyEnabled())},
		{"Repository handover", enabled(cfg.RepoHandoverEnabled())},
		{"Billing", enabled(cfg.BillingEnabled())},
	})

	md.AddHeading("Variables", 2)
	rows := make([][]string, 0, cfg.Variables.Len())
	for _, name := range cfg.Variables.Names() {
		value, _ := cfg.Variables.Get(name)
		if utils.IsSensitiveName(name) {
			value = "(sensitive, set in terraform.tfvars.json)"
		} else if value == "" {
			value = "(empty)"
		} else {
			value = "`" + value + "`"
		}
		rows = append(rows, []string{"`" + name + "`", value, cfg.VariableDescription(name)})
	}
	md.AddTable([]string{"Name", "Value", "Description"}, rows)

	md.AddHeading("Files", 2)
	md.AddKeyValueTable("File", "Purpose", [][2]string{
		{"`versions.tf`", "Terraform and provider version pins"},
		{"`provider.tf`", "Provider configuration and authentication"},
		{"`backend.tf`", "State backend"},
		{"`variables.tf`", "Variable declarations"},
		{"`terraform.tfvars.json`", "Resolved variable values, keep out of version control"},
		{"`main.tf`", "Resources"},
		{"`outputs.tf`", "Outputs"},
		{"`deploy.sh`", "Plan and apply workflow"},
	})

	md.AddHeading("Deploying", 2)
	md.AddNumberedList([]string{
		"Fill in any empty or sensitive values in `terraform.tfvars.json`.",
		"Run `./deploy.sh` and review the plan before confirming.",
		"Set `AUTO_APPROVE=1` to skip the confirmation in CI.",
	})

	if cfg.ReverseProxyEnabled() {
		md.AddHeading("Reverse proxy", 2)
		md.AddParagraph(fmt.Sprintf("Caddy serves `%s` with automatic HTTPS. Its files live in `reverse-proxy/` and are regenerated with `tfscaffold create-asset reverse-proxy`.", cfg.ReverseProxy.Domain))
	}
	if cfg.RepoHandoverEnabled() {
		md.AddHeading("Repository handover", 2)
		md.AddParagraph(fmt.Sprintf("`%s` will be handed over to `%s`. The kit lives in `handover/` and is regenerated with `tfscaffold create-asset repo-handover`.", cfg.RepoHandover.SourceSlug(), cfg.RepoHandover.DestSlug()))
	}
	if cfg.BillingEnabled() {
		md.AddHeading("Billing", 2)
		md.AddParagraph(fmt.Sprintf("Billing model: **%s** in %s. The guide and invoice script live in `billing/` and are regenerated with `tfscaffold create-asset billing`.", cfg.Billing.Model, cfg.Billing.Currency))
	}

	return md
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}
