package repo_handover

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	billingsvc "github.com/launchpad-ops/tfscaffold/internal/services/billing"
	"github.com/launchpad-ops/tfscaffold/internal/services/github"
	"github.com/launchpad-ops/tfscaffold/internal/services/markdown"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

//go:embed assets
var assetsFS embed.FS

const TargetDir = "handover"

// HandoverVerifier checks a handover plan against the source control host before the kit is
// written.
type HandoverVerifier interface {
	VerifyHandover(ctx context.Context, cfg types.RepoHandoverConfig) (*github.HandoverCheck, error)
}

type RepoHandoverOpts struct {
	ProjectDir string
	Record     *types.ProjectRecord
	// optional
	Verifier HandoverVerifier
}

type RepoHandoverAssetGenerator struct {
	projectDir string
	record     *types.ProjectRecord
	verifier   HandoverVerifier

	warnings []string
}

func NewRepoHandoverAssetGenerator(opts RepoHandoverOpts) *RepoHandoverAssetGenerator {
	return &RepoHandoverAssetGenerator{
		projectDir: opts.ProjectDir,
		record:     opts.Record,
		verifier:   opts.Verifier,
	}
}

// Warnings returns what verification reported during the last Run.
func (rh *RepoHandoverAssetGenerator) Warnings() []string {
	return rh.warnings
}

func (rh *RepoHandoverAssetGenerator) Run(ctx context.Context) ([]string, error) {
	handover, err := rh.record.RepoHandover()
	if err != nil {
		return nil, err
	}

	slog.Info("🏁 generating repository handover assets", "source", handover.SourceSlug(), "destination", handover.DestSlug())

	var check *github.HandoverCheck
	if rh.verifier != nil {
		check = rh.verify(ctx, *handover)
	}

	targetDir := filepath.Join(rh.projectDir, TargetDir)
	slog.Info("📁 creating handover directory", "directory", targetDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create handover directory: %w", err)
	}

	script, err := utils.RenderTemplate(assetsFS, "assets/handover.sh.go.tmpl", struct {
		SourceSlug string
		DestSlug   string
		DestOwner  string
		DestRepo   string
		Role       string
	}{
		SourceSlug: handover.SourceSlug(),
		DestSlug:   handover.DestSlug(),
		DestOwner:  handover.DestOwner,
		DestRepo:   handover.DestRepo,
		Role:       string(handover.Role),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render handover script: %w", err)
	}

	var written []string
	files := []struct {
		name    string
		content []byte
		perm    os.FileMode
	}{
		{"handover.sh", []byte(script), 0755},
		{"CLIENT_HANDOFF.md", NewClientHandoff(rh.record, *handover, check).Bytes(), 0644},
	}
	for _, f := range files {
		if err := persistence.WriteFileAtomic(filepath.Join(targetDir, f.name), f.content, f.perm); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		written = append(written, filepath.Join(TargetDir, f.name))
	}

	slog.Info("✅ repository handover assets generated", "directory", targetDir)
	return written, nil
}

func (rh *RepoHandoverAssetGenerator) verify(ctx context.Context, handover types.RepoHandoverConfig) *github.HandoverCheck {
	check, err := rh.verifier.VerifyHandover(ctx, handover)
	if err != nil {
		rh.warn(fmt.Sprintf("handover verification failed: %v", err))
		return nil
	}
	for _, w := range check.Warnings {
		rh.warn(w)
	}
	return check
}

func (rh *RepoHandoverAssetGenerator) warn(msg string) {
	slog.Warn("⚠️ " + msg)
	rh.warnings = append(rh.warnings, msg)
}

// NewClientHandoff builds the document handed to the client together with the repository.
func NewClientHandoff(record *types.ProjectRecord, handover types.RepoHandoverConfig, check *github.HandoverCheck) *markdown.Markdown {
	md := markdown.New()
	md.AddHeading(fmt.Sprintf("Client handoff: %s", record.ProjectName), 1)
	md.AddParagraph(fmt.Sprintf("This kit moves `%s` to `%s` and documents what the client takes over.", handover.SourceSlug(), handover.DestOwner))

	pairs := [][2]string{
		{"Source repository", "`" + handover.SourceSlug() + "`"},
		{"Destination", "`" + handover.DestSlug() + "`"},
		{"Collaborator role", string(handover.Role)},
		{"Infrastructure", fmt.Sprintf("%s, %s", record.ProviderName, record.HostingModel)},
		{"Terraform state", record.StateBackend},
	}
	if check != nil && check.DestOwnerType != "" {
		pairs = append(pairs, [2]string{"Destination owner type", check.DestOwnerType})
	}
	md.AddKeyValueTable("Item", "Value", pairs)

	md.AddHeading("Handover options", 2)
	md.AddParagraph("Run `./handover.sh` and pick exactly one option:")
	md.AddTable([]string{"Option", "Effect"}, [][]string{
		{"`push`", fmt.Sprintf("Creates `%s` and mirrors every branch and tag into it. The source stays untouched.", handover.DestSlug())},
		{"`collaborator`", fmt.Sprintf("Invites `%s` to the source repository with the `%s` role.", handover.DestOwner, handover.Role)},
		{"`transfer`", fmt.Sprintf("Transfers ownership of `%s` to `%s`.", handover.SourceSlug(), handover.DestOwner)},
	})

	if billing, err := record.Billing(); err == nil {
		calc := billingsvc.NewCalculator()
		currency := utils.NormalizeCurrency(billing.Currency)
		md.AddHeading("Billing terms", 2)
		md.AddParagraph(fmt.Sprintf("Pricing: **%s** (%s).", calc.Describe(*billing), currency))
		md.AddKeyValueTable("Term", "Value", [][2]string{
			{"Model", string(billing.Model)},
			{"Monthly fee", calc.FormatAmount(billing.MonthlyFee) + " " + currency},
			{"Markup on infrastructure", calc.FormatAmount(billing.MarkupPercent) + "%"},
			{"Currency", currency},
		})
	}

	md.AddHeading("Support", 2)
	md.AddKeyValueTable("Contact", "Details", [][2]string{
		{"Technical contact", "<name, email>"},
		{"Billing contact", "<name, email>"},
		{"Emergency line", "<phone, hours>"},
		{"Response time", "<e.g. next business day>"},
	})

	md.AddHeading("Client checklist", 2)
	checklist := []string{
		"Accept the repository invitation or transfer on GitHub",
		"Rotate every credential stored in `terraform.tfvars.json`",
		fmt.Sprintf("Move the %s account or project into the client's billing", record.ProviderName),
		"Review `README.md` and run `./deploy.sh` from a fresh clone",
	}
	if record.StateBackend == string(types.BackendRemote) {
		checklist = append(checklist, fmt.Sprintf("Grant the client access to the `%s` state backend", record.BackendType))
	} else {
		checklist = append(checklist, "Copy `terraform.tfstate` to the client securely, it is not in the repository")
	}
	md.AddChecklist(checklist)

	if check != nil && len(check.Warnings) > 0 {
		md.AddHeading("Verification notes", 2)
		md.AddList(check.Warnings)
	}

	return md
}
