package billing

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	billingsvc "github.com/launchpad-ops/tfscaffold/internal/services/billing"
	"github.com/launchpad-ops/tfscaffold/internal/services/markdown"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
)

//go:embed assets
var assetsFS embed.FS

const (
	TargetDir = "billing"
	// infrastructure cost used for the worked example in the guide
	exampleInfraCost = "100"
)

type BillingOpts struct {
	ProjectDir string
	Record     *types.ProjectRecord
}

type BillingAssetGenerator struct {
	projectDir string
	record     *types.ProjectRecord
	calculator *billingsvc.Calculator
}

func NewBillingAssetGenerator(opts BillingOpts) *BillingAssetGenerator {
	return &BillingAssetGenerator{
		projectDir: opts.ProjectDir,
		record:     opts.Record,
		calculator: billingsvc.NewCalculator(),
	}
}

func (b *BillingAssetGenerator) Run() ([]string, error) {
	cfg, err := b.record.Billing()
	if err != nil {
		return nil, err
	}

	slog.Info("🏁 generating billing assets", "model", cfg.Model)

	targetDir := filepath.Join(b.projectDir, TargetDir)
	slog.Info("📁 creating billing directory", "directory", targetDir)
	if err := os.MkdirAll(targetDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create billing directory: %w", err)
	}

	guide, err := b.guide(*cfg)
	if err != nil {
		return nil, err
	}

	script, err := utils.RenderTemplate(assetsFS, "assets/draft-invoice.sh.go.tmpl", struct {
		ProjectName  string
		ProviderName string
		Model        string
		Fee          string
		Markup       string
		Currency     string
	}{
		ProjectName:  b.record.ProjectName,
		ProviderName: b.record.ProviderName,
		Model:        string(cfg.Model),
		Fee:          zeroIfEmpty(cfg.MonthlyFee),
		Markup:       zeroIfEmpty(cfg.MarkupPercent),
		Currency:     utils.NormalizeCurrency(cfg.Currency),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render invoice script: %w", err)
	}

	var written []string
	files := []struct {
		name    string
		content []byte
		perm    os.FileMode
	}{
		{"BILLING_GUIDE.md", guide.Bytes(), 0644},
		{"draft-invoice.sh", []byte(script), 0755},
	}
	for _, f := range files {
		if err := persistence.WriteFileAtomic(filepath.Join(targetDir, f.name), f.content, f.perm); err != nil {
			return written, fmt.Errorf("failed to write %s: %w", f.name, err)
		}
		written = append(written, filepath.Join(TargetDir, f.name))
	}

	slog.Info("✅ billing assets generated", "directory", targetDir)
	return written, nil
}

func (b *BillingAssetGenerator) guide(cfg types.BillingConfig) (*markdown.Markdown, error) {
	calc := b.calculator
	currency := utils.NormalizeCurrency(cfg.Currency)

	example, err := calc.Total(cfg.Model, cfg.MonthlyFee, cfg.MarkupPercent, exampleInfraCost)
	if err != nil {
		return nil, fmt.Errorf("failed to compute example invoice: %w", err)
	}

	md := markdown.New()
	md.AddHeading(fmt.Sprintf("Billing guide: %s", b.record.ProjectName), 1)
	md.AddParagraph(fmt.Sprintf("Pricing: **%s** (%s).", calc.Describe(cfg), currency))

	md.AddKeyValueTable("Setting", "Value", [][2]string{
		{"Model", string(cfg.Model)},
		{"Monthly fee", calc.FormatAmount(cfg.MonthlyFee)},
		{"Markup on infrastructure", calc.FormatAmount(cfg.MarkupPercent) + "%"},
		{"Currency", currency},
		{"Infrastructure provider", b.record.ProviderName},
	})

	md.AddHeading("How the total is computed", 2)
	switch cfg.Model {
	case types.BillingFixed:
		md.AddParagraph("The client pays the monthly fee. Infrastructure costs are covered by the fee.")
	case types.BillingPassthrough:
		md.AddParagraph(fmt.Sprintf("The client holds the %s account and pays it directly. Invoices carry no amount from this project.", b.record.ProviderName))
	case types.BillingHybrid:
		md.AddParagraph("The client pays the monthly fee plus the markup percentage applied to that month's infrastructure cost.")
	}
	md.AddParagraph(fmt.Sprintf("Example: with an infrastructure cost of %s the invoice total is %s %s.",
		calc.FormatAmount(exampleInfraCost), example.Total, currency))

	md.AddHeading("Monthly worksheet", 2)
	md.AddTable([]string{"Line", "Value"}, [][]string{
		{"Billing period", "____"},
		{fmt.Sprintf("Infrastructure cost (%s invoice)", b.record.ProviderName), "____"},
		{"Monthly fee", calc.FormatAmount(cfg.MonthlyFee)},
		{"Markup amount", "____"},
		{"Total", "____"},
	})

	md.AddHeading("Drafting an invoice", 2)
	md.AddCodeBlock("./draft-invoice.sh 2026-01 184.20", "bash")
	md.AddParagraph("The script needs `bc`. When `pandoc` is installed a PDF is written next to the Markdown invoice; without it only the Markdown is produced.")

	md.AddHeading("Checklist", 2)
	md.AddChecklist([]string{
		"Agree on the billing model and currency in writing",
		fmt.Sprintf("Export the monthly %s cost report", b.record.ProviderName),
		"Run `./draft-invoice.sh` for the period",
		"Review the draft before sending",
		"Archive the sent invoice",
	})

	return md, nil
}

func zeroIfEmpty(s string) string {
	if s == "" {
		return "0"
	}
	return s
}
