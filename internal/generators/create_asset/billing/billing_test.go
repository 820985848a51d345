package billing

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billingsvc "github.com/launchpad-ops/tfscaffold/internal/services/billing"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

func billingRecord(model types.BillingModel, fee, markup string) *types.ProjectRecord {
	return &types.ProjectRecord{
		ProjectName:          "shop",
		ProviderID:           "digitalocean",
		ProviderName:         "DigitalOcean",
		BillingEnabled:       true,
		BillingModel:         string(model),
		BillingMonthlyFee:    fee,
		BillingMarkupPercent: markup,
		BillingCurrency:      "usd",
	}
}

func TestBillingAssetGenerator_Guide(t *testing.T) {
	tests := []struct {
		name   string
		record *types.ProjectRecord
		want   []string
	}{
		{
			name:   "hybrid",
			record: billingRecord(types.BillingHybrid, "25", "5"),
			want:   []string{"25.00 + 5% of infra cost", "(USD)", "the invoice total is 30.00 USD"},
		},
		{
			name:   "fixed",
			record: billingRecord(types.BillingFixed, "100", "0"),
			want:   []string{"100.00 flat monthly fee", "the invoice total is 100.00 USD"},
		},
		{
			name:   "passthrough",
			record: billingRecord(types.BillingPassthrough, "0", "0"),
			want:   []string{"billed directly to the client", "pays it directly", "the invoice total is 0.00 USD"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			files, err := NewBillingAssetGenerator(BillingOpts{ProjectDir: dir, Record: tt.record}).Run()
			require.NoError(t, err)
			assert.Equal(t, []string{filepath.Join("billing", "BILLING_GUIDE.md"), filepath.Join("billing", "draft-invoice.sh")}, files)

			guide, err := os.ReadFile(filepath.Join(dir, "billing", "BILLING_GUIDE.md"))
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, string(guide), want)
			}
			assert.Contains(t, string(guide), "- [ ] ")
		})
	}
}

func TestBillingAssetGenerator_Script(t *testing.T) {
	dir := t.TempDir()
	_, err := NewBillingAssetGenerator(BillingOpts{ProjectDir: dir, Record: billingRecord(types.BillingHybrid, "25", "5")}).Run()
	require.NoError(t, err)

	script, err := os.ReadFile(filepath.Join(dir, "billing", "draft-invoice.sh"))
	require.NoError(t, err)
	for _, want := range []string{
		"MODEL=hybrid",
		"FEE=25",
		"MARKUP=5",
		"CURRENCY=USD",
		"PROVIDER=DigitalOcean",
		`round2 "$FEE + $INFRA * $MARKUP / 100"`,
		"command -v pandoc",
	} {
		assert.Contains(t, string(script), want)
	}

	info, err := os.Stat(filepath.Join(dir, "billing", "draft-invoice.sh"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())
}

func TestBillingAssetGenerator_Disabled(t *testing.T) {
	_, err := NewBillingAssetGenerator(BillingOpts{ProjectDir: t.TempDir(), Record: &types.ProjectRecord{ProjectName: "shop"}}).Run()
	assert.ErrorIs(t, err, types.ErrFeatureDisabled)
}

func TestDraftInvoiceScript_Totals(t *testing.T) {
	for _, tool := range []string{"bash", "bc"} {
		if _, err := exec.LookPath(tool); err != nil {
			t.Skipf("%s not installed", tool)
		}
	}

	tests := []struct {
		name      string
		record    *types.ProjectRecord
		infra     string
		wantTotal string
		wantLines []string
	}{
		{
			name:      "fixed bills the fee",
			record:    billingRecord(types.BillingFixed, "100", "0"),
			infra:     "0",
			wantTotal: "100.00",
			wantLines: []string{"| Monthly fee | 100.00 |"},
		},
		{
			name:      "hybrid adds the markup",
			record:    billingRecord(types.BillingHybrid, "50", "10"),
			infra:     "200",
			wantTotal: "70.00",
			wantLines: []string{"| Monthly fee | 50.00 |", "| Infrastructure markup (10% of 200.00) | 20.00 |"},
		},
		{
			name:      "hybrid rounds half up",
			record:    billingRecord(types.BillingHybrid, "25", "5"),
			infra:     "0.3",
			wantTotal: "25.02",
		},
		{
			name:      "passthrough shows infrastructure without billing it",
			record:    billingRecord(types.BillingPassthrough, "0", "0"),
			infra:     "345.67",
			wantTotal: "0.00",
			wantLines: []string{"| Infrastructure (billed directly by DigitalOcean, informational) | 345.67 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			_, err := NewBillingAssetGenerator(BillingOpts{ProjectDir: dir, Record: tt.record}).Run()
			require.NoError(t, err)

			out, err := exec.Command("bash", filepath.Join(dir, "billing", "draft-invoice.sh"), "2026-01", tt.infra).CombinedOutput()
			require.NoError(t, err, string(out))
			assert.Contains(t, string(out), "invoices/invoice-2026-01.md: total "+tt.wantTotal+" USD")

			invoice, err := os.ReadFile(filepath.Join(dir, "billing", "invoices", "invoice-2026-01.md"))
			require.NoError(t, err)
			assert.Contains(t, string(invoice), "| **Total** | **"+tt.wantTotal+"** |")
			for _, line := range tt.wantLines {
				assert.Contains(t, string(invoice), line)
			}

			expected, err := billingsvc.NewCalculator().Total(types.BillingModel(tt.record.BillingModel), tt.record.BillingMonthlyFee, tt.record.BillingMarkupPercent, tt.infra)
			require.NoError(t, err)
			assert.Equal(t, expected.Total, tt.wantTotal)
		})
	}
}
