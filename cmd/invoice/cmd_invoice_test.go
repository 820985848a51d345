package invoice

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/launchpad-ops/tfscaffold/internal/services/billing"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintInvoice(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		name     string
		model    string
		contains []string
		excludes []string
	}{
		{
			name:     "hybrid shows every component",
			model:    "hybrid",
			contains: []string{"Invoice 2026-09 (shop)", "Monthly fee: 25.00 USD", "Infra cost:  100.00 USD", "Markup:      5.00%", "30.00 USD"},
		},
		{
			name:     "fixed shows the fee only",
			model:    "fixed",
			contains: []string{"Monthly fee: 25.00 USD", "25.00 USD"},
			excludes: []string{"Markup", "Infra cost"},
		},
		{
			name:     "passthrough notes direct billing",
			model:    "passthrough",
			contains: []string{"billed directly to the client", "0.00 USD"},
			excludes: []string{"Monthly fee"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := billing.NewCalculator().Total(types.BillingModel(tt.model), "25", "5", "100")
			require.NoError(t, err)

			var buf bytes.Buffer
			printInvoice(&buf, "shop", "2026-09", "USD", inv)

			for _, want := range tt.contains {
				assert.Contains(t, buf.String(), want)
			}
			for _, unwanted := range tt.excludes {
				assert.NotContains(t, buf.String(), unwanted)
			}
		})
	}
}
