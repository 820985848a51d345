package billing

import (
	"testing"

	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculator_Total(t *testing.T) {
	tests := []struct {
		name    string
		model   types.BillingModel
		fee     string
		markup  string
		infra   string
		want    string
		wantErr bool
	}{
		{name: "fixed", model: types.BillingFixed, fee: "100", want: "100.00"},
		{name: "fixed ignores infra", model: types.BillingFixed, fee: "100", markup: "10", infra: "999", want: "100.00"},
		{name: "hybrid", model: types.BillingHybrid, fee: "50", markup: "10", infra: "200", want: "70.00"},
		{name: "hybrid rounds half up", model: types.BillingHybrid, fee: "0", markup: "5", infra: "0.1", want: "0.01"},
		{name: "hybrid fractional", model: types.BillingHybrid, fee: "25.5", markup: "7.5", infra: "123.45", want: "34.76"},
		{name: "passthrough", model: types.BillingPassthrough, fee: "100", markup: "10", infra: "200", want: "0.00"},
		{name: "empty values are zero", model: types.BillingHybrid, want: "0.00"},
		{name: "negative fee", model: types.BillingFixed, fee: "-1", wantErr: true},
		{name: "not a number", model: types.BillingFixed, fee: "ten", wantErr: true},
		{name: "unknown model", model: "subscription", fee: "1", wantErr: true},
	}

	c := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv, err := c.Total(tt.model, tt.fee, tt.markup, tt.infra)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, inv.Total)
		})
	}
}

func TestCalculator_Describe(t *testing.T) {
	tests := []struct {
		name string
		cfg  types.BillingConfig
		want string
	}{
		{
			name: "hybrid",
			cfg:  types.BillingConfig{Model: types.BillingHybrid, MonthlyFee: "25", MarkupPercent: "5"},
			want: "25.00 + 5% of infra cost",
		},
		{
			name: "hybrid fractional percent",
			cfg:  types.BillingConfig{Model: types.BillingHybrid, MonthlyFee: "10.5", MarkupPercent: "7.50"},
			want: "10.50 + 7.5% of infra cost",
		},
		{
			name: "fixed",
			cfg:  types.BillingConfig{Model: types.BillingFixed, MonthlyFee: "100"},
			want: "100.00 flat monthly fee",
		},
		{
			name: "passthrough",
			cfg:  types.BillingConfig{Model: types.BillingPassthrough},
			want: "infrastructure billed directly to the client",
		},
	}

	c := NewCalculator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Describe(tt.cfg))
		})
	}
}

func TestCalculator_FormatAmount(t *testing.T) {
	c := NewCalculator()
	assert.Equal(t, "12.30", c.FormatAmount("12.3"))
	assert.Equal(t, "0.00", c.FormatAmount("abc"))
	assert.Equal(t, "0.00", c.FormatAmount(""))
}
