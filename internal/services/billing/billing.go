package billing

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"
	"github.com/launchpad-ops/tfscaffold/internal/types"
)

// Calculator performs invoice arithmetic with fixed decimal precision so totals match the
// generated draft-invoice.sh, which uses bc with scale=2.
type Calculator struct {
	ctx *apd.Context
}

func NewCalculator() *Calculator {
	ctx := apd.BaseContext.WithPrecision(34)
	ctx.Rounding = apd.RoundHalfUp
	return &Calculator{ctx: ctx}
}

type Invoice struct {
	Model     types.BillingModel
	Fee       string
	Markup    string
	InfraCost string
	Total     string
}

// Total computes the amount billed for one period:
//
//	fixed:       fee
//	passthrough: 0 (infrastructure is billed directly to the client)
//	hybrid:      fee + infraCost * markup / 100
func (c *Calculator) Total(model types.BillingModel, fee, markupPercent, infraCost string) (*Invoice, error) {
	f, err := c.parse("monthly fee", fee)
	if err != nil {
		return nil, err
	}
	m, err := c.parse("markup percent", markupPercent)
	if err != nil {
		return nil, err
	}
	infra, err := c.parse("infrastructure cost", infraCost)
	if err != nil {
		return nil, err
	}

	total := new(apd.Decimal)
	switch model {
	case types.BillingFixed:
		total.Set(f)
	case types.BillingPassthrough:
	case types.BillingHybrid:
		markup := new(apd.Decimal)
		if _, err := c.ctx.Mul(markup, infra, m); err != nil {
			return nil, fmt.Errorf("failed to apply markup: %w", err)
		}
		if _, err := c.ctx.Quo(markup, markup, apd.New(100, 0)); err != nil {
			return nil, fmt.Errorf("failed to apply markup: %w", err)
		}
		if _, err := c.ctx.Add(total, f, markup); err != nil {
			return nil, fmt.Errorf("failed to add markup: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported billing model %q", model)
	}

	return &Invoice{
		Model:     model,
		Fee:       c.format(f),
		Markup:    c.format(m),
		InfraCost: c.format(infra),
		Total:     c.format(total),
	}, nil
}

// FormatAmount normalizes a decimal string to two places. Invalid input formats as 0.00.
func (c *Calculator) FormatAmount(amount string) string {
	d, err := c.parse("amount", amount)
	if err != nil {
		return "0.00"
	}
	return c.format(d)
}

// Describe is the one-line pricing narrative used in the billing guide,
// e.g. "25.00 + 5% of infra cost".
func (c *Calculator) Describe(cfg types.BillingConfig) string {
	fee := c.FormatAmount(cfg.MonthlyFee)
	switch cfg.Model {
	case types.BillingFixed:
		return fee + " flat monthly fee"
	case types.BillingPassthrough:
		return "infrastructure billed directly to the client"
	case types.BillingHybrid:
		return fmt.Sprintf("%s + %s%% of infra cost", fee, c.percent(cfg.MarkupPercent))
	}
	return string(cfg.Model)
}

func (c *Calculator) parse(field, s string) (*apd.Decimal, error) {
	if s == "" {
		return apd.New(0, 0), nil
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", field, s, err)
	}
	if d.Negative || d.Form != apd.Finite {
		return nil, fmt.Errorf("invalid %s %q: must be a non-negative number", field, s)
	}
	return d, nil
}

func (c *Calculator) format(d *apd.Decimal) string {
	out := new(apd.Decimal)
	if _, err := c.ctx.Quantize(out, d, -2); err != nil {
		return d.Text('f')
	}
	return out.Text('f')
}

// percent prints a markup without trailing zeros: "5", "7.5".
func (c *Calculator) percent(s string) string {
	d, err := c.parse("markup percent", s)
	if err != nil {
		return "0"
	}
	out := new(apd.Decimal)
	out.Reduce(d)
	return out.Text('f')
}
