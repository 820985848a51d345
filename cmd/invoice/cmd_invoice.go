package invoice

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/launchpad-ops/tfscaffold/internal/services/billing"
	"github.com/launchpad-ops/tfscaffold/internal/services/persistence"
	"github.com/launchpad-ops/tfscaffold/internal/types"
	"github.com/launchpad-ops/tfscaffold/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	projectDir string
	period     string
	infraCost  string
)

func NewInvoiceCmd() *cobra.Command {
	invoiceCmd := &cobra.Command{
		Use:           "invoice",
		Short:         "Calculate the invoice total for one billing period",
		Long:          "Calculate what to bill the client for one period, using the billing model stored in the project record and the infrastructure cost of that period.",
		SilenceErrors: true,
		PreRunE:       preRunInvoice,
		RunE:          runInvoice,
	}

	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&period, "period", "", "Billing period as YYYY-MM")
	invoiceCmd.Flags().AddFlagSet(requiredFlags)

	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&projectDir, "project-dir", ".", "Directory of a project created by create-project")
	optionalFlags.StringVar(&infraCost, "infra-cost", "0", "Infrastructure cost of the period in the billing currency")
	invoiceCmd.Flags().AddFlagSet(optionalFlags)

	invoiceCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, optionalFlags}
		groupNames := []string{"Required Flags", "Optional Flags"}

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

	invoiceCmd.MarkFlagRequired("period")

	return invoiceCmd
}

func preRunInvoice(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runInvoice(cmd *cobra.Command, args []string) error {
	if _, err := time.Parse("2006-01", period); err != nil {
		return fmt.Errorf("invalid --period %q, expected YYYY-MM", period)
	}

	record, err := persistence.NewFileService(projectDir).Load()
	if err != nil {
		return err
	}
	cfg, err := record.Billing()
	if err != nil {
		return err
	}

	invoice, err := billing.NewCalculator().Total(cfg.Model, cfg.MonthlyFee, cfg.MarkupPercent, infraCost)
	if err != nil {
		return fmt.Errorf("failed to calculate invoice: %w", err)
	}

	printInvoice(os.Stdout, record.ProjectName, period, cfg.Currency, invoice)
	return nil
}

func printInvoice(w io.Writer, project, period, currency string, invoice *billing.Invoice) {
	fmt.Fprintf(w, "%s %s (%s)\n", color.CyanString("Invoice"), period, project)
	fmt.Fprintf(w, "  Model:       %s\n", invoice.Model)

	switch invoice.Model {
	case types.BillingFixed:
		fmt.Fprintf(w, "  Monthly fee: %s %s\n", invoice.Fee, currency)
	case types.BillingPassthrough:
		fmt.Fprintf(w, "  Infra cost:  %s %s %s\n", invoice.InfraCost, currency, color.HiBlackString("(billed directly to the client)"))
	case types.BillingHybrid:
		fmt.Fprintf(w, "  Monthly fee: %s %s\n", invoice.Fee, currency)
		fmt.Fprintf(w, "  Infra cost:  %s %s\n", invoice.InfraCost, currency)
		fmt.Fprintf(w, "  Markup:      %s%%\n", invoice.Markup)
	}

	fmt.Fprintf(w, "  %s %s\n", color.GreenString("Total:      "), color.New(color.Bold).Sprintf("%s %s", invoice.Total, currency))
}
