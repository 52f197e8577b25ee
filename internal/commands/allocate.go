package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/id"
)

func newAllocateCommand() *cobra.Command {
	var ledgerDir string
	var envelope string
	var month string
	var amount string

	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Override an envelope's budget for one month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			target, err := env.findEnvelope(envelope)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			if month == "" {
				month = id.MonthKey(time.Now())
			}

			if err := env.svc.SetMonthlyAllocation(target.ID, month, amt); err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s = %s", target.Name, month, amt.StringFixed(2))
			if err := env.persist("allocation.set", details, target.ID); err != nil {
				return err
			}
			fmt.Printf("Allocated %s to %q for %s\n", amt.StringFixed(2), target.Name, month)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&envelope, "envelope", "", "envelope name or id (required)")
	_ = cmd.MarkFlagRequired("envelope")
	cmd.Flags().StringVar(&month, "month", "", "month YYYY-MM (default current)")
	cmd.Flags().StringVar(&amount, "amount", "", "budget amount for the month (required)")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}
