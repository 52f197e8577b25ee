package commands

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/id"
)

func newBalancesCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show the dashboard: accounts, envelopes, and monthly totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			fmt.Println("Accounts")
			total := decimal.Zero
			for _, acct := range env.svc.Store().Accounts() {
				balance := env.svc.AccountBalance(acct.ID)
				total = total.Add(balance)
				fmt.Printf("  %-24s %12s\n", acct.Name, balance.StringFixed(2))
			}
			fmt.Printf("  %-24s %12s\n", "TOTAL", total.StringFixed(2))

			month := env.svc.CurrentMonth()
			fmt.Println("\nEnvelopes")
			for _, category := range env.svc.Store().CategoryOrder() {
				fmt.Printf("  %s\n", category)
				for _, e := range env.svc.Store().EnvelopesInCategory(category) {
					fmt.Printf("    %-22s %12s available\n", e.Name, env.svc.EnvelopeBalance(e.ID).StringFixed(2))
				}
			}

			monthKey := id.MonthKey(time.Now())
			fmt.Printf("\nThis month (%s)\n", monthKey)
			fmt.Printf("  %-24s %12s\n", "Budgeted", env.svc.TotalMonthlyBudgeted(monthKey).StringFixed(2))
			fmt.Printf("  %-24s %12s\n", "Income", env.svc.MonthlyIncome(month).StringFixed(2))
			fmt.Printf("  %-24s %12s\n", "Spending", env.svc.MonthlySpending(month).StringFixed(2))

			fmt.Println("\nYear to date")
			fmt.Printf("  %-24s %12s\n", "Income", env.svc.YearToDateIncome().StringFixed(2))
			fmt.Printf("  %-24s %12s\n", "Spending", env.svc.YearToDateSpending().StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}
