package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newAccountCommand() *cobra.Command {
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Manage accounts",
	}
	accountCmd.AddCommand(newAccountAddCommand())
	accountCmd.AddCommand(newAccountListCommand())
	return accountCmd
}

func newAccountAddCommand() *cobra.Command {
	var ledgerDir string
	var accountType string
	var initial string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			balance, err := decimal.NewFromString(initial)
			if err != nil {
				return fmt.Errorf("invalid initial balance %q: %w", initial, err)
			}

			acct, err := env.svc.AddAccount(ledger.AccountParams{
				Name:           args[0],
				Type:           accountType,
				InitialBalance: balance,
			})
			if err != nil {
				return err
			}

			if err := env.persist("account.add", acct.Name, acct.ID); err != nil {
				return err
			}
			fmt.Printf("Added account %q (%s)\n", acct.Name, acct.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&accountType, "type", "", "account type (checking, savings, credit, cash)")
	cmd.Flags().StringVar(&initial, "initial", "0", "initial balance")

	return cmd
}

func newAccountListCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts with derived balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			total := decimal.Zero
			for _, acct := range env.svc.Store().Accounts() {
				balance := env.svc.AccountBalance(acct.ID)
				total = total.Add(balance)
				fmt.Printf("%-24s %10s  %s\n", acct.Name, balance.StringFixed(2), acct.Type)
			}
			fmt.Printf("%-24s %10s\n", "TOTAL", total.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}
