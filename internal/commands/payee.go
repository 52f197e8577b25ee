package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newPayeeCommand() *cobra.Command {
	payeeCmd := &cobra.Command{
		Use:   "payee",
		Short: "Manage payees",
	}
	payeeCmd.AddCommand(newPayeeAddCommand())
	payeeCmd.AddCommand(newPayeeListCommand())
	return payeeCmd
}

func newPayeeAddCommand() *cobra.Command {
	var ledgerDir string
	var category string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a payee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			p, err := env.svc.AddPayee(ledger.PayeeParams{Name: args[0], Category: category})
			if err != nil {
				return err
			}

			if err := env.persist("payee.add", p.Name, p.ID); err != nil {
				return err
			}
			fmt.Printf("Added payee %q\n", p.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&category, "category", "", "default category")

	return cmd
}

func newPayeeListCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List payees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			for _, p := range env.svc.Store().Payees() {
				fmt.Printf("%-30s %s\n", p.Name, p.Category)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}
