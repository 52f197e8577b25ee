package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func newTxCommand() *cobra.Command {
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Manage transactions",
	}
	txCmd.AddCommand(newTxAddCommand())
	txCmd.AddCommand(newTxRmCommand())
	txCmd.AddCommand(newTxListCommand())
	return txCmd
}

func newTxAddCommand() *cobra.Command {
	var ledgerDir string
	var account string
	var envelope string
	var payee string
	var amount string
	var txType string
	var description string
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a transaction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			acct, err := env.findAccount(account)
			if err != nil {
				return err
			}
			p, err := env.ensurePayee(payee)
			if err != nil {
				return err
			}

			envelopeID := ""
			if envelope != "" {
				e, err := env.findEnvelope(envelope)
				if err != nil {
					return err
				}
				envelopeID = e.ID
			}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			txn, err := env.svc.AddTransaction(ledger.TransactionParams{
				AccountID:   acct.ID,
				EnvelopeID:  envelopeID,
				PayeeID:     p.ID,
				Amount:      amt,
				Type:        model.TransactionType(txType),
				Description: description,
				Date:        date,
			})
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s, %s", txType, amt.StringFixed(2), p.Name)
			if err := env.persist("tx.add", details, txn.ID); err != nil {
				return err
			}
			fmt.Printf("Recorded %s of %s on %s (%s)\n", txType, amt.StringFixed(2), acct.Name, txn.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&account, "account", "", "account name or id (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&envelope, "envelope", "", "envelope name or id")
	cmd.Flags().StringVar(&payee, "payee", "", "payee name, created if missing (required)")
	_ = cmd.MarkFlagRequired("payee")
	cmd.Flags().StringVar(&amount, "amount", "", "positive amount (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&txType, "type", "expense", "income or expense")
	cmd.Flags().StringVar(&description, "description", "", "free-text description")
	cmd.Flags().StringVar(&dateFlag, "date", "", "transaction date YYYY-MM-DD (default today)")

	return cmd
}

func newTxRmCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.svc.DeleteTransaction(args[0]); err != nil {
				return err
			}
			if err := env.persist("tx.rm", "", args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted transaction %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}

func newTxListCommand() *cobra.Command {
	var ledgerDir string
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			txns := env.svc.Store().Transactions()
			if limit > 0 && len(txns) > limit {
				txns = txns[:limit]
			}
			for _, t := range txns {
				sign := "-"
				if t.Type == model.TypeIncome {
					sign = "+"
				}
				payeeName := t.PayeeID
				if p, ok := env.svc.Store().Payee(t.PayeeID); ok {
					payeeName = p.Name
				}
				fmt.Printf("%s  %s%10s  %-24s %s  %s\n",
					t.Date.Format("2006-01-02"), sign, t.Amount.StringFixed(2), payeeName, t.Description, t.ID)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().IntVar(&limit, "limit", 25, "maximum rows, 0 = all")
	return cmd
}
