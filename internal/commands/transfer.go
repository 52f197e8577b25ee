package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newTransferCommand() *cobra.Command {
	var ledgerDir string
	var from string
	var to string
	var amount string
	var dateFlag string
	var description string

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			fromAcct, err := env.findAccount(from)
			if err != nil {
				return err
			}
			toAcct, err := env.findAccount(to)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			res, err := env.svc.TransferBetweenAccounts(ledger.AccountTransferParams{
				FromAccountID: fromAcct.ID,
				ToAccountID:   toAcct.ID,
				Amount:        amt,
				Date:          date,
				Description:   description,
			})
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s -> %s", amt.StringFixed(2), fromAcct.Name, toAcct.Name)
			if err := env.persist("transfer.accounts", details, res.GroupID); err != nil {
				return err
			}
			fmt.Printf("Transferred %s from %q to %q\n", amt.StringFixed(2), fromAcct.Name, toAcct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&from, "from", "", "source account (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "destination account (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to move (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateFlag, "date", "", "transfer date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&description, "description", "", "override the derived description")

	return cmd
}

func newMoveCommand() *cobra.Command {
	var ledgerDir string
	var from string
	var to string
	var account string
	var amount string
	var dateFlag string
	var description string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Move budget between envelopes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			fromEnv, err := env.findEnvelope(from)
			if err != nil {
				return err
			}
			toEnv, err := env.findEnvelope(to)
			if err != nil {
				return err
			}
			acct, err := env.findAccount(account)
			if err != nil {
				return err
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			date, err := parseDate(dateFlag)
			if err != nil {
				return err
			}

			res, err := env.svc.TransferBetweenEnvelopes(ledger.EnvelopeTransferParams{
				FromEnvelopeID: fromEnv.ID,
				ToEnvelopeID:   toEnv.ID,
				AccountID:      acct.ID,
				Amount:         amt,
				Date:           date,
				Description:    description,
			})
			if err != nil {
				return err
			}

			details := fmt.Sprintf("%s %s -> %s", amt.StringFixed(2), fromEnv.Name, toEnv.Name)
			if err := env.persist("transfer.envelopes", details, res.GroupID); err != nil {
				return err
			}
			fmt.Printf("Moved %s from %q to %q\n", amt.StringFixed(2), fromEnv.Name, toEnv.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&from, "from", "", "source envelope (required)")
	_ = cmd.MarkFlagRequired("from")
	cmd.Flags().StringVar(&to, "to", "", "destination envelope (required)")
	_ = cmd.MarkFlagRequired("to")
	cmd.Flags().StringVar(&account, "account", "", "account both legs post to (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&amount, "amount", "", "amount to move (required)")
	_ = cmd.MarkFlagRequired("amount")
	cmd.Flags().StringVar(&dateFlag, "date", "", "transfer date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&description, "description", "", "override the derived description")

	return cmd
}
