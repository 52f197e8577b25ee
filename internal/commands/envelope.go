package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newEnvelopeCommand() *cobra.Command {
	envelopeCmd := &cobra.Command{
		Use:   "envelope",
		Short: "Manage budget envelopes",
	}
	envelopeCmd.AddCommand(newEnvelopeAddCommand())
	envelopeCmd.AddCommand(newEnvelopeListCommand())
	envelopeCmd.AddCommand(newEnvelopeRmCommand())
	return envelopeCmd
}

func newEnvelopeAddCommand() *cobra.Command {
	var ledgerDir string
	var category string
	var budget string
	var estimate string
	var dueDay int

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			budgetAmt, err := decimal.NewFromString(budget)
			if err != nil {
				return fmt.Errorf("invalid budget %q: %w", budget, err)
			}
			estimateAmt := decimal.Zero
			if estimate != "" {
				if estimateAmt, err = decimal.NewFromString(estimate); err != nil {
					return fmt.Errorf("invalid estimate %q: %w", estimate, err)
				}
			}

			created, err := env.svc.AddEnvelope(ledger.EnvelopeParams{
				Name:     args[0],
				Category: category,
				Budget:   budgetAmt,
				Estimate: estimateAmt,
				DueDay:   dueDay,
			})
			if err != nil {
				return err
			}

			if err := env.persist("envelope.add", created.Name, created.ID); err != nil {
				return err
			}
			fmt.Printf("Added envelope %q in %s (%s/month)\n", created.Name, created.Category, created.Budget.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&category, "category", "", "envelope category (required)")
	_ = cmd.MarkFlagRequired("category")
	cmd.Flags().StringVar(&budget, "budget", "0", "monthly budget amount")
	cmd.Flags().StringVar(&estimate, "estimate", "", "estimated monthly amount (informational)")
	cmd.Flags().IntVar(&dueDay, "due-day", 0, "day of month a bill is due (1-31)")

	return cmd
}

func newEnvelopeListCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List envelopes by category with available balances",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			month := env.svc.CurrentMonth()
			for _, category := range env.svc.Store().CategoryOrder() {
				fmt.Printf("%s\n", category)
				for _, e := range env.svc.Store().EnvelopesInCategory(category) {
					balance := env.svc.EnvelopeBalance(e.ID)
					spent := env.svc.EnvelopeSpending(e.ID, month)
					fmt.Printf("  %-22s %10s available  %10s spent this month\n",
						e.Name, balance.StringFixed(2), spent.StringFixed(2))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}

func newEnvelopeRmCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "rm <name>",
		Short: "Delete an envelope",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			target, err := env.findEnvelope(args[0])
			if err != nil {
				return err
			}
			if err := env.svc.DeleteEnvelope(target.ID); err != nil {
				return err
			}

			if err := env.persist("envelope.rm", target.Name, target.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted envelope %q\n", target.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}
