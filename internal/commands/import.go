package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/importer"
	"github.com/budgetbook-dev/budgetbook/internal/ledger"
	"github.com/budgetbook-dev/budgetbook/internal/model"
)

func newImportCommand() *cobra.Command {
	var ledgerDir string
	var accountRef string
	var format string
	var envelopeRef string

	registry := importer.DefaultRegistry()

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import transactions from a bank CSV export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := registry.Get(format)
			if parser == nil {
				return fmt.Errorf("unknown format %q (have: %s)", format, strings.Join(registry.Formats(), ", "))
			}

			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			acct, err := env.findAccount(accountRef)
			if err != nil {
				return err
			}
			envelopeID := ""
			if envelopeRef != "" {
				e, err := env.findEnvelope(envelopeRef)
				if err != nil {
					return err
				}
				envelopeID = e.ID
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[0], err)
			}
			defer f.Close()

			rows, err := parser.Parse(f)
			if err != nil {
				return fmt.Errorf("parsing %s: %w", args[0], err)
			}

			booked := 0
			for _, row := range rows {
				payee, err := env.ensurePayee(row.Description)
				if err != nil {
					return err
				}

				txnType := model.TypeExpense
				if row.Amount.IsPositive() {
					txnType = model.TypeIncome
				}
				if _, err := env.svc.AddTransaction(ledger.TransactionParams{
					AccountID:   acct.ID,
					EnvelopeID:  envelopeID,
					PayeeID:     payee.ID,
					Amount:      row.Amount.Abs(),
					Type:        txnType,
					Description: row.Description,
					Date:        row.Date,
				}); err != nil {
					return fmt.Errorf("booking row %s %q: %w", row.Date.Format("2006-01-02"), row.Description, err)
				}
				booked++
			}

			if err := env.persist("import", fmt.Sprintf("%s (%d rows)", args[0], booked), acct.ID); err != nil {
				return err
			}
			fmt.Printf("Imported %d transactions into %s\n", booked, acct.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&accountRef, "account", "", "account to book into (required)")
	_ = cmd.MarkFlagRequired("account")
	cmd.Flags().StringVar(&format, "format", "generic", "bank file format")
	cmd.Flags().StringVar(&envelopeRef, "envelope", "", "envelope to assign expenses to")
	return cmd
}
