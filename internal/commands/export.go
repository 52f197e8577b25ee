package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/ledger"
)

func newExportCommand() *cobra.Command {
	var ledgerDir string
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export all transactions to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("creating export directory: %w", err)
			}
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()

			txns := env.svc.Store().Transactions()
			if err := ledger.WriteTransactions(f, txns); err != nil {
				return fmt.Errorf("writing %s: %w", outPath, err)
			}
			fmt.Printf("Exported %d transactions to %s\n", len(txns), outPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&outPath, "out", filepath.Join("exports", "transactions.csv"), "output file path")
	return cmd
}
