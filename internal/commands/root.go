package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "budgetbook",
		Short:   "Envelope budgeting on a plain-text friendly ledger",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newAccountCommand())
	rootCmd.AddCommand(newEnvelopeCommand())
	rootCmd.AddCommand(newPayeeCommand())
	rootCmd.AddCommand(newTxCommand())
	rootCmd.AddCommand(newTransferCommand())
	rootCmd.AddCommand(newMoveCommand())
	rootCmd.AddCommand(newAllocateCommand())
	rootCmd.AddCommand(newReorderCommand())
	rootCmd.AddCommand(newBalancesCommand())
	rootCmd.AddCommand(newExportCommand())
	rootCmd.AddCommand(newImportCommand())

	return rootCmd
}
