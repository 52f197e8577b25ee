package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newReorderCommand() *cobra.Command {
	reorderCmd := &cobra.Command{
		Use:   "reorder",
		Short: "Reorder categories and envelopes for display",
	}
	reorderCmd.AddCommand(newReorderCategoriesCommand())
	reorderCmd.AddCommand(newReorderEnvelopesCommand())
	return reorderCmd
}

func newReorderCategoriesCommand() *cobra.Command {
	var ledgerDir string

	cmd := &cobra.Command{
		Use:   "categories <category>...",
		Short: "Set the display order of all categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			if err := env.svc.ReorderCategories(args); err != nil {
				return err
			}

			if err := env.persist("reorder.categories", strings.Join(args, ", "), ""); err != nil {
				return err
			}
			fmt.Printf("Reordered %d categories\n", len(args))
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	return cmd
}

func newReorderEnvelopesCommand() *cobra.Command {
	var ledgerDir string
	var category string

	cmd := &cobra.Command{
		Use:   "envelopes <name>...",
		Short: "Set the display order of envelopes within a category",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := openLedger(ledgerDir)
			if err != nil {
				return err
			}
			defer env.close()

			ids := make([]string, 0, len(args))
			for _, name := range args {
				e, err := env.findEnvelope(name)
				if err != nil {
					return err
				}
				ids = append(ids, e.ID)
			}
			if err := env.svc.ReorderEnvelopesWithinCategory(category, ids); err != nil {
				return err
			}

			if err := env.persist("reorder.envelopes", category, ""); err != nil {
				return err
			}
			fmt.Printf("Reordered %d envelopes in %s\n", len(args), category)
			return nil
		},
	}

	cmd.Flags().StringVar(&ledgerDir, "ledger", ".", "ledger directory")
	cmd.Flags().StringVar(&category, "category", "", "category to reorder (required)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}
