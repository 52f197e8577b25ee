package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/budgetbook-dev/budgetbook/internal/config"
	"github.com/budgetbook-dev/budgetbook/internal/gitops"
	"github.com/budgetbook-dev/budgetbook/internal/model"
	"github.com/budgetbook-dev/budgetbook/internal/storage"
)

func newInitCommand() *cobra.Command {
	var name string
	var noGit bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new budgetbook ledger",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(absDir, name, noGit)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "ledger name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().BoolVar(&noGit, "no-git", false, "skip git repository setup")

	return cmd
}

func runInit(dir, name string, noGit bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}

	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("ledger already initialized at %s", dir)
	}

	cfg := config.Default(name)
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the snapshot database with an empty ledger.
	db, err := storage.Open(filepath.Join(dir, cfg.Database.Path))
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Save(context.Background(), model.Snapshot{}); err != nil {
		return err
	}

	gitignore := "*.db\nexports/\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	if noGit {
		fmt.Printf("Initialized ledger %q at %s\n", name, dir)
		return nil
	}

	repo, err := gitops.Init(dir)
	if err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	hash, err := repo.CommitAll("init: "+name, cfg.Git.AuthorName, cfg.Git.AuthorEmail)
	if err != nil {
		return fmt.Errorf("initial commit: %w", err)
	}

	fmt.Printf("Initialized ledger %q at %s (%s)\n", name, dir, hash)
	return nil
}
