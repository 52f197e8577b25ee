package main

import (
	"os"

	"github.com/budgetbook-dev/budgetbook/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
