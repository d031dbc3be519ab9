package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/config"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
)

func exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Export the ledger to a YAML file",
		Long: `Write the working ledger to a YAML file. Every field of every
transaction is preserved exactly; the file round-trips through
'ledgerflow import' without loss.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])

	count := 0
	err := withLedger(ctx, false, func(l *ledger.Ledger) error {
		count = l.Len()
		return l.Save(path)
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Exported %d transaction(s) to %s", count, path))) //nolint:forbidigo // User-facing output
	return nil
}
