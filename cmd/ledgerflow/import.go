package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/common"
	"github.com/ledgerflow/ledgerflow/internal/config"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a ledger from a YAML file",
		Long: `Replace the working ledger with the contents of a YAML ledger file.

The file is validated in full before anything is replaced: a malformed or
unreadable file leaves the working ledger exactly as it was. Use --merge
to append the file's transactions instead of replacing.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().Bool("merge", false, "append to the working ledger instead of replacing it")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	path := config.ExpandPath(args[0])
	merge, _ := cmd.Flags().GetBool("merge")

	incoming := ledger.New()
	if err := incoming.Load(path); err != nil {
		return common.NewUserError(fmt.Sprintf("could not import %s; the working ledger is unchanged", path), err)
	}

	count := incoming.Len()
	err := withLedger(ctx, true, func(l *ledger.Ledger) error {
		if !merge {
			l.Remove(l.Transactions()...)
		}
		l.Add(incoming.Transactions()...)
		return nil
	})
	if err != nil {
		return err
	}

	verb := "Imported"
	if merge {
		verb = "Merged"
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s %d transaction(s) from %s", verb, count, path))) //nolint:forbidigo // User-facing output
	return nil
}
