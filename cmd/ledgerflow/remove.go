package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
)

func removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove transactions from the ledger",
		Long: `Remove every transaction matching the given description. Add --on to
narrow the match to transactions firing on a specific date. Removing a
description that matches nothing is not an error.`,
		RunE: runRemove,
	}

	cmd.Flags().StringP("description", "d", "", "description of transactions to remove (required)")
	cmd.Flags().String("on", "", "only remove transactions firing on this date")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runRemove(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	description, _ := cmd.Flags().GetString("description")
	on, _ := cmd.Flags().GetString("on")

	removed := 0
	err := withLedger(ctx, true, func(l *ledger.Ledger) error {
		matched, err := matchTransactions(l, description, on)
		if err != nil {
			return err
		}
		l.Remove(matched...)
		removed = len(matched)
		return nil
	})
	if err != nil {
		return err
	}

	if removed == 0 {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("No transactions matched %q", description))) //nolint:forbidigo // User-facing output
		return nil
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Removed %d transaction(s) matching %q", removed, description))) //nolint:forbidigo // User-facing output
	return nil
}
