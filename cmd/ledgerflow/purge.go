package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func purgeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Purge stale one-time transactions",
		Long: `Remove every one-time transaction dated strictly before the cutoff.
Recurring transactions are never purged, whatever their dates.`,
		RunE: runPurge,
	}

	cmd.Flags().String("before", "", "cutoff date YYYY-MM-DD (default: today)")

	return cmd
}

func runPurge(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	beforeStr, _ := cmd.Flags().GetString("before")
	cutoff := today()
	if beforeStr != "" {
		var err error
		if cutoff, err = model.ParseDate(beforeStr); err != nil {
			return err
		}
	}

	removed := 0
	err := withLedger(ctx, true, func(l *ledger.Ledger) error {
		removed = l.PurgeSingleBefore(cutoff)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Purged %d one-time transaction(s) before %s", removed, model.FormatDate(cutoff)))) //nolint:forbidigo // User-facing output
	return nil
}
