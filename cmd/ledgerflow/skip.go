package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func skipCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip",
		Short: "Skip or restore a single occurrence",
		Long: `Suppress one occurrence of a recurring transaction without disturbing the
rest of its schedule: the occurrence contributes nothing on the skipped
date and the cadence continues unchanged afterward. Use --restore to
re-enable a previously skipped occurrence.`,
		RunE: runSkip,
	}

	cmd.Flags().StringP("description", "d", "", "description of the transaction (required)")
	cmd.Flags().String("on", "", "occurrence date to skip YYYY-MM-DD (required)")
	cmd.Flags().Bool("restore", false, "restore the occurrence instead of skipping it")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("on")

	return cmd
}

func runSkip(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	description, _ := cmd.Flags().GetString("description")
	on, _ := cmd.Flags().GetString("on")
	restore, _ := cmd.Flags().GetBool("restore")

	day, err := model.ParseDate(on)
	if err != nil {
		return err
	}

	return withLedger(ctx, true, func(l *ledger.Ledger) error {
		matched := l.Find(description)
		if len(matched) == 0 {
			return fmt.Errorf("no transaction matches %q", description)
		}
		if len(matched) > 1 {
			return fmt.Errorf("%q matches %d transactions; give them distinct descriptions first", description, len(matched))
		}

		txn := matched[0]
		if restore {
			txn.RemoveSkip(day)
			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %q on %s", description, model.FormatDate(day)))) //nolint:forbidigo // User-facing output
			return nil
		}
		txn.AddSkip(day)
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Skipping %q on %s", description, model.FormatDate(day)))) //nolint:forbidigo // User-facing output
		return nil
	})
}
