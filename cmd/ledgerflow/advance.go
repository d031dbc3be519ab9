package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func advanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Roll recurring schedules forward to a new baseline",
		Long: `Advance every recurring transaction's anchor date to its first occurrence
at or after the given baseline, preserving cadence phase. One-time
transactions are left untouched; original anchor dates are kept for audit.`,
		RunE: runAdvance,
	}

	cmd.Flags().String("to", "", "baseline date YYYY-MM-DD (default: today)")

	return cmd
}

func runAdvance(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	toStr, _ := cmd.Flags().GetString("to")
	baseline := today()
	if toStr != "" {
		var err error
		if baseline, err = model.ParseDate(toStr); err != nil {
			return err
		}
	}

	err := withLedger(ctx, true, func(l *ledger.Ledger) error {
		l.AdvanceRecurring(baseline)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Advanced recurring schedules to %s", model.FormatDate(baseline)))) //nolint:forbidigo // User-facing output
	return nil
}
