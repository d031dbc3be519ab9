package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a transaction to the ledger",
		Long: `Add a one-time or recurring transaction to the working ledger.

Amounts are signed: positive for income, negative for expenses.

Examples:
  # Biweekly paycheck starting next Friday
  ledgerflow add -d "Paycheck" -a 2150.00 -f biweekly --start 2026-09-04

  # Monthly rent with an end date
  ledgerflow add -d "Rent" -a -1500.00 -f monthly --start 2026-09-01 --end 2027-08-01

  # One-time expense, skipping nothing
  ledgerflow add -d "Car repair" -a -640.25 --start 2026-09-12`,
		RunE: runAdd,
	}

	cmd.Flags().StringP("description", "d", "", "transaction description (required)")
	cmd.Flags().StringP("amount", "a", "", "signed amount, e.g. -42.50 (required)")
	cmd.Flags().StringP("frequency", "f", "once", "once, weekly, biweekly, monthly, quarterly, or annually")
	cmd.Flags().String("start", "", "first occurrence date YYYY-MM-DD (default: today)")
	cmd.Flags().String("end", "", "last possible occurrence date YYYY-MM-DD")
	cmd.Flags().StringArray("skip", nil, "occurrence date to skip (repeatable)")
	cmd.Flags().Bool("scheduled", false, "mark as a planned future transaction")
	cmd.Flags().Bool("cleared", false, "mark as already posted")
	_ = cmd.MarkFlagRequired("description")
	_ = cmd.MarkFlagRequired("amount")

	return cmd
}

func runAdd(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	description, _ := cmd.Flags().GetString("description")
	amountStr, _ := cmd.Flags().GetString("amount")
	frequencyStr, _ := cmd.Flags().GetString("frequency")
	startStr, _ := cmd.Flags().GetString("start")
	endStr, _ := cmd.Flags().GetString("end")
	skips, _ := cmd.Flags().GetStringArray("skip")
	scheduled, _ := cmd.Flags().GetBool("scheduled")
	cleared, _ := cmd.Flags().GetBool("cleared")

	amount, err := parseAmount(amountStr)
	if err != nil {
		return err
	}
	frequency, err := model.ParseFrequency(frequencyStr)
	if err != nil {
		return err
	}

	start := today()
	if startStr != "" {
		if start, err = model.ParseDate(startStr); err != nil {
			return err
		}
	}

	txn, err := model.New(start, description, amount, frequency)
	if err != nil {
		return err
	}
	txn.Scheduled = scheduled
	txn.Cleared = cleared

	if endStr != "" {
		end, parseErr := model.ParseDate(endStr)
		if parseErr != nil {
			return parseErr
		}
		txn.SetEnd(end)
	}
	for _, s := range skips {
		day, parseErr := model.ParseDate(s)
		if parseErr != nil {
			return parseErr
		}
		txn.AddSkip(day)
	}

	err = withLedger(ctx, true, func(l *ledger.Ledger) error {
		l.Add(txn)
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added %s %q (%s) starting %s", //nolint:forbidigo // User-facing output
		frequency.Name(), description, amount.StringFixed(2), model.FormatDate(start))))
	return nil
}
