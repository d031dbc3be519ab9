package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func editCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit a transaction",
		Long: `Edit a single transaction: the match is duplicated, the changes are
applied to the copy, and the copy supersedes the original in the ledger.
The original anchor date is preserved for audit.

The selection must match exactly one transaction; narrow with --on when a
description is ambiguous.`,
		RunE: runEdit,
	}

	cmd.Flags().StringP("description", "d", "", "description of the transaction to edit (required)")
	cmd.Flags().String("on", "", "narrow the match to a transaction firing on this date")
	cmd.Flags().String("set-description", "", "new description")
	cmd.Flags().String("set-amount", "", "new signed amount")
	cmd.Flags().String("set-frequency", "", "new frequency")
	cmd.Flags().String("set-start", "", "new anchor date YYYY-MM-DD")
	cmd.Flags().String("set-end", "", "new end date YYYY-MM-DD")
	cmd.Flags().Bool("clear-end", false, "remove the end date")
	cmd.Flags().Bool("set-scheduled", false, "set the scheduled flag")
	cmd.Flags().Bool("set-cleared", false, "set the cleared flag")
	_ = cmd.MarkFlagRequired("description")

	return cmd
}

func runEdit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	description, _ := cmd.Flags().GetString("description")
	on, _ := cmd.Flags().GetString("on")

	return withLedger(ctx, true, func(l *ledger.Ledger) error {
		matched, err := matchTransactions(l, description, on)
		if err != nil {
			return err
		}
		if len(matched) == 0 {
			return fmt.Errorf("no transaction matches %q", description)
		}
		if len(matched) > 1 {
			return fmt.Errorf("%q matches %d transactions; narrow with --on", description, len(matched))
		}

		original := matched[0]
		updated := original.Duplicate()

		if cmd.Flags().Changed("set-description") {
			updated.Description, _ = cmd.Flags().GetString("set-description")
		}
		if cmd.Flags().Changed("set-amount") {
			raw, _ := cmd.Flags().GetString("set-amount")
			amount, parseErr := parseAmount(raw)
			if parseErr != nil {
				return parseErr
			}
			updated.Amount = amount
		}
		if cmd.Flags().Changed("set-frequency") {
			raw, _ := cmd.Flags().GetString("set-frequency")
			frequency, parseErr := model.ParseFrequency(raw)
			if parseErr != nil {
				return parseErr
			}
			updated.Frequency = frequency
		}
		if cmd.Flags().Changed("set-start") {
			raw, _ := cmd.Flags().GetString("set-start")
			start, parseErr := model.ParseDate(raw)
			if parseErr != nil {
				return parseErr
			}
			updated.Start = start
		}
		if cmd.Flags().Changed("set-end") {
			raw, _ := cmd.Flags().GetString("set-end")
			end, parseErr := model.ParseDate(raw)
			if parseErr != nil {
				return parseErr
			}
			updated.SetEnd(end)
		}
		if cleared, _ := cmd.Flags().GetBool("clear-end"); cleared {
			updated.End = nil
		}
		if cmd.Flags().Changed("set-scheduled") {
			updated.Scheduled, _ = cmd.Flags().GetBool("set-scheduled")
		}
		if cmd.Flags().Changed("set-cleared") {
			updated.Cleared, _ = cmd.Flags().GetBool("set-cleared")
		}

		l.Replace(original, updated)

		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Updated %q", updated.Description))) //nolint:forbidigo // User-facing output
		return nil
	})
}
