package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
	"github.com/ledgerflow/ledgerflow/internal/projection"
	"github.com/ledgerflow/ledgerflow/internal/tui"
)

func flowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Interactive rolling projection view",
		Long: `Open an interactive, scrollable view of the balance projection. The
window extends as you scroll down, so the projection is effectively
unbounded.`,
		RunE: runFlow,
	}

	cmd.Flags().String("from", "", "starting date YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("balance", "b", "0.00", "starting balance")

	return cmd
}

func runFlow(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	fromStr, _ := cmd.Flags().GetString("from")
	balanceStr, _ := cmd.Flags().GetString("balance")

	balance, err := parseAmount(balanceStr)
	if err != nil {
		return err
	}
	from := today()
	if fromStr != "" {
		if from, err = model.ParseDate(fromStr); err != nil {
			return err
		}
	}

	return withLedger(ctx, false, func(l *ledger.Ledger) error {
		p := projection.New(from, balance, l)
		program := tea.NewProgram(tui.New(p, lowBalance()), tea.WithAltScreen())
		if _, runErr := program.Run(); runErr != nil {
			return fmt.Errorf("flow view failed: %w", runErr)
		}
		return nil
	})
}
