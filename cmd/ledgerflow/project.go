package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
	"github.com/ledgerflow/ledgerflow/internal/projection"
)

func projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the running balance forward",
		Long: `Project the account balance day by day from a starting date and balance.

By default only days on which a transaction fires are printed; --all-days
prints every day. Balances below the configured low-balance threshold are
highlighted yellow, negative balances red.

Examples:
  ledgerflow project --balance 2400.00 --days 365
  ledgerflow project --balance 150.00 --from 2026-09-01 --days 90 --all-days`,
		RunE: runProject,
	}

	cmd.Flags().IntP("days", "n", 365, "number of days to project")
	cmd.Flags().String("from", "", "starting date YYYY-MM-DD (default: today)")
	cmd.Flags().StringP("balance", "b", "0.00", "starting balance")
	cmd.Flags().Bool("all-days", false, "print every day, not just days with activity")

	return cmd
}

func runProject(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	days, _ := cmd.Flags().GetInt("days")
	fromStr, _ := cmd.Flags().GetString("from")
	balanceStr, _ := cmd.Flags().GetString("balance")
	allDays, _ := cmd.Flags().GetBool("all-days")

	if days <= 0 {
		return fmt.Errorf("--days must be positive")
	}

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

	threshold := lowBalance()

	return withLedger(ctx, false, func(l *ledger.Ledger) error {
		fmt.Println(cli.FormatTitle(fmt.Sprintf("Projection from %s, starting balance %s", //nolint:forbidigo // User-facing output
			model.FormatDate(from), balance.StringFixed(2))))
		fmt.Println() //nolint:forbidigo // User-facing output

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer func() { _ = w.Flush() }()

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			cli.TableHeaderStyle.Render("Date"),
			cli.TableHeaderStyle.Render("Balance"),
			cli.TableHeaderStyle.Render("Transaction"),
			cli.TableHeaderStyle.Render("Amount"))

		p := projection.New(from, balance, l)
		for i := 0; i < days; i++ {
			step := p.Next()
			if len(step.Transactions) == 0 && !allDays {
				continue
			}

			fmt.Fprintf(w, "%s\t%s\t\t\n",
				model.FormatDate(step.Date),
				cli.FormatBalance(step.Balance, threshold))
			for _, txn := range step.Transactions {
				fmt.Fprintf(w, "\t\t%s\t%s\n",
					txn.Description,
					cli.FormatAmount(txn.AmountOn(step.Date)))
			}
		}
		return nil
	})
}
