package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
)

func listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List ledger transactions",
		Long: `Display transactions in the working ledger.

With --description, only transactions carrying that exact label are shown;
adding --on narrows further to transactions that actually fire a nonzero
amount on that date. With --frequency, only that cadence is shown.`,
		RunE: runList,
	}

	cmd.Flags().StringP("frequency", "f", "", "filter by frequency")
	cmd.Flags().StringP("description", "d", "", "filter by exact description")
	cmd.Flags().String("on", "", "only transactions firing on this date (with --description)")

	return cmd
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	frequencyStr, _ := cmd.Flags().GetString("frequency")
	description, _ := cmd.Flags().GetString("description")
	on, _ := cmd.Flags().GetString("on")

	return withLedger(ctx, false, func(l *ledger.Ledger) error {
		var txns []*model.Transaction
		switch {
		case description != "":
			matched, err := matchTransactions(l, description, on)
			if err != nil {
				return err
			}
			txns = matched
		case frequencyStr != "":
			frequency, err := model.ParseFrequency(frequencyStr)
			if err != nil {
				return err
			}
			txns = l.TransactionsByFrequency(frequency)
		default:
			txns = l.Transactions()
		}

		if len(txns) == 0 {
			fmt.Println(cli.InfoStyle.Render("No transactions found. Use 'ledgerflow add' to create one.")) //nolint:forbidigo // User-facing output
			return nil
		}

		fmt.Println(cli.FormatTitle("Transactions")) //nolint:forbidigo // User-facing output
		fmt.Println()                                //nolint:forbidigo // User-facing output

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		defer func() { _ = w.Flush() }()

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			cli.TableHeaderStyle.Render("Description"),
			cli.TableHeaderStyle.Render("Amount"),
			cli.TableHeaderStyle.Render("Frequency"),
			cli.TableHeaderStyle.Render("Start"),
			cli.TableHeaderStyle.Render("End"),
			cli.TableHeaderStyle.Render("Flags"),
			cli.TableHeaderStyle.Render("Skips"))

		for _, txn := range txns {
			end := "-"
			if txn.End != nil {
				end = model.FormatDate(*txn.End)
			}
			flags := ""
			if txn.Scheduled {
				flags += "S"
			}
			if txn.Cleared {
				flags += "C"
			}
			skips := ""
			if n := len(txn.SkipDates()); n > 0 {
				skips = fmt.Sprintf("%d", n)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				txn.Description,
				cli.FormatAmount(txn.Amount),
				txn.Frequency.Name(),
				model.FormatDate(txn.Start),
				end,
				flags,
				skips)
		}
		return nil
	})
}
