package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ledgerflow/ledgerflow/internal/cli"
	"github.com/ledgerflow/ledgerflow/internal/common"
	"github.com/ledgerflow/ledgerflow/internal/ledger"
	"github.com/ledgerflow/ledgerflow/internal/model"
	"github.com/ledgerflow/ledgerflow/internal/ofx"
)

func importOFXCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import-ofx FILES...",
		Short: "Import OFX/QFX bank statements",
		Long: `Parse one or more OFX/QFX statement files and add their entries to the
working ledger as cleared one-time transactions. Entries matching an
existing transaction's date, amount, and description are skipped, so
re-importing an overlapping statement is safe.

Glob patterns are expanded, e.g.:

  ledgerflow import-ofx ~/Downloads/*.qfx`,
		Args: cobra.MinimumNArgs(1),
		RunE: runImportOFX,
	}

	cmd.Flags().Bool("dry-run", false, "parse and report without modifying the ledger")

	return cmd
}

func runImportOFX(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	files, err := expandGlobs(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no files matched")
	}

	parser := ofx.NewParser()
	var parsed []*model.Transaction

	bar := progressbar.NewOptions(len(files),
		progressbar.OptionSetDescription("Parsing statements"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionShowCount())

	for _, file := range files {
		f, openErr := os.Open(file)
		if openErr != nil {
			return fmt.Errorf("failed to open %s: %w", file, openErr)
		}
		txns, parseErr := parser.ParseFile(ctx, f)
		f.Close()
		if parseErr != nil {
			return fmt.Errorf("%s: %w", file, parseErr)
		}
		parsed = append(parsed, txns...)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	common.LogInfo("parsed statements", common.Fields{
		"files":        len(files),
		"transactions": len(parsed),
	})

	added, skipped := 0, 0
	err = withLedger(ctx, !dryRun, func(l *ledger.Ledger) error {
		seen := make(map[string]struct{}, l.Len())
		for _, existing := range l.Transactions() {
			seen[dedupKey(existing)] = struct{}{}
		}
		for _, txn := range parsed {
			key := dedupKey(txn)
			if _, dup := seen[key]; dup {
				skipped++
				continue
			}
			seen[key] = struct{}{}
			l.Add(txn)
			added++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if dryRun {
		fmt.Println(cli.FormatInfo(fmt.Sprintf("Dry run: would import %d transaction(s) from %d file(s), %d duplicate(s) skipped", added, len(files), skipped))) //nolint:forbidigo // User-facing output
	} else {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Imported %d transaction(s) from %d file(s), %d duplicate(s) skipped", added, len(files), skipped))) //nolint:forbidigo // User-facing output
	}
	return nil
}

// expandGlobs resolves each argument as a glob pattern, passing through
// literal paths untouched.
func expandGlobs(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
		}
		if matches == nil {
			files = append(files, arg)
			continue
		}
		files = append(files, matches...)
	}
	return files, nil
}

// dedupKey identifies a statement entry by posting date, amount, and
// description. Good enough to make overlapping statement imports safe.
func dedupKey(t *model.Transaction) string {
	return strings.Join([]string{
		model.FormatDate(t.Start),
		t.Amount.String(),
		t.Description,
	}, "|")
}
