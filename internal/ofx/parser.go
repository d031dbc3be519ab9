// Package ofx converts OFX/QFX bank statements into ledger transactions.
// Posted statement entries become cleared one-time transactions anchored on
// their posting date.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/shopspring/decimal"

	"github.com/ledgerflow/ledgerflow/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// Matches both SGML (no closing tag) and XML severity elements.
var severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(INFO|WARN|ERROR)`)

// preprocessOFX fixes common formatting issues in bank-exported OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Mixed-case SEVERITY values trip the strict parser.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	return content
}

// ParseFile parses an OFX/QFX statement and returns its entries as cleared
// one-time transactions.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader) ([]*model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(p.preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []*model.Transaction
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txn, convErr := p.convertTransaction(ofxTx)
				if convErr != nil {
					slog.Warn("Skipping unconvertible OFX transaction",
						"account", stmt.BankAcctFrom.AcctID,
						"error", convErr)
					continue
				}
				transactions = append(transactions, txn)
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				txn, convErr := p.convertTransaction(ofxTx)
				if convErr != nil {
					slog.Warn("Skipping unconvertible OFX transaction",
						"account", stmt.CCAcctFrom.AcctID,
						"error", convErr)
					continue
				}
				transactions = append(transactions, txn)
			}
		}
	}

	slog.Info("Parsed OFX file",
		"total_transactions", len(transactions),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return transactions, nil
}

// convertTransaction maps one statement entry onto the ledger model. The
// OFX sign convention (negative debits) matches ours, so amounts pass
// through unchanged; FloatString keeps cent precision exact.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction) (*model.Transaction, error) {
	amount, err := decimal.NewFromString(ofxTx.TrnAmt.FloatString(2))
	if err != nil {
		return nil, fmt.Errorf("bad amount %v: %w", ofxTx.TrnAmt, err)
	}

	txn, err := model.New(model.DateOf(ofxTx.DtPosted.Time), p.payeeName(ofxTx), amount, model.Once)
	if err != nil {
		return nil, err
	}

	// Statement entries have already posted at the bank.
	txn.Cleared = true
	return txn, nil
}

// payeeName extracts the cleanest available description for an entry.
func (p *Parser) payeeName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}
	name := strings.TrimSpace(string(tx.Name))
	if name == "" && tx.Memo != "" {
		name = strings.TrimSpace(string(tx.Memo))
	}
	return name
}
