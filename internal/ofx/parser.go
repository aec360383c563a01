// Package ofx parses OFX/QFX bank and credit card statements into
// expense entries suitable for import.
package ofx

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/aclindsa/ofxgo"

	"github.com/sameeksha-sunilkumar/expense-tracker/internal/model"
)

// StatementEntry is a single outflow parsed from a statement. Amounts are
// always positive; credits and deposits are dropped during parsing since
// they are not expenses.
type StatementEntry struct {
	FITID       string
	AccountID   string
	Description string
	Type        string
	Date        time.Time
	Amount      model.Money
}

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files.
	// Pattern: <TAGNAME at end of line with no > after the tag.
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file and returns the expense entries it
// contains. Inflows (deposits, refunds, interest) are skipped.
func (p *Parser) ParseFile(ctx context.Context, reader io.Reader) ([]StatementEntry, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var entries []StatementEntry
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			parsed, err := p.processBankStatement(stmt)
			if err != nil {
				slog.Warn("Failed to process bank statement",
					"account", stmt.BankAcctFrom.AcctID,
					"error", err)
				continue
			}
			entries = append(entries, parsed...)
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			parsed, err := p.processCreditCardStatement(stmt)
			if err != nil {
				slog.Warn("Failed to process credit card statement",
					"account", stmt.CCAcctFrom.AcctID,
					"error", err)
				continue
			}
			entries = append(entries, parsed...)
		}
	}

	slog.Info("Parsed OFX file",
		"entries", len(entries),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return entries, nil
}

// processBankStatement converts OFX bank transactions to statement entries.
func (p *Parser) processBankStatement(stmt *ofxgo.StatementResponse) ([]StatementEntry, error) {
	if stmt.BankTranList == nil {
		return nil, nil
	}

	var entries []StatementEntry
	accountID := string(stmt.BankAcctFrom.AcctID)

	for _, ofxTx := range stmt.BankTranList.Transactions {
		entry, ok, err := p.convertTransaction(ofxTx, accountID)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// processCreditCardStatement converts OFX credit card transactions to
// statement entries.
func (p *Parser) processCreditCardStatement(stmt *ofxgo.CCStatementResponse) ([]StatementEntry, error) {
	if stmt.BankTranList == nil {
		return nil, nil
	}

	var entries []StatementEntry
	accountID := string(stmt.CCAcctFrom.AcctID)

	for _, ofxTx := range stmt.BankTranList.Transactions {
		entry, ok, err := p.convertTransaction(ofxTx, accountID)
		if err != nil {
			return nil, err
		}
		if ok {
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

// convertTransaction converts an OFX transaction to a statement entry.
// The second return value is false when the transaction is an inflow and
// should be skipped.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, accountID string) (StatementEntry, bool, error) {
	// OFX uses negative amounts for debits; only those are expenses.
	amountFloat, _ := ofxTx.TrnAmt.Float64()
	if amountFloat >= 0 {
		return StatementEntry{}, false, nil
	}

	amount, err := model.NewMoneyFromFloat(-amountFloat)
	if err != nil {
		return StatementEntry{}, false, fmt.Errorf("transaction %s: %w", ofxTx.FiTID, err)
	}

	entry := StatementEntry{
		FITID:       string(ofxTx.FiTID),
		AccountID:   accountID,
		Description: p.extractDescription(ofxTx),
		Type:        fmt.Sprintf("%v", ofxTx.TrnType),
		Date:        ofxTx.DtPosted.Time,
		Amount:      amount,
	}

	return entry, true, nil
}

// extractDescription tries to get a clean merchant name from OFX data.
func (p *Parser) extractDescription(tx ofxgo.Transaction) string {
	// Prefer PAYEE if available (cleaner merchant name)
	if tx.Payee != nil && tx.Payee.Name != "" {
		return string(tx.Payee.Name)
	}

	name := string(tx.Name)

	// Use MEMO field if NAME is generic
	if tx.Memo != "" && isGenericDescription(name) {
		name = string(tx.Memo)
	}

	name = strings.TrimSpace(name)

	// Remove common prefixes
	prefixes := []string{
		"POS PURCHASE ",
		"PURCHASE AUTHORIZED ON ",
		"DEBIT CARD PURCHASE ",
		"ACH DEBIT ",
		"CHECK CARD ",
		"VISA PURCHASE ",
		"MC PURCHASE ",
		"DEBIT PURCHASE ",
	}

	for _, prefix := range prefixes {
		if strings.HasPrefix(strings.ToUpper(name), prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Clean up date patterns like "MM/DD " at the beginning
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

// isGenericDescription checks if a transaction name is too generic.
func isGenericDescription(name string) bool {
	generic := []string{
		"DEBIT",
		"CREDIT",
		"PURCHASE",
		"PAYMENT",
		"POS TRANSACTION",
		"CARD PURCHASE",
	}

	upperName := strings.ToUpper(name)
	for _, g := range generic {
		if upperName == g {
			return true
		}
	}
	return false
}
