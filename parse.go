package ledgerview

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// This file implements the reader for the plain-text ledger format subset the
// service understands: dated transactions with indented postings, amounts
// with @ / @@ price annotations, include directives and comment lines. Any
// other top-level line is kept as an opaque directive.

var postingSplitRE = regexp.MustCompile(`\t| {2,}`)

// Parse reads ledger text into a document. It fails with a *ParseError on
// malformed syntax, reporting the offending line.
func Parse(text string) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(strings.NewReader(text))

	var current *Transaction
	line := 0
	// closeTx validates and appends the transaction being assembled, if any.
	closeTx := func() error {
		if current == nil {
			return nil
		}
		if len(current.Postings) == 0 {
			return &ParseError{Line: line, Msg: fmt.Sprintf("transaction %q has no postings", current.Description)}
		}
		ledger.Items = append(ledger.Items, current)
		current = nil
		return nil
	}

	for scanner.Scan() {
		line++
		raw := scanner.Text()
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}
		if trimmed[0] == ';' {
			continue // comment, top-level or attached to a transaction
		}
		if !isIndented(raw) && strings.ContainsRune("#%|*", rune(trimmed[0])) {
			continue // top-level comment
		}

		if isIndented(raw) {
			if current == nil {
				return nil, &ParseError{Line: line, Msg: "posting outside of a transaction"}
			}
			posting, err := parsePosting(trimmed)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			current.Postings = append(current.Postings, posting)
			continue
		}

		// A new top-level item terminates the transaction in progress.
		if err := closeTx(); err != nil {
			return nil, err
		}

		if path, ok := strings.CutPrefix(trimmed, "include "); ok {
			ledger.Items = append(ledger.Items, Include{Path: strings.TrimSpace(path)})
			continue
		}

		if isDateLed(trimmed) {
			tx, err := parseHeader(trimmed)
			if err != nil {
				return nil, &ParseError{Line: line, Msg: err.Error()}
			}
			current = tx
			continue
		}

		ledger.Items = append(ledger.Items, Directive{Raw: trimmed})
	}
	if err := scanner.Err(); err != nil {
		return nil, &ParseError{Line: line, Msg: err.Error()}
	}
	if err := closeTx(); err != nil {
		return nil, err
	}
	return ledger, nil
}

func isIndented(line string) bool {
	return len(line) > 0 && (line[0] == ' ' || line[0] == '\t')
}

func isDateLed(line string) bool {
	return line[0] >= '0' && line[0] <= '9'
}

// parseHeader parses a "date[=effective] description" transaction line.
func parseHeader(line string) (*Transaction, error) {
	dateToken, desc, _ := strings.Cut(line, " ")
	tx := &Transaction{Description: strings.TrimSpace(desc)}

	primary, effective, hasEffective := strings.Cut(dateToken, "=")
	d, err := parseLedgerDate(primary)
	if err != nil {
		return nil, err
	}
	tx.Date = d
	if hasEffective {
		eff, err := parseLedgerDate(effective)
		if err != nil {
			return nil, err
		}
		tx.EffectiveDate = &eff
	}
	return tx, nil
}

// parseLedgerDate accepts the usual ledger date separators ('-', '/', '.').
func parseLedgerDate(token string) (Date, error) {
	normalized := strings.NewReplacer("/", "-", ".", "-").Replace(token)
	return ParseDate(normalized)
}

// parsePosting parses an "account  amount [@ rate | @@ total]" line. The
// account and the amount are separated by a tab or at least two spaces; a
// line with no separator is a balancing posting with an elided amount.
func parsePosting(line string) (Posting, error) {
	parts := postingSplitRE.Split(line, 2)
	posting := Posting{Account: strings.TrimSpace(parts[0])}
	if posting.Account == "" {
		return Posting{}, fmt.Errorf("posting with empty account in %q", line)
	}
	if len(parts) == 1 || strings.TrimSpace(parts[1]) == "" {
		return posting, nil // elided amount
	}

	expr := strings.TrimSpace(parts[1])
	amountExpr, priceExpr, kind := cutPrice(expr)

	amount, err := parseAmount(amountExpr)
	if err != nil {
		return Posting{}, err
	}
	posting.Amount = &PostingAmount{Amount: amount}

	if priceExpr != "" {
		rate, err := parseAmount(priceExpr)
		if err != nil {
			return Posting{}, err
		}
		posting.Amount.Price = &Price{Kind: kind, Amount: rate}
	}
	return posting, nil
}

// cutPrice splits an amount expression from its optional price annotation.
// "@@" must be checked before "@".
func cutPrice(expr string) (amount, price string, kind PriceKind) {
	if before, after, ok := strings.Cut(expr, "@@"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after), TotalPrice
	}
	if before, after, ok := strings.Cut(expr, "@"); ok {
		return strings.TrimSpace(before), strings.TrimSpace(after), UnitPrice
	}
	return expr, "", UnitPrice
}

// parseAmount parses "12.34 CUR", "CUR 12.34", "$12.34" or a bare quantity.
func parseAmount(expr string) (Amount, error) {
	fields := strings.Fields(expr)
	switch len(fields) {
	case 2:
		if qty, err := decimal.NewFromString(fields[0]); err == nil {
			return Amount{Quantity: qty, Commodity: Commodity{Code: fields[1], Position: Right}}, nil
		}
		if qty, err := decimal.NewFromString(fields[1]); err == nil {
			return Amount{Quantity: qty, Commodity: Commodity{Code: fields[0], Position: Left}}, nil
		}
		return Amount{}, fmt.Errorf("invalid amount %q", expr)
	case 1:
		token := fields[0]
		if qty, err := decimal.NewFromString(token); err == nil {
			return Amount{Quantity: qty}, nil
		}
		// Prefixed commodity symbol, e.g. "$12.34".
		i := strings.IndexFunc(token, func(r rune) bool {
			return r >= '0' && r <= '9' || r == '-' || r == '+' || r == '.'
		})
		if i <= 0 {
			return Amount{}, fmt.Errorf("invalid amount %q", expr)
		}
		qty, err := decimal.NewFromString(token[i:])
		if err != nil {
			return Amount{}, fmt.Errorf("invalid amount %q: %w", expr, err)
		}
		return Amount{Quantity: qty, Commodity: Commodity{Code: token[:i], Position: Left}}, nil
	default:
		return Amount{}, fmt.Errorf("invalid amount %q", expr)
	}
}
