package ledgerview

import (
	"fmt"
	"io"
	"strings"
)

// WriteText renders the document back as ledger text. The output parses back
// to an equivalent document for the supported grammar subset.
func (l *Ledger) WriteText(w io.Writer) error {
	for _, it := range l.Items {
		var err error
		switch v := it.(type) {
		case *Transaction:
			err = writeTransaction(w, v)
		case Include:
			_, err = fmt.Fprintf(w, "include %s\n\n", v.Path)
		case Directive:
			_, err = fmt.Fprintf(w, "%s\n\n", v.Raw)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// String renders the document as ledger text.
func (l *Ledger) String() string {
	var b strings.Builder
	l.WriteText(&b)
	return b.String()
}

func writeTransaction(w io.Writer, tx *Transaction) error {
	header := tx.Date.String()
	if tx.EffectiveDate != nil {
		header += "=" + tx.EffectiveDate.String()
	}
	if tx.Description != "" {
		header += " " + tx.Description
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	for _, p := range tx.Postings {
		if p.Amount == nil {
			if _, err := fmt.Fprintf(w, "    %s\n", p.Account); err != nil {
				return err
			}
			continue
		}
		line := fmt.Sprintf("    %-40s  %s", p.Account, p.Amount.Amount)
		if p.Amount.Price != nil {
			line += " " + p.Amount.Price.String()
		}
		if _, err := fmt.Fprintln(w, strings.TrimRight(line, " ")); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
