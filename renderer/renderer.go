// Package renderer turns report rows into markdown for terminal display.
package renderer

import (
	"fmt"
	"strings"

	"ledgerview"
)

// ReportMarkdown renders report rows as a markdown table. currency is the
// reporting currency the amounts are expressed in; it drives the display
// formatting only, never the values.
func ReportMarkdown(title, currency string, rows []ledgerview.Row) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(rows) == 0 {
		b.WriteString("_no matching postings_\n")
		return b.String()
	}

	b.WriteString("| Date | Account | Amount |\n")
	b.WriteString("|------|---------|-------:|\n")
	for _, row := range rows {
		date := ""
		if row.Date != nil {
			date = row.Date.String()
		}
		fmt.Fprintf(&b, "| %s | %s | %s |\n", date, row.Account, FormatAmount(row.Amount, currency))
	}
	return b.String()
}
