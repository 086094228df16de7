package ledgerview

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Row is one line of a report response. Date and Account are omitted from the
// JSON form when empty; Amount is serialized as an exact decimal string and
// never goes through binary floating point.
type Row struct {
	Date    *Date
	Amount  decimal.Decimal
	Account string
}

// MarshalJSON writes the row as {"date": ..., "amount": ..., "account": ...}
// with date and account omitted when unset.
func (r Row) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Optional("date", r.Date)
	w.Append("amount", r.Amount)
	w.Optional("account", r.Account)
	return w.MarshalJSON()
}

// month identifies one (year, month) bucket.
type month struct {
	y int
	m time.Month
}

func (b month) last() Date { return NewDate(b.y, b.m, 1).EndOfMonth() }

// monthlyBuckets partitions the account's posting amounts by (year, month)
// and commodity. Only postings whose account equals the selector exactly are
// counted. The returned bucket keys are in ascending chronological order.
func monthlyBuckets(l *Ledger, account string) ([]month, map[month]Balance) {
	sums := make(map[month]Balance)
	for _, tx := range l.SortedTransactions() {
		for _, p := range tx.Postings {
			if p.Account != account || p.Amount == nil {
				continue
			}
			key := month{y: tx.Date.Year(), m: tx.Date.Month()}
			b, ok := sums[key]
			if !ok {
				b = make(Balance)
				sums[key] = b
			}
			b.Add(p.Amount.Amount)
		}
	}
	keys := make([]month, 0, len(sums))
	for key := range sums {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].y != keys[j].y {
			return keys[i].y < keys[j].y
		}
		return keys[i].m < keys[j].m
	})
	return keys, sums
}

// commodities returns the balance's commodity codes in a stable order.
func commodities(b Balance) []string {
	codes := make([]string, 0, len(b))
	for code := range b {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Monthly reports the net balance change of an account for each calendar
// month present in the document, one row per (month, commodity) pair, dated
// on the last calendar day of the month. Months with no matching postings are
// omitted, not emitted as zero.
func Monthly(l *Ledger, account string) []Row {
	keys, sums := monthlyBuckets(l, account)
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		last := key.last()
		for _, code := range commodities(sums[key]) {
			rows = append(rows, Row{Date: &last, Amount: sums[key][code], Account: account})
		}
	}
	return rows
}

// Cashflow reports the running cumulative sum of the account's monthly
// changes, a prefix sum per commodity over the chronologically ordered
// monthly series.
func Cashflow(l *Ledger, account string) []Row {
	keys, sums := monthlyBuckets(l, account)
	running := make(Balance)
	rows := make([]Row, 0, len(keys))
	for _, key := range keys {
		last := key.last()
		for _, code := range commodities(sums[key]) {
			running[code] = running[code].Add(sums[key][code])
			rows = append(rows, Row{Date: &last, Amount: running[code], Account: account})
		}
	}
	return rows
}

// BalanceOf sums every posting matching the account across the whole document
// and returns a single dateless row holding the balance in the display
// commodity. It fails with a *NoSuchCommodityError when no balance in that
// commodity was accumulated, which also covers an account with no matching
// postings at all.
func BalanceOf(l *Ledger, account, commodity string) (Row, error) {
	total := make(Balance)
	for _, tx := range l.Transactions() {
		for _, p := range tx.Postings {
			if p.Account != account || p.Amount == nil {
				continue
			}
			total.Add(p.Amount.Amount)
		}
	}
	qty, ok := total[commodity]
	if !ok {
		return Row{}, &NoSuchCommodityError{Account: account, Commodity: commodity}
	}
	return Row{Amount: qty, Account: account}, nil
}

// Split breaks the subtree balance at accountPrefix down into its immediate
// children: one row per child segment, holding the child's aggregated balance
// (its own postings plus all descendants) in the display commodity. Rows are
// sorted by amount descending; ties keep a stable alphabetical order. It
// fails with a *NoSuchAccountError when the prefix has no node in the tree.
func Split(l *Ledger, accountPrefix, commodity string) ([]Row, error) {
	tree := BuildTree(AccountBalances(l))
	node := tree.Lookup(accountPrefix)
	if node == nil {
		return nil, &NoSuchAccountError{Account: accountPrefix}
	}

	segments := make([]string, 0, len(node.Children))
	for segment := range node.Children {
		segments = append(segments, segment)
	}
	sort.Strings(segments)

	rows := make([]Row, 0, len(segments))
	for _, segment := range segments {
		rows = append(rows, Row{Amount: node.Children[segment].Total(commodity), Account: segment})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Amount.GreaterThan(rows[j].Amount)
	})
	return rows, nil
}
