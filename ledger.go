package ledgerview

import (
	"iter"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CommodityPosition defines where a commodity is displayed relative to its quantity.
type CommodityPosition int

const (
	// Right displays the commodity after the quantity, e.g. "5.00 USD".
	Right CommodityPosition = iota
	// Left displays the commodity before the quantity, e.g. "$5.00".
	Left
)

// Commodity is a currency or tradeable unit identifier attached to a quantity.
type Commodity struct {
	Code     string
	Position CommodityPosition
}

// Amount is an exact decimal quantity tagged with a commodity.
type Amount struct {
	Quantity  decimal.Decimal
	Commodity Commodity
}

// String renders the amount the way it appears in ledger text.
func (a Amount) String() string {
	if a.Commodity.Position == Left {
		return a.Commodity.Code + a.Quantity.String()
	}
	return a.Quantity.String() + " " + a.Commodity.Code
}

// PriceKind discriminates between the two price annotation variants.
type PriceKind int

const (
	// UnitPrice is a per-unit exchange rate, written "@ rate CUR".
	UnitPrice PriceKind = iota
	// TotalPrice is a fixed total in the other commodity, written "@@ total CUR".
	TotalPrice
)

// Price is an exchange-rate annotation on a posting, used only for conversion.
type Price struct {
	Kind   PriceKind
	Amount Amount
}

func (p Price) String() string {
	if p.Kind == TotalPrice {
		return "@@ " + p.Amount.String()
	}
	return "@ " + p.Amount.String()
}

// PostingAmount is a posting's amount plus its optional price annotation.
type PostingAmount struct {
	Amount Amount
	Price  *Price
}

// Posting is one line of a transaction, debiting or crediting one account.
// A posting with a nil amount is a balancing posting; it is excluded from
// conversion and from amount-based aggregation.
type Posting struct {
	Account string
	Amount  *PostingAmount
}

// Transaction is a dated set of postings. Every transaction has at least one posting.
type Transaction struct {
	Date          Date
	EffectiveDate *Date
	Description   string
	Postings      []Posting
}

// Item is one entry of a ledger document. Order is significant for display;
// reports recompute aggregates independent of item order except where dates tie.
type Item interface {
	item()
}

// Include is a directive referencing another ledger file, relative to the
// directory of the file that contains it.
type Include struct {
	Path string
}

// Directive is any other top-level line, kept opaque and passed through.
type Directive struct {
	Raw string
}

func (*Transaction) item() {}
func (Include) item()      {}
func (Directive) item()    {}

// Ledger is the parsed, in-memory representation of one merged ledger document.
type Ledger struct {
	Items []Item
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{Items: make([]Item, 0)}
}

// Merge concatenates several documents into one, preserving each document's
// internal item order. No de-duplication is performed: merging the same
// document twice yields duplicated transactions.
func Merge(ledgers ...*Ledger) *Ledger {
	merged := NewLedger()
	for _, l := range ledgers {
		merged.Items = append(merged.Items, l.Items...)
	}
	return merged
}

// Transactions returns an iterator that yields each transaction in its
// original document order.
func (l *Ledger) Transactions() iter.Seq2[int, *Transaction] {
	return func(yield func(int, *Transaction) bool) {
		for i, it := range l.Items {
			tx, ok := it.(*Transaction)
			if !ok {
				continue
			}
			if !yield(i, tx) {
				return
			}
		}
	}
}

// SortedTransactions returns the ledger's transactions ordered by date
// ascending. The sort is stable: transactions on the same day keep their
// original document order.
func (l *Ledger) SortedTransactions() []*Transaction {
	var txs []*Transaction
	for _, tx := range l.Transactions() {
		txs = append(txs, tx)
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Date.Before(txs[j].Date)
	})
	return txs
}

// Clone returns a deep copy of the ledger. Transactions, postings, amounts
// and prices are all copied, so mutating the clone never touches the receiver.
func (l *Ledger) Clone() *Ledger {
	c := &Ledger{Items: make([]Item, 0, len(l.Items))}
	for _, it := range l.Items {
		tx, ok := it.(*Transaction)
		if !ok {
			c.Items = append(c.Items, it)
			continue
		}
		nt := &Transaction{
			Date:        tx.Date,
			Description: tx.Description,
			Postings:    make([]Posting, len(tx.Postings)),
		}
		if tx.EffectiveDate != nil {
			eff := *tx.EffectiveDate
			nt.EffectiveDate = &eff
		}
		for i, p := range tx.Postings {
			np := Posting{Account: p.Account}
			if p.Amount != nil {
				na := &PostingAmount{Amount: p.Amount.Amount}
				if p.Amount.Price != nil {
					price := *p.Amount.Price
					na.Price = &price
				}
				np.Amount = na
			}
			nt.Postings[i] = np
		}
		c.Items = append(c.Items, nt)
	}
	return c
}

// AccountSegments splits a slash-delimited account path into its hierarchy segments.
func AccountSegments(account string) []string {
	return strings.Split(account, "/")
}
