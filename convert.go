package ledgerview

import "slices"

// ForeignAll is the wildcard foreign-currency selector: every commodity other
// than the native one is converted.
const ForeignAll = "*"

// Convert rewrites every posting amount into the native currency using the
// posting's price annotation, and returns a new document. The argument is
// never mutated.
//
// Only postings whose commodity differs from native and matches the foreign
// selector are rewritten. A unit price multiplies the quantity; a total price
// replaces it verbatim. The result is rounded to 2 decimal places, half away
// from zero, retagged in the native commodity, and the price annotation is
// stripped, so converting an already converted document is a no-op.
//
// A matching posting without a price fails the whole pass with a
// *MissingPriceError; no partially converted document is ever returned.
func Convert(l *Ledger, native string, foreign []string) (*Ledger, error) {
	converted := l.Clone()
	wildcard := slices.Contains(foreign, ForeignAll)

	for _, tx := range converted.Transactions() {
		for i := range tx.Postings {
			p := &tx.Postings[i]
			if p.Amount == nil {
				continue // balancing posting, nothing to convert
			}
			commodity := p.Amount.Amount.Commodity
			if commodity.Code == native {
				continue
			}
			if !wildcard && !slices.Contains(foreign, commodity.Code) {
				continue
			}
			price := p.Amount.Price
			if price == nil {
				return nil, &MissingPriceError{Account: p.Account, Commodity: commodity.Code, Date: tx.Date}
			}
			quantity := price.Amount.Quantity
			if price.Kind == UnitPrice {
				quantity = p.Amount.Amount.Quantity.Mul(price.Amount.Quantity)
			}
			p.Amount = &PostingAmount{Amount: Amount{
				// decimal.Round rounds half away from zero, never toward even.
				Quantity:  quantity.Round(2),
				Commodity: Commodity{Code: native, Position: commodity.Position},
			}}
		}
	}
	return converted, nil
}
