package ledgerview

import "fmt"

// ParseError reports malformed ledger text. The previous in-memory document
// remains authoritative when a reload fails with one.
type ParseError struct {
	File string // empty when parsing from memory
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Msg)
	}
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

// MissingPriceError reports a posting that requires conversion but carries no
// price annotation. The conversion pass is aborted, no partial conversion is applied.
type MissingPriceError struct {
	Account   string
	Commodity string
	Date      Date
}

func (e *MissingPriceError) Error() string {
	return fmt.Sprintf("no price on %s posting for %q on %s", e.Commodity, e.Account, e.Date)
}

// NoSuchAccountError reports a query for an account path absent from the document.
type NoSuchAccountError struct {
	Account string
}

func (e *NoSuchAccountError) Error() string {
	return fmt.Sprintf("no such account %q", e.Account)
}

// NoSuchCommodityError reports a query for a commodity with no accumulated
// balance on the selected account.
type NoSuchCommodityError struct {
	Account   string
	Commodity string
}

func (e *NoSuchCommodityError) Error() string {
	return fmt.Sprintf("account %q holds no balance in %q", e.Account, e.Commodity)
}

// ErrIncludeCycle is wrapped by Resolve when a file includes itself, directly
// or through a chain of includes.
var ErrIncludeCycle = fmt.Errorf("include cycle")
