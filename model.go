package ledgerview

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Model owns the current document for one source file and mediates every
// query against it. A single mutex serializes the whole
// freshness-check / reload / convert / compute span, so concurrent callers
// observe either the pre-reload or the post-reload document in full, never a
// partially replaced one. Every query that observes staleness pays the full
// reparse cost and blocks the others for that duration; query volume is low
// and ledger files are small, so simplicity wins over finer-grained locking.
type Model struct {
	mu sync.Mutex

	path    string
	native  string
	foreign []string

	raw       *Ledger   // merged document, as parsed
	converted *Ledger   // lazily built native-currency view, reset on reload
	modTime   time.Time // source file mtime the document was built from
}

// NewModel loads the ledger file tree rooted at path and returns a model
// reporting in the native currency. foreign selects which commodities are
// converted; ForeignAll converts everything.
func NewModel(path, native string, foreign []string) (*Model, error) {
	m := &Model{path: path, native: native, foreign: foreign}
	if err := m.reload(); err != nil {
		return nil, err
	}
	return m, nil
}

// NativeCurrency returns the currency every converted report is expressed in.
func (m *Model) NativeCurrency() string { return m.native }

// reload rebuilds the document wholesale from disk. On failure the previous
// document and mtime stay authoritative.
func (m *Model) reload() error {
	info, err := os.Stat(m.path)
	if err != nil {
		return fmt.Errorf("could not stat ledger file %q: %w", m.path, err)
	}
	ledger, err := Resolve(m.path)
	if err != nil {
		return err
	}
	m.raw = ledger
	m.converted = nil
	m.modTime = info.ModTime()
	return nil
}

// ensureFresh reloads the document when the source file's mtime is strictly
// newer than the one the current document was built from.
func (m *Model) ensureFresh() error {
	info, err := os.Stat(m.path)
	if err != nil {
		return fmt.Errorf("could not stat ledger file %q: %w", m.path, err)
	}
	if !info.ModTime().After(m.modTime) {
		return nil
	}
	return m.reload()
}

// document returns the ledger a report should run on, building the converted
// view on first use after a (re)load.
func (m *Model) document(convert bool) (*Ledger, error) {
	if !convert {
		return m.raw, nil
	}
	if m.converted == nil {
		converted, err := Convert(m.raw, m.native, m.foreign)
		if err != nil {
			return nil, err
		}
		m.converted = converted
	}
	return m.converted, nil
}

// Monthly answers the per-month net change report for the account.
func (m *Model) Monthly(account string, convert bool) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFresh(); err != nil {
		return nil, err
	}
	doc, err := m.document(convert)
	if err != nil {
		return nil, err
	}
	return Monthly(doc, account), nil
}

// Cashflow answers the cumulative monthly report for the account.
func (m *Model) Cashflow(account string, convert bool) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFresh(); err != nil {
		return nil, err
	}
	doc, err := m.document(convert)
	if err != nil {
		return nil, err
	}
	return Cashflow(doc, account), nil
}

// Balance answers the whole-document balance of the account, expressed in the
// native currency.
func (m *Model) Balance(account string, convert bool) (Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFresh(); err != nil {
		return Row{}, err
	}
	doc, err := m.document(convert)
	if err != nil {
		return Row{}, err
	}
	return BalanceOf(doc, account, m.native)
}

// Split answers the immediate-children breakdown of the account's balance,
// expressed in the native currency.
func (m *Model) Split(account string, convert bool) ([]Row, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFresh(); err != nil {
		return nil, err
	}
	doc, err := m.document(convert)
	if err != nil {
		return nil, err
	}
	return Split(doc, account, m.native)
}

// Print renders the current merged document as ledger text.
func (m *Model) Print() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.ensureFresh(); err != nil {
		return "", err
	}
	return m.raw.String(), nil
}
