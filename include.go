package ledgerview

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Resolve reads and parses the ledger file at path, recursively resolves its
// include directives, and merges everything into one document.
//
// Included paths are constructed relative to the directory of the file that
// references them, not the process working directory. Merge order is a
// contract: each document keeps its own item order, and included documents
// are appended after the referencing document's own items, depth-first.
// Including the same file twice duplicates its transactions; that is intended
// behavior, not a bug.
//
// A file that includes itself, directly or through a chain, fails with an
// error wrapping ErrIncludeCycle.
func Resolve(path string) (*Ledger, error) {
	r := &resolver{visiting: make(map[string]bool)}
	return r.resolve(path)
}

type resolver struct {
	visiting map[string]bool // absolute paths on the current include chain
}

func (r *resolver) resolve(path string) (*Ledger, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("could not resolve ledger path %q: %w", path, err)
	}
	if r.visiting[abs] {
		return nil, fmt.Errorf("%w: %q includes itself", ErrIncludeCycle, path)
	}
	r.visiting[abs] = true
	defer delete(r.visiting, abs)

	text, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("could not read ledger file %q: %w", path, err)
	}
	ledger, err := Parse(string(text))
	if err != nil {
		var perr *ParseError
		if errors.As(err, &perr) && perr.File == "" {
			perr.File = path
		}
		return nil, err
	}

	dir := filepath.Dir(abs)
	ledgers := []*Ledger{ledger}
	for _, it := range ledger.Items {
		inc, ok := it.(Include)
		if !ok {
			continue
		}
		child, err := r.resolve(filepath.Join(dir, inc.Path))
		if err != nil {
			return nil, err
		}
		ledgers = append(ledgers, child)
	}
	return Merge(ledgers...), nil
}
