package ledgerview

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeFile creates path (and its parents) under dir with the given content.
func writeFile(t *testing.T, dir, path, content string) string {
	t.Helper()
	full := filepath.Join(dir, path)
	if err := os.MkdirAll(filepath.Dir(full), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(full, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return full
}

func TestResolve_MergeOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "child.ledger", "2024-02-01 Child\n    A  1 USD\n")
	root := writeFile(t, dir, "root.ledger", "include child.ledger\n\n2024-01-01 Root\n    A  2 USD\n")

	ledger, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var descriptions []string
	for _, tx := range ledger.Transactions() {
		descriptions = append(descriptions, tx.Description)
	}
	// Included documents come after the referencing document's own items.
	want := []string{"Root", "Child"}
	if len(descriptions) != len(want) || descriptions[0] != want[0] || descriptions[1] != want[1] {
		t.Errorf("transaction order = %v, want %v", descriptions, want)
	}
}

func TestResolve_RelativeToIncludingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "sub/inner.ledger", "2024-03-01 Inner\n    A  1 USD\n")
	writeFile(t, dir, "sub/mid.ledger", "include inner.ledger\n")
	root := writeFile(t, dir, "root.ledger", "include sub/mid.ledger\n")

	ledger, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	count := 0
	for _, tx := range ledger.Transactions() {
		count++
		if tx.Description != "Inner" {
			t.Errorf("unexpected transaction %q", tx.Description)
		}
	}
	if count != 1 {
		t.Errorf("resolved %d transactions, want 1", count)
	}
}

func TestResolve_DuplicateIncludeDuplicates(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "common.ledger", "2024-01-01 Shared\n    A  1 USD\n")
	root := writeFile(t, dir, "root.ledger", "include common.ledger\ninclude common.ledger\n")

	ledger, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	count := 0
	for range ledger.Transactions() {
		count++
	}
	// Including the same file twice yields duplicated transactions, by contract.
	if count != 2 {
		t.Errorf("resolved %d transactions, want 2", count)
	}
}

func TestResolve_Cycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.ledger", "include b.ledger\n")
	writeFile(t, dir, "b.ledger", "include a.ledger\n")

	_, err := Resolve(filepath.Join(dir, "a.ledger"))
	if !errors.Is(err, ErrIncludeCycle) {
		t.Errorf("Resolve() error = %v, want ErrIncludeCycle", err)
	}
}

func TestResolve_MissingFile(t *testing.T) {
	dir := t.TempDir()
	root := writeFile(t, dir, "root.ledger", "include nowhere.ledger\n")

	_, err := Resolve(root)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Resolve() error = %v, want wrapped fs.ErrNotExist", err)
	}
}

func TestResolve_ParseErrorNamesFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.ledger", "2024-01-01 Bad\n    A  no-amount-here USD extra\n")
	root := writeFile(t, dir, "root.ledger", "include bad.ledger\n")

	_, err := Resolve(root)
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Resolve() error = %v, want *ParseError", err)
	}
	if filepath.Base(perr.File) != "bad.ledger" {
		t.Errorf("ParseError.File = %q, want bad.ledger", perr.File)
	}
}
