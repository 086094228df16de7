package ledgerview

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

const modelLedgerV1 = `2024-01-15 Coffee
    Expenses/Food  5.00 USD @ 0.10 INR
    Assets/Wallet
`

const modelLedgerV2 = `2024-01-15 Coffee
    Expenses/Food  5.00 USD @ 0.10 INR
    Assets/Wallet

2024-02-01 Tea
    Expenses/Food  2.00 USD @ 0.10 INR
    Assets/Wallet
`

func newTestModel(t *testing.T, content string) (*Model, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.complete")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	m, err := NewModel(path, "INR", []string{"USD"})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	return m, path
}

// touch moves the file's mtime strictly past the model's recorded one.
func touch(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
}

func TestModel_ConvertedScenario(t *testing.T) {
	m, _ := newTestModel(t, modelLedgerV1)
	rows, err := m.Monthly("Expenses/Food", true)
	if err != nil {
		t.Fatalf("Monthly() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("Monthly() returned %d rows, want 1", len(rows))
	}
	// 5.00 USD at a 0.10 INR unit rate is 0.50 INR.
	if got := rows[0].Amount.String(); got != "0.5" {
		t.Errorf("converted amount = %s, want 0.5", got)
	}
}

func TestModel_ReloadsWhenStale(t *testing.T) {
	m, path := newTestModel(t, modelLedgerV1)

	if rows, _ := m.Monthly("Expenses/Food", true); len(rows) != 1 {
		t.Fatalf("initial Monthly() returned %d rows, want 1", len(rows))
	}

	if err := os.WriteFile(path, []byte(modelLedgerV2), 0644); err != nil {
		t.Fatal(err)
	}
	touch(t, path)

	rows, err := m.Monthly("Expenses/Food", true)
	if err != nil {
		t.Fatalf("Monthly() after edit error = %v", err)
	}
	if len(rows) != 2 {
		t.Errorf("Monthly() after edit returned %d rows, want 2", len(rows))
	}
}

func TestModel_ReloadsOnTouchWithoutContentChange(t *testing.T) {
	m, path := newTestModel(t, modelLedgerV1)
	if _, err := m.Monthly("Expenses/Food", true); err != nil {
		t.Fatal(err)
	}
	before := m.modTime

	touch(t, path)
	if _, err := m.Monthly("Expenses/Food", true); err != nil {
		t.Fatal(err)
	}
	// Content is identical, but the reload path must still be taken.
	if !m.modTime.After(before) {
		t.Errorf("modTime not advanced: %v -> %v", before, m.modTime)
	}
}

func TestModel_NotStaleSkipsReload(t *testing.T) {
	m, _ := newTestModel(t, modelLedgerV1)
	doc := m.raw
	if _, err := m.Monthly("Expenses/Food", false); err != nil {
		t.Fatal(err)
	}
	if m.raw != doc {
		t.Error("document replaced although the file did not change")
	}
}

func TestModel_KeepsDocumentOnReloadFailure(t *testing.T) {
	m, path := newTestModel(t, modelLedgerV1)

	// Make the next freshness check fail at stat time.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Monthly("Expenses/Food", true); err == nil {
		t.Fatal("Monthly() succeeded, want stat error")
	}
	// The previous in-memory document is still authoritative.
	if m.raw == nil || len(m.raw.Items) == 0 {
		t.Error("previous document dropped after failed reload")
	}

	// Malformed rewrite: parse fails, previous document again retained.
	if err := os.WriteFile(path, []byte("2024-99-99 Broken\n    A  1 USD\n"), 0644); err != nil {
		t.Fatal(err)
	}
	touch(t, path)
	if _, err := m.Monthly("Expenses/Food", true); err == nil {
		t.Fatal("Monthly() succeeded, want parse error")
	}
	if got := len(m.raw.Items); got != 1 {
		t.Errorf("document has %d items after failed reload, want the original 1", got)
	}
}

func TestModel_Print(t *testing.T) {
	m, _ := newTestModel(t, modelLedgerV1)
	text, err := m.Print()
	if err != nil {
		t.Fatalf("Print() error = %v", err)
	}
	reparsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Print() output does not parse back: %v", err)
	}
	if len(reparsed.Items) != 1 {
		t.Errorf("printed document has %d items, want 1", len(reparsed.Items))
	}
}

func TestModel_UnconvertedKeepsForeignCommodity(t *testing.T) {
	m, _ := newTestModel(t, modelLedgerV1)
	_, err := m.Balance("Expenses/Food", false)
	// Without conversion the account only holds USD, so the INR display
	// balance does not exist.
	if err == nil {
		t.Fatal("Balance() without conversion succeeded, want NoSuchCommodityError")
	}
}
