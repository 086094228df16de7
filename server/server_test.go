package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ledgerview"
)

const testLedger = `2024-01-15 Coffee
    Expenses/Food  5.00 USD @ 0.10 INR
    Assets/Wallet

2024-02-01 Groceries
    Expenses/Food  600.00 INR
    Assets/Wallet
`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.complete")
	if err := os.WriteFile(path, []byte(testLedger), 0644); err != nil {
		t.Fatal(err)
	}
	model, err := ledgerview.NewModel(path, "INR", []string{ledgerview.ForeignAll})
	if err != nil {
		t.Fatalf("NewModel() error = %v", err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ts := httptest.NewServer(New("", model, logger).Handler())
	t.Cleanup(ts.Close)
	return ts
}

func get(t *testing.T, ts *httptest.Server, path string) (int, string) {
	t.Helper()
	resp, err := ts.Client().Get(ts.URL + path)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp.StatusCode, string(body)
}

func TestServer_Ping(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/ping")
	if status != http.StatusOK || body != "Pong" {
		t.Errorf("GET /ping = %d %q, want 200 Pong", status, body)
	}
}

func TestServer_MonthlyJSON(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/monthly/Expenses/Food")
	if status != http.StatusOK {
		t.Fatalf("GET /monthly = %d, body %s", status, body)
	}
	// Amounts travel as exact decimal strings, never as JSON numbers.
	if !strings.Contains(body, `"amount":"0.5"`) {
		t.Errorf("body missing decimal string amount: %s", body)
	}
	var rows []map[string]string
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatalf("response is not an array of string-valued rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["date"] != "2024-01-31" || rows[1]["date"] != "2024-02-29" {
		t.Errorf("row dates = %s, %s", rows[0]["date"], rows[1]["date"])
	}
}

func TestServer_CashflowAccumulates(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/cashflow/Expenses/Food")
	if status != http.StatusOK {
		t.Fatalf("GET /cashflow = %d", status)
	}
	var rows []map[string]string
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatal(err)
	}
	if rows[1]["amount"] != "600.5" {
		t.Errorf("cumulative amount = %q, want 600.5", rows[1]["amount"])
	}
}

func TestServer_BalanceSingleRow(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/balance/Expenses/Food")
	if status != http.StatusOK {
		t.Fatalf("GET /balance = %d", status)
	}
	var rows []map[string]string
	if err := json.Unmarshal([]byte(body), &rows); err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0]["amount"] != "600.5" {
		t.Errorf("balance rows = %v", rows)
	}
	if _, hasDate := rows[0]["date"]; hasDate {
		t.Errorf("balance row carries a date: %v", rows[0])
	}
}

func TestServer_SplitUnknownAccount(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/split/Liabilities")
	if status != http.StatusNotFound {
		t.Errorf("GET /split unknown = %d, want 404", status)
	}
	if !strings.Contains(body, "error") {
		t.Errorf("error body = %s", body)
	}
}

func TestServer_ConvertFlagOff(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/monthly/Expenses/Food?convert=false")
	if status != http.StatusOK {
		t.Fatalf("GET /monthly?convert=false = %d", status)
	}
	// Unconverted, January stays in USD terms.
	if !strings.Contains(body, `"amount":"5"`) {
		t.Errorf("unconverted body = %s", body)
	}
}

func TestServer_Print(t *testing.T) {
	ts := newTestServer(t)
	status, body := get(t, ts, "/print")
	if status != http.StatusOK {
		t.Fatalf("GET /print = %d", status)
	}
	if !strings.Contains(body, "Expenses/Food") {
		t.Errorf("print output missing account: %s", body)
	}
}
