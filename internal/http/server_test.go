package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/beom0515/beom-jyeon-book/internal/ledger"
	applog "github.com/beom0515/beom-jyeon-book/internal/log"
	"github.com/beom0515/beom-jyeon-book/internal/tabular/memory"
)

func newTestServer(t *testing.T) (*Server, *memory.Store) {
	t.Helper()
	mem := memory.New()
	ledgers := ledger.New(mem, ledger.WithCacheTTL(0))
	logger := &applog.Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	srv, err := NewServer(":0", ledgers, logger)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	t.Cleanup(func() { srv.rateLimiter.stop() })
	return srv, mem
}

func doGet(srv *Server, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func doForm(srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func entryForm(person, date, kind, amount string) url.Values {
	return url.Values{
		"person":   {person},
		"date":     {date},
		"kind":     {kind},
		"category": {"food"},
		"memo":     {"lunch"},
		"amount":   {amount},
	}
}

func TestIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(srv, "/")
	if rr.Code != http.StatusOK {
		t.Fatalf("index status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"beom", "jyeon", "/entries"} {
		if !strings.Contains(body, want) {
			t.Errorf("index body missing %q", want)
		}
	}

	rr = doGet(srv, "/nope")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown path status = %d", rr.Code)
	}
}

func TestCreateEntryAndList(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doForm(srv, "/entries", entryForm("beom", "2026-08-15", "expense", "12000"))
	if rr.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "success") {
		t.Fatalf("expected success marker, got %s", rr.Body.String())
	}
	if rr.Header().Get("HX-Trigger") == "" {
		t.Error("expected HX-Trigger header on create")
	}

	rr = doGet(srv, "/ledger/beom?year=2026&month=8")
	if rr.Code != http.StatusOK {
		t.Fatalf("ledger status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "lunch") || !strings.Contains(body, "12,000") {
		t.Fatalf("ledger body missing entry: %s", body)
	}

	// A different month shows nothing.
	rr = doGet(srv, "/ledger/beom?year=2026&month=9")
	if strings.Contains(rr.Body.String(), "lunch") {
		t.Fatal("entry leaked into another month")
	}
}

func TestCreateSharedEntryAppearsInBothLedgers(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doForm(srv, "/entries", entryForm("jyeon", "2026-08-02", "shared", "30000"))
	if rr.Code != http.StatusOK {
		t.Fatalf("create status = %d", rr.Code)
	}

	for _, person := range []string{"beom", "jyeon"} {
		rr := doGet(srv, "/ledger/"+person+"?year=2026&month=8")
		if !strings.Contains(rr.Body.String(), "30,000") {
			t.Errorf("shared entry missing from %s ledger", person)
		}
	}
}

func TestCreateEntryValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := doGet(srv, "/entries")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET /entries status = %d", rr.Code)
	}

	cases := []struct {
		name string
		form url.Values
	}{
		{"unknown person", entryForm("someone", "2026-08-01", "expense", "100")},
		{"bad date", entryForm("beom", "not-a-date", "expense", "100")},
		{"negative amount", entryForm("beom", "2026-08-01", "expense", "-100")},
		{"bad amount", entryForm("beom", "2026-08-01", "expense", "abc")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doForm(srv, "/entries", tc.form)
			if rr.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
			}
		})
	}
}

func TestCreateEntryPartialWrite(t *testing.T) {
	srv, mem := newTestServer(t)
	mem.FailWrite = func(tableID string) error {
		if tableID == "jyeon" {
			return fmt.Errorf("sheet unavailable")
		}
		return nil
	}

	rr := doForm(srv, "/entries", entryForm("beom", "2026-08-03", "shared", "5000"))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "saved for beom") || !strings.Contains(body, "failed for jyeon") {
		t.Fatalf("expected partial-write message, got %s", body)
	}
}

func TestDeleteEntry(t *testing.T) {
	srv, _ := newTestServer(t)

	if rr := doForm(srv, "/entries", entryForm("beom", "2026-08-10", "expense", "7000")); rr.Code != http.StatusOK {
		t.Fatalf("create status = %d", rr.Code)
	}

	form := url.Values{
		"person": {"beom"},
		"date":   {"2026-08-10"},
		"memo":   {"lunch"},
		"amount": {"7,000"}, // formatted amounts from the list view are accepted
	}
	rr := doForm(srv, "/entries/delete", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", rr.Code, rr.Body.String())
	}

	rr = doGet(srv, "/ledger/beom?year=2026&month=8")
	if strings.Contains(rr.Body.String(), "lunch") {
		t.Fatal("entry still listed after delete")
	}

	// Deleting a row that does not exist still succeeds.
	rr = doForm(srv, "/entries/delete", form)
	if rr.Code != http.StatusOK {
		t.Fatalf("repeat delete status = %d", rr.Code)
	}
}

func TestSummaryEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	seeds := []url.Values{
		entryForm("beom", "2026-08-01", "income", "100000"),
		entryForm("beom", "2026-08-02", "expense", "30000"),
		entryForm("jyeon", "2026-08-03", "income", "50000"),
	}
	for _, form := range seeds {
		if rr := doForm(srv, "/entries", form); rr.Code != http.StatusOK {
			t.Fatalf("seed failed: %d", rr.Code)
		}
	}

	rr := doGet(srv, "/summary/beom?year=2026&month=8")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status = %d", rr.Code)
	}
	body := rr.Body.String()
	for _, want := range []string{"100,000", "30,000", "70,000"} {
		if !strings.Contains(body, want) {
			t.Errorf("summary missing %q: %s", want, body)
		}
	}

	rr = doGet(srv, "/summary/household?year=2026&month=8")
	if rr.Code != http.StatusOK {
		t.Fatalf("household summary status = %d", rr.Code)
	}
	body = rr.Body.String()
	// income 150,000 expense 30,000 balance 120,000
	for _, want := range []string{"150,000", "120,000"} {
		if !strings.Contains(body, want) {
			t.Errorf("household summary missing %q: %s", want, body)
		}
	}

	rr = doGet(srv, "/summary/someone")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("unknown person summary status = %d", rr.Code)
	}
}

func TestCalendarView(t *testing.T) {
	srv, _ := newTestServer(t)

	if rr := doForm(srv, "/entries", entryForm("beom", "2026-08-20", "expense", "4500")); rr.Code != http.StatusOK {
		t.Fatalf("seed failed")
	}

	rr := doGet(srv, "/calendar/beom?year=2026&month=8")
	if rr.Code != http.StatusOK {
		t.Fatalf("calendar status = %d", rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "2026.08") {
		t.Errorf("calendar missing month heading: %s", body)
	}
	if !strings.Contains(body, "4,500") {
		t.Errorf("calendar missing day total: %s", body)
	}
}

func TestLedgerOnBackingStoreFailure(t *testing.T) {
	srv, mem := newTestServer(t)
	mem.FailRead = func(string) error { return fmt.Errorf("backend down") }

	// Reads degrade to an empty ledger instead of erroring.
	rr := doGet(srv, "/ledger/beom?year=2026&month=8")
	if rr.Code != http.StatusOK {
		t.Fatalf("ledger status = %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "기록이 없습니다") {
		t.Fatalf("expected empty-state message, got %s", rr.Body.String())
	}
}
