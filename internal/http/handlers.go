package http

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/beom0515/beom-jyeon-book/internal/core"
	"github.com/beom0515/beom-jyeon-book/internal/ledger"
)

// handleIndex renders the page shell with one tab per person.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	now := time.Now()
	data := struct {
		Persons    []core.Person
		Categories []string
		Year       int
		Month      int
		Day        int
	}{core.Persons(), core.Categories, now.Year(), int(now.Month()), now.Day()}

	if err := s.templates.ExecuteTemplate(w, "index", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleLedger renders the raw entry list for one person and month.
func (s *Server) handleLedger(w http.ResponseWriter, r *http.Request) {
	person, ok := s.personFromPath(w, r, "/ledger/")
	if !ok {
		return
	}
	period := periodFromQuery(r)

	entries := s.ledgers.Load(r.Context(), person)
	type entryRow struct {
		Date     string
		Kind     string
		Category string
		Memo     string
		Amount   string
	}
	var rows []entryRow
	for _, e := range entries {
		if !period.Matches(e.Date) {
			continue
		}
		rows = append(rows, entryRow{
			Date:     e.Date.ISO(),
			Kind:     e.Kind.String(),
			Category: e.Category,
			Memo:     e.Memo,
			Amount:   formatAmount(e.Amount),
		})
	}

	data := struct {
		Person string
		Year   int
		Month  int
		Rows   []entryRow
	}{person.String(), period.Year, period.Month, rows}
	if err := s.templates.ExecuteTemplate(w, "entries", data); err != nil {
		slog.ErrorContext(r.Context(), "Entries template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCalendar renders the month grid with per-day sums.
func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	person, ok := s.personFromPath(w, r, "/calendar/")
	if !ok {
		return
	}
	period := periodFromQuery(r)

	entries := s.ledgers.Load(r.Context(), person)
	view := buildCalendar(person, entries, period.Year, period.Month)
	if err := s.templates.ExecuteTemplate(w, "calendar", view); err != nil {
		slog.ErrorContext(r.Context(), "Calendar template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleSummary renders income/expense/balance for a person and period.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	person, ok := s.personFromPath(w, r, "/summary/")
	if !ok {
		return
	}
	period := periodFromQuery(r)

	sum := s.ledgers.Summarize(r.Context(), person, period)
	if err := s.templates.ExecuteTemplate(w, "summary", newSummaryView(sum)); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleHouseholdSummary combines both ledgers. The two loads are
// independent reads, so they run concurrently.
func (s *Server) handleHouseholdSummary(w http.ResponseWriter, r *http.Request) {
	period := periodFromQuery(r)

	sums := make([]core.Summary, 2)
	g, ctx := errgroup.WithContext(r.Context())
	for i, p := range core.Persons() {
		g.Go(func() error {
			sums[i] = s.ledgers.Summarize(ctx, p, period)
			return nil
		})
	}
	// Summarize never fails; the group only propagates cancellation.
	_ = g.Wait()

	total := sums[0].Add(sums[1])
	if err := s.templates.ExecuteTemplate(w, "summary", newSummaryView(total)); err != nil {
		slog.ErrorContext(r.Context(), "Summary template execution failed", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCreateEntry accepts the form submit and routes the new entry.
func (s *Server) handleCreateEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeInlineError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	person, err := core.ParsePerson(r.Form.Get("person"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "unknown person")
		return
	}
	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	kind, err := core.ParseKind(r.Form.Get("kind"), person)
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "invalid kind")
		return
	}
	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	entry := core.Entry{
		Date:     date,
		Kind:     kind,
		Category: r.Form.Get("category"),
		Memo:     r.Form.Get("memo"),
		Amount:   amount,
	}

	if err := s.ledgers.Append(r.Context(), person, entry); err != nil {
		var partial *ledger.PartialWriteError
		if errors.As(err, &partial) {
			// One side is saved; the user retries just the missing one.
			slog.ErrorContext(r.Context(), "Partial entry write",
				"person", person.String(),
				"error", err)
			writeInlineError(w, http.StatusInternalServerError, partialWriteMessage(partial))
			return
		}
		slog.ErrorContext(r.Context(), "Failed to save entry",
			"person", person.String(),
			"kind", kind.String(),
			"error", err)
		writeInlineError(w, http.StatusInternalServerError, "saving failed, nothing was recorded; please retry")
		return
	}

	w.Header().Set("HX-Trigger", `{"form:reset": {}, "ledger:refresh": {}}`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<div class="success">saved</div>`)
}

// handleDeleteEntry removes the first row matching date+amount+memo.
func (s *Server) handleDeleteEntry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		w.Header().Set("Allow", "POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		writeInlineError(w, http.StatusBadRequest, "invalid form data")
		return
	}

	person, err := core.ParsePerson(r.Form.Get("person"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "unknown person")
		return
	}
	date, err := core.ParseDate(r.Form.Get("date"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "invalid date")
		return
	}
	amount, err := core.ParseAmount(r.Form.Get("amount"))
	if err != nil {
		writeInlineError(w, http.StatusUnprocessableEntity, "invalid amount")
		return
	}

	match := ledger.Match{Date: date, Amount: amount, Memo: strings.TrimSpace(r.Form.Get("memo"))}
	if err := s.ledgers.Delete(r.Context(), person, match); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete entry",
			"person", person.String(),
			"error", err)
		writeInlineError(w, http.StatusInternalServerError, "deletion failed; please retry")
		return
	}

	w.Header().Set("HX-Trigger", `{"ledger:refresh": {}}`)
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, `<div class="success">deleted</div>`)
}

// personFromPath parses the trailing path segment as a person id.
func (s *Server) personFromPath(w http.ResponseWriter, r *http.Request, prefix string) (core.Person, bool) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return "", false
	}
	person, err := core.ParsePerson(strings.TrimPrefix(r.URL.Path, prefix))
	if err != nil {
		http.NotFound(w, r)
		return "", false
	}
	return person, true
}

// periodFromQuery reads year/month/day, defaulting to the current month.
func periodFromQuery(r *http.Request) core.Period {
	now := time.Now()
	period := core.Period{Year: now.Year(), Month: int(now.Month())}
	if v := strings.TrimSpace(r.URL.Query().Get("year")); v != "" {
		if y, err := strconv.Atoi(v); err == nil {
			period.Year = y
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		if m, err := strconv.Atoi(v); err == nil && m >= 1 && m <= 12 {
			period.Month = m
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("day")); v != "" {
		if d, err := strconv.Atoi(v); err == nil && d >= 1 && d <= 31 {
			period.Day = d
		}
	}
	return period
}

func partialWriteMessage(partial *ledger.PartialWriteError) string {
	oks := make([]string, 0, len(partial.Succeeded))
	for _, p := range partial.Succeeded {
		oks = append(oks, p.String())
	}
	fails := make([]string, 0, len(partial.Failed))
	for _, p := range partial.FailedTargets() {
		fails = append(fails, p.String())
	}
	return fmt.Sprintf("saved for %s but failed for %s; retry only the missing side",
		strings.Join(oks, ", "), strings.Join(fails, ", "))
}

func writeInlineError(w http.ResponseWriter, status int, msg string) {
	w.WriteHeader(status)
	fmt.Fprintf(w, `<div class="error">%s</div>`, template.HTMLEscapeString(msg))
}
