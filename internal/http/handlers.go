package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"spendlog/internal/core"
)

const dateLayout = "2006-01-02"

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	now := s.now()
	data := struct {
		Today      string
		Categories []core.Category
		Summary    *summaryView
		LoadError  bool
	}{
		Today:      now.Format(dateLayout),
		Categories: core.Categories(),
	}

	records, err := s.records.LoadAll(r.Context())
	if err != nil {
		// Best effort: the form still renders, the figures show a placeholder.
		slog.ErrorContext(r.Context(), "Load records error", "error", err)
		data.LoadError = true
	} else {
		view := buildSummaryView(records, s.budget, now)
		data.Summary = &view
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		s.writeSubmitError(w, r, http.StatusBadRequest, "Malformed request")
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	amountStr := strings.TrimSpace(r.Form.Get("amount"))
	categoryStr := r.Form.Get("category")
	dateStr := strings.TrimSpace(r.Form.Get("date"))

	cents, err := core.ParseDecimalToCents(amountStr)
	if err != nil {
		s.writeSubmitError(w, r, http.StatusUnprocessableEntity, "Invalid amount")
		return
	}

	category, err := core.ParseCategory(categoryStr)
	if err != nil {
		s.writeSubmitError(w, r, http.StatusUnprocessableEntity, "Unknown category")
		return
	}

	// Missing date means today; a malformed one is rejected outright.
	date := s.now()
	if dateStr != "" {
		date, err = time.Parse(dateLayout, dateStr)
		if err != nil {
			s.writeSubmitError(w, r, http.StatusUnprocessableEntity, "Invalid date")
			return
		}
	}

	exp := core.Expense{
		Name:     name,
		Amount:   core.Money{Cents: cents},
		Category: category,
		Date:     date,
	}
	if err := exp.Validate(); err != nil {
		s.writeSubmitError(w, r, http.StatusUnprocessableEntity, "Invalid entry: "+err.Error())
		return
	}

	ref, err := s.records.Append(r.Context(), exp)
	if err != nil {
		slog.ErrorContext(r.Context(), "Expense append error", "error", err, "expense", exp.Name, "amount", exp.Amount.Cents)
		s.writeSubmitError(w, r, http.StatusInternalServerError, "Could not save the expense")
		return
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseLogged(r.Context(), exp); err != nil {
			// The record is persisted; the mirror catches up later.
			slog.ErrorContext(r.Context(), "Publish expense event error", "error", err, "expense", exp.Name)
		}
	}

	if !isHTMX(r) {
		// Plain form post: redirect so a refresh does not resubmit.
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	w.Header().Set("HX-Trigger", "expense:logged")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`<div class="success">Logged (` + template.HTMLEscapeString(ref) + `): ` +
		template.HTMLEscapeString(exp.Name) +
		` — $` + template.HTMLEscapeString(exp.Amount.String()) +
		` (` + template.HTMLEscapeString(string(exp.Category)) + `)</div>`))
}

// handleSummary renders the summary partial (figures, chart, recent table).
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	records, err := s.records.LoadAll(r.Context())
	if err != nil {
		slog.ErrorContext(r.Context(), "Load records error", "error", err)
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Could not load expenses</div></section>`))
		return
	}

	view := buildSummaryView(records, s.budget, s.now())
	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Total: ` + view.Total + `</div></section>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, "summary.html", view); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "summary.html")
		_, _ = w.Write([]byte(`<section id="summary" class="summary"><div class="placeholder">Could not render summary</div></section>`))
	}
}

func (s *Server) writeSubmitError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if !isHTMX(r) {
		http.Error(w, msg, status)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`<div class="error">` + template.HTMLEscapeString(msg) + `</div>`))
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
