package http

import (
	"log/slog"
	"net/http"

	"bakikhata/internal/core"
)

type customerRow struct {
	ID      string
	Name    string
	Initial string
	Due     string
}

type dashboardData struct {
	TotalDue     string
	Customers    int
	Transactions int
	Query        string
	Rows         []customerRow
}

// buildCustomerRows recomputes the due map and sorts the filtered
// customers by amount owed descending. Aggregates are derived on every
// render, never cached.
func (s *Server) buildCustomerRows(query string) []customerRow {
	customers := s.book.Customers()
	due := core.DueByCustomer(s.book.Transactions())

	sorted := core.SortedCustomers(customers, due, query)
	rows := make([]customerRow, len(sorted))
	for i, c := range sorted {
		initial := ""
		for _, r := range c.Name {
			initial = string(r)
			break
		}
		rows[i] = customerRow{
			ID:      c.ID,
			Name:    c.Name,
			Initial: initial,
			Due:     formatTaka(due[c.ID].Cents),
		}
	}
	return rows
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	query := sanitizeInput(r.URL.Query().Get("q"))
	stats := s.book.Stats()
	data := dashboardData{
		TotalDue:     formatTaka(stats.TotalDue.Cents),
		Customers:    stats.CustomerCount,
		Transactions: stats.TransactionCnt,
		Query:        query,
		Rows:         s.buildCustomerRows(query),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// handleCustomerList renders the searchable customer-list partial.
func (s *Server) handleCustomerList(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	query := sanitizeInput(r.URL.Query().Get("q"))
	data := struct {
		Rows []customerRow
	}{Rows: s.buildCustomerRows(query)}

	if err := s.templates.ExecuteTemplate(w, "customer_list.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Customer list template error", "error", err)
		_, _ = w.Write([]byte(`<div class="error">তালিকা লোড করা যায়নি (could not load list)</div>`))
	}
}
