package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"bakikhata/internal/core"
	"bakikhata/internal/ledger"
)

type transactionRow struct {
	ID          string
	ProductName string
	Quantity    string
	Price       string
	Date        time.Time
	DueDate     string
	Note        string

	// Prefill values for the inline edit form
	DateVal  string
	TimeVal  string
	PriceVal string
	QtyVal   string
}

type customerPage struct {
	ID       string
	Name     string
	TotalDue string
	Rows     []transactionRow

	// Defaults for the add form
	NowDate string
	NowTime string
}

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">অনুরোধটি বোঝা যায়নি (invalid request)</div>`))
		return
	}

	name := sanitizeInput(r.Form.Get("name"))
	c, err := s.book.AddCustomer(r.Context(), name)
	if err != nil {
		if errors.Is(err, core.ErrEmptyName) || errors.Is(err, core.ErrNameTooLong) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">ক্রেতার নাম দিন (customer name is required)</div>`))
			return
		}
		slog.ErrorContext(r.Context(), "Add customer failed", "error", err, "name", name)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">সংরক্ষণ ব্যর্থ হয়েছে (could not save)</div>`))
		return
	}

	// Auto-navigate to the newly created customer.
	s.redirect(w, r, "/customers/"+c.ID)
}

func (s *Server) handleCustomerDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	customer, ok := s.book.Customer(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	txs := core.SortedTransactions(s.book.Transactions(), id)
	rows := make([]transactionRow, len(txs))
	for i, t := range txs {
		rows[i] = transactionRow{
			ID:          t.ID,
			ProductName: t.ProductName,
			Quantity:    formatQuantity(t.Quantity),
			Price:       formatTaka(t.Price.Cents),
			Date:        t.Date,
			DueDate:     t.DueDate,
			Note:        t.Note,
			DateVal:     t.Date.Format("2006-01-02"),
			TimeVal:     t.Date.Format("15:04"),
			PriceVal:    formatQuantity(t.Price.Taka()),
			QtyVal:      formatQuantity(t.Quantity),
		}
	}

	now := time.Now()
	data := customerPage{
		ID:       customer.ID,
		Name:     customer.Name,
		TotalDue: formatTaka(core.TotalDue(s.book.Transactions(), id).Cents),
		Rows:     rows,
		NowDate:  now.Format("2006-01-02"),
		NowTime:  now.Format("15:04"),
	}

	if err := s.templates.ExecuteTemplate(w, "customer.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Customer template execution failed", "error", err, "customer_id", id)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.book.DeleteCustomer(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrCustomerNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Delete customer failed", "error", err, "customer_id", id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">মুছে ফেলা যায়নি (could not delete)</div>`))
		return
	}

	s.redirect(w, r, "/")
}

// redirect navigates HTMX clients via HX-Redirect and everyone else with a
// plain 303.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, location string) {
	if r.Header.Get("HX-Request") == "true" {
		w.Header().Set("HX-Redirect", location)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
