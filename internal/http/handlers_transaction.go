package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"bakikhata/internal/core"
	"bakikhata/internal/ledger"
	applog "bakikhata/internal/log"
)

// handleSaveTransaction serves both add and edit: an empty transaction_id
// field means add, a known one means edit in place.
func (s *Server) handleSaveTransaction(w http.ResponseWriter, r *http.Request) {
	customerID := r.PathValue("id")
	if _, ok := s.book.Customer(customerID); !ok {
		http.NotFound(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "method", r.Method, "url", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`<div class="error">অনুরোধটি বোঝা যায়নি (invalid request)</div>`))
		return
	}

	productName := sanitizeInput(r.Form.Get("product_name"))
	priceStr := strings.TrimSpace(r.Form.Get("price"))
	if productName == "" || priceStr == "" {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">পণ্যের নাম ও দাম দিন (product name and price are required)</div>`))
		return
	}

	date, err := combineDateTime(r.Form.Get("date"), r.Form.Get("time"))
	if err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`<div class="error">তারিখ বা সময় সঠিক নয় (invalid date or time)</div>`))
		return
	}

	tx := core.Transaction{
		ID:          strings.TrimSpace(r.Form.Get("transaction_id")),
		CustomerID:  customerID,
		ProductName: productName,
		Quantity:    core.ParseQuantity(r.Form.Get("quantity")),
		Price:       core.ParseAmountOrZero(priceStr),
		Date:        date,
		DueDate:     strings.TrimSpace(r.Form.Get("due_date")),
		Note:        sanitizeInput(r.Form.Get("note")),
	}

	saved, err := s.book.SaveTransaction(r.Context(), tx)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrTransactionNotFound), errors.Is(err, ledger.ErrCustomerNotFound):
			http.NotFound(w, r)
		case errors.Is(err, core.ErrInvalidDueDate):
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`<div class="error">পরিশোধের তারিখ সঠিক নয় (invalid due date)</div>`))
		default:
			slog.ErrorContext(r.Context(), "Save transaction failed",
				applog.FieldError, err,
				applog.FieldCustomerID, customerID,
				applog.FieldProduct, tx.ProductName,
				applog.FieldAmount, tx.Price.Cents)
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`<div class="error">সংরক্ষণ ব্যর্থ হয়েছে (could not save)</div>`))
		}
		return
	}

	s.redirect(w, r, "/customers/"+saved.CustomerID)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	// Remember the owner so we can land back on their page.
	tx, ok := s.book.Transaction(id)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if err := s.book.DeleteTransaction(r.Context(), id); err != nil {
		if errors.Is(err, ledger.ErrTransactionNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.ErrorContext(r.Context(), "Delete transaction failed", applog.FieldError, err, applog.FieldTxnID, id)
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`<div class="error">মুছে ফেলা যায়নি (could not delete)</div>`))
		return
	}

	s.redirect(w, r, "/customers/"+tx.CustomerID)
}
