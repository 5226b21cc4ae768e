package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"bakikhata/internal/core"
	"bakikhata/internal/ledger"
	"bakikhata/internal/storage/memory"
)

func newTestServer(t *testing.T) (*Server, *ledger.Book) {
	t.Helper()
	store := memory.New()
	book, err := ledger.Open(context.Background(), store)
	if err != nil {
		t.Fatalf("open book: %v", err)
	}
	return NewServer(":0", book, store), book
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func postForm(t *testing.T, srv *Server, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func TestIndexAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := get(t, srv, "/")
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "বাকি খাতা") {
		t.Fatalf("index body missing heading")
	}

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := get(t, srv, path)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestCreateCustomerValidationAndRedirect(t *testing.T) {
	srv, book := newTestServer(t)

	// Blank name is refused, nothing mutated
	rr := postForm(t, srv, "/customers", url.Values{"name": {"   "}})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if len(book.Customers()) != 0 {
		t.Fatalf("customer list should be empty")
	}

	// Name is trimmed and the client is sent to the new customer
	rr = postForm(t, srv, "/customers", url.Values{"name": {"  Rahim  "}})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	loc := rr.Header().Get("HX-Redirect")
	if !strings.HasPrefix(loc, "/customers/") {
		t.Fatalf("expected HX-Redirect to customer page, got %q", loc)
	}

	customers := book.Customers()
	if len(customers) != 1 || customers[0].Name != "Rahim" {
		t.Fatalf("unexpected customers: %+v", customers)
	}

	detail := get(t, srv, loc)
	if detail.Code != 200 || !strings.Contains(detail.Body.String(), "Rahim") {
		t.Fatalf("detail page status=%d", detail.Code)
	}
}

func TestCreateCustomerWithoutHTMXRedirects(t *testing.T) {
	srv, _ := newTestServer(t)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/customers", strings.NewReader("name=Karim"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler.ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rr.Code)
	}
	if loc := rr.Header().Get("Location"); !strings.HasPrefix(loc, "/customers/") {
		t.Fatalf("unexpected location %q", loc)
	}
}

func TestCustomerDetailNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	if rr := get(t, srv, "/customers/ghost"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestSaveTransactionValidationAndSuccess(t *testing.T) {
	srv, book := newTestServer(t)
	c, err := book.AddCustomer(context.Background(), "Karim")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}

	// Missing product name performs no mutation
	rr := postForm(t, srv, "/customers/"+c.ID+"/transactions", url.Values{
		"product_name": {""},
		"price":        {"120"},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	if len(book.Transactions()) != 0 {
		t.Fatalf("transaction list should be empty")
	}

	// Missing price likewise
	rr = postForm(t, srv, "/customers/"+c.ID+"/transactions", url.Values{
		"product_name": {"Rice"},
		"price":        {""},
	})
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success with explicit date/time and due date
	rr = postForm(t, srv, "/customers/"+c.ID+"/transactions", url.Values{
		"product_name": {"Rice"},
		"quantity":     {"2.5"},
		"price":        {"120.50"},
		"date":         {"2026-09-01"},
		"time":         {"14:30"},
		"due_date":     {"2026-09-15"},
		"note":         {"next week"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	txs := book.Transactions()
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	tx := txs[0]
	if tx.Price.Cents != 12050 || tx.Quantity != 2.5 || tx.DueDate != "2026-09-15" {
		t.Fatalf("unexpected transaction: %+v", tx)
	}
	if tx.Date.Hour() != 14 || tx.Date.Minute() != 30 {
		t.Fatalf("date/time not combined: %v", tx.Date)
	}

	// Unknown customer
	rr = postForm(t, srv, "/customers/ghost/transactions", url.Values{
		"product_name": {"Rice"}, "price": {"1"},
	})
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestEditTransactionPreservesIdentity(t *testing.T) {
	srv, book := newTestServer(t)
	c, err := book.AddCustomer(context.Background(), "Karim")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	tx, err := book.SaveTransaction(context.Background(), core.Transaction{
		CustomerID: c.ID, ProductName: "Rice", Price: core.Money{Cents: 100}, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	rr := postForm(t, srv, "/customers/"+c.ID+"/transactions", url.Values{
		"transaction_id": {tx.ID},
		"product_name":   {"Lentils"},
		"price":          {"90"},
		"date":           {"2026-09-01"},
		"time":           {"10:00"},
	})
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	txs := book.Transactions()
	if len(txs) != 1 {
		t.Fatalf("edit must not add a record, got %d", len(txs))
	}
	if txs[0].ID != tx.ID || txs[0].CustomerID != c.ID {
		t.Fatalf("identity changed on edit: %+v", txs[0])
	}
	if txs[0].ProductName != "Lentils" || txs[0].Price.Cents != 9000 {
		t.Fatalf("fields not updated: %+v", txs[0])
	}
}

func TestDeleteCustomerCascades(t *testing.T) {
	srv, book := newTestServer(t)
	c, err := book.AddCustomer(context.Background(), "Karim")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	tx, err := book.SaveTransaction(context.Background(), core.Transaction{
		CustomerID: c.ID, ProductName: "Rice", Price: core.Money{Cents: 100}, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	rr := postForm(t, srv, "/customers/"+c.ID+"/delete", nil)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("HX-Redirect") != "/" {
		t.Fatalf("expected redirect to dashboard")
	}

	if len(book.Customers()) != 0 || len(book.Transactions()) != 0 {
		t.Fatalf("cascade delete incomplete")
	}

	// Both ids are gone now
	if rr := postForm(t, srv, "/customers/"+c.ID+"/delete", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
	if rr := postForm(t, srv, "/transactions/"+tx.ID+"/delete", nil); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestDeleteTransaction(t *testing.T) {
	srv, book := newTestServer(t)
	c, err := book.AddCustomer(context.Background(), "Karim")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	tx, err := book.SaveTransaction(context.Background(), core.Transaction{
		CustomerID: c.ID, ProductName: "Rice", Price: core.Money{Cents: 100}, Date: time.Now(),
	})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}

	rr := postForm(t, srv, "/transactions/"+tx.ID+"/delete", nil)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if rr.Header().Get("HX-Redirect") != "/customers/"+c.ID {
		t.Fatalf("expected redirect back to customer, got %q", rr.Header().Get("HX-Redirect"))
	}
	if len(book.Transactions()) != 0 {
		t.Fatalf("transaction not deleted")
	}
}

func TestCustomerListSortedByDueDescending(t *testing.T) {
	srv, book := newTestServer(t)
	small, err := book.AddCustomer(context.Background(), "Small Debtor")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	big, err := book.AddCustomer(context.Background(), "Big Debtor")
	if err != nil {
		t.Fatalf("add customer: %v", err)
	}
	for _, seed := range []struct {
		owner string
		cents int64
	}{{small.ID, 5000}, {big.ID, 12000}} {
		_, err := book.SaveTransaction(context.Background(), core.Transaction{
			CustomerID: seed.owner, ProductName: "Item", Price: core.Money{Cents: seed.cents}, Date: time.Now(),
		})
		if err != nil {
			t.Fatalf("seed transaction: %v", err)
		}
	}

	rr := get(t, srv, "/ui/customers")
	if rr.Code != 200 {
		t.Fatalf("partial status=%d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Index(body, "Big Debtor") > strings.Index(body, "Small Debtor") {
		t.Fatalf("customer with larger due should come first:\n%s", body)
	}

	// Search narrows the list, case-insensitively
	rr = get(t, srv, "/ui/customers?q=big")
	body = rr.Body.String()
	if !strings.Contains(body, "Big Debtor") || strings.Contains(body, "Small Debtor") {
		t.Fatalf("search filter wrong:\n%s", body)
	}
}

func TestMutationsRequirePOST(t *testing.T) {
	srv, _ := newTestServer(t)
	rr := get(t, srv, "/customers/some-id/delete")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}
}
