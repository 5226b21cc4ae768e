// Package storage persists the credit book's two collections, customers
// and transactions, as JSON lists under fixed keys in a SQLite-backed
// key-value table.
//
// Loads are fail-soft: an absent key or a value that no longer
// deserializes yields an empty collection and a warning in the log, never
// an error to the caller. Worst case on corrupt storage is starting with
// an empty ledger. Saves serialize the full list and overwrite.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"bakikhata/internal/core"
)

const (
	customersKey    = "customers"
	transactionsKey = "transactions"
)

// Wire shapes. Field names and the decimal taka price match the persisted
// layout; dueDate and note are omitted entirely when unset rather than
// stored as empty strings. Unknown fields are ignored on load so the
// schema can grow without migrations.
type (
	customerRecord struct {
		ID        string `json:"id"`
		Name      string `json:"name"`
		CreatedAt string `json:"createdAt"`
	}

	transactionRecord struct {
		ID          string  `json:"id"`
		CustomerID  string  `json:"customerId"`
		ProductName string  `json:"productName"`
		Quantity    float64 `json:"quantity"`
		Price       float64 `json:"price"`
		Date        string  `json:"date"`
		DueDate     string  `json:"dueDate,omitempty"`
		Note        string  `json:"note,omitempty"`
	}
)

// LoadCustomers implements ledger.CustomerStore.
func (s *KVStore) LoadCustomers(ctx context.Context) ([]core.Customer, error) {
	raw, ok, err := s.get(ctx, customersKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []core.Customer{}, nil
	}

	var records []customerRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "Corrupt customers collection, starting empty", "error", err)
		return []core.Customer{}, nil
	}

	customers := make([]core.Customer, len(records))
	for i, r := range records {
		customers[i] = core.Customer{
			ID:        r.ID,
			Name:      r.Name,
			CreatedAt: parseTimestamp(r.CreatedAt),
		}
	}
	return customers, nil
}

// SaveCustomers implements ledger.CustomerStore.
func (s *KVStore) SaveCustomers(ctx context.Context, customers []core.Customer) error {
	records := make([]customerRecord, len(customers))
	for i, c := range customers {
		records[i] = customerRecord{
			ID:        c.ID,
			Name:      c.Name,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal customers: %w", err)
	}
	return s.put(ctx, customersKey, string(raw))
}

// LoadTransactions implements ledger.TransactionStore.
func (s *KVStore) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	raw, ok, err := s.get(ctx, transactionsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []core.Transaction{}, nil
	}

	var records []transactionRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		slog.WarnContext(ctx, "Corrupt transactions collection, starting empty", "error", err)
		return []core.Transaction{}, nil
	}

	txs := make([]core.Transaction, len(records))
	for i, r := range records {
		txs[i] = core.Transaction{
			ID:          r.ID,
			CustomerID:  r.CustomerID,
			ProductName: r.ProductName,
			Quantity:    r.Quantity,
			Price:       core.MoneyFromTaka(r.Price),
			Date:        parseTimestamp(r.Date),
			DueDate:     r.DueDate,
			Note:        r.Note,
		}
	}
	return txs, nil
}

// SaveTransactions implements ledger.TransactionStore.
func (s *KVStore) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	records := make([]transactionRecord, len(txs))
	for i, t := range txs {
		records[i] = transactionRecord{
			ID:          t.ID,
			CustomerID:  t.CustomerID,
			ProductName: t.ProductName,
			Quantity:    t.Quantity,
			Price:       t.Price.Taka(),
			Date:        t.Date.Format(time.RFC3339),
			DueDate:     t.DueDate,
			Note:        t.Note,
		}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshal transactions: %w", err)
	}
	return s.put(ctx, transactionsKey, string(raw))
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
