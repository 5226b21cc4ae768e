package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"bakikhata/internal/core"
	applog "bakikhata/internal/log"
)

var logger = applog.New(applog.Config{Component: applog.ComponentLedger})

var (
	ErrCustomerNotFound    = errors.New("customer not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Stats is the dashboard header summary.
type Stats struct {
	TotalDue       core.Money
	CustomerCount  int
	TransactionCnt int
}

// Book owns the in-memory collections and mediates every mutation.
// Changes apply in memory first and are written through to the store for
// the affected collection; a failed write rolls the in-memory change back
// so the caller never observes half-applied state.
type Book struct {
	mu           sync.Mutex
	store        Store
	customers    []core.Customer
	transactions []core.Transaction
}

// Open loads both collections once from the store. Load failures surface
// here only if the store itself breaks its fail-soft contract.
func Open(ctx context.Context, store Store) (*Book, error) {
	customers, err := store.LoadCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	txs, err := store.LoadTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	logger.InfoContext(ctx, "Credit book loaded",
		"customers", len(customers),
		"transactions", len(txs))

	return &Book{
		store:        store,
		customers:    customers,
		transactions: txs,
	}, nil
}

// AddCustomer trims and validates the name, assigns a fresh id and
// creation timestamp, appends and persists.
func (b *Book) AddCustomer(ctx context.Context, name string) (core.Customer, error) {
	c := core.Customer{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}
	if err := c.Validate(); err != nil {
		return core.Customer{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	prev := b.customers
	b.customers = append(append([]core.Customer(nil), b.customers...), c)
	if err := b.store.SaveCustomers(ctx, b.customers); err != nil {
		b.customers = prev
		return core.Customer{}, fmt.Errorf("save customers: %w", err)
	}

	logger.InfoContext(ctx, "Customer added", "id", c.ID, "name", c.Name)
	return c, nil
}

// DeleteCustomer removes the customer and cascades to every transaction
// that references it. Transactions are persisted first so a crash between
// the two writes cannot leave a transaction pointing at a missing
// customer.
func (b *Book) DeleteCustomer(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i, c := range b.customers {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrCustomerNotFound
	}

	prevCustomers, prevTxs := b.customers, b.transactions

	kept := make([]core.Transaction, 0, len(b.transactions))
	removed := 0
	for _, t := range b.transactions {
		if t.CustomerID == id {
			removed++
			continue
		}
		kept = append(kept, t)
	}
	b.transactions = kept

	customers := make([]core.Customer, 0, len(b.customers)-1)
	customers = append(customers, b.customers[:idx]...)
	customers = append(customers, b.customers[idx+1:]...)
	b.customers = customers

	if err := b.store.SaveTransactions(ctx, b.transactions); err != nil {
		b.customers, b.transactions = prevCustomers, prevTxs
		return fmt.Errorf("save transactions: %w", err)
	}
	if err := b.store.SaveCustomers(ctx, b.customers); err != nil {
		b.customers, b.transactions = prevCustomers, prevTxs
		// Best effort to keep the store consistent with memory again.
		if rerr := b.store.SaveTransactions(ctx, b.transactions); rerr != nil {
			logger.ErrorContext(ctx, "Rollback write failed", "error", rerr)
		}
		return fmt.Errorf("save customers: %w", err)
	}

	logger.InfoContext(ctx, "Customer deleted", "id", id, "cascaded_transactions", removed)
	return nil
}

// SaveTransaction handles both add and edit. An empty ID means add: a
// fresh id is assigned and the record appended. A known ID means edit:
// fields are overwritten in place with ID and CustomerID preserved.
func (b *Book) SaveTransaction(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	editing := tx.ID != ""
	if editing {
		existing, ok := b.findTransaction(tx.ID)
		if !ok {
			return core.Transaction{}, ErrTransactionNotFound
		}
		// Identity and ownership never change on edit.
		tx.CustomerID = existing.CustomerID
	} else {
		tx.ID = uuid.NewString()
	}

	if !b.customerExists(tx.CustomerID) {
		return core.Transaction{}, ErrCustomerNotFound
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	prev := b.transactions
	next := append([]core.Transaction(nil), b.transactions...)
	if editing {
		for i := range next {
			if next[i].ID == tx.ID {
				next[i] = tx
				break
			}
		}
	} else {
		next = append(next, tx)
	}
	b.transactions = next

	if err := b.store.SaveTransactions(ctx, b.transactions); err != nil {
		b.transactions = prev
		return core.Transaction{}, fmt.Errorf("save transactions: %w", err)
	}

	logger.InfoContext(ctx, "Transaction saved",
		"id", tx.ID,
		"customer_id", tx.CustomerID,
		"product", tx.ProductName,
		"price_cents", tx.Price.Cents,
		"edit", editing)
	return tx, nil
}

// DeleteTransaction removes a single record by id and persists.
func (b *Book) DeleteTransaction(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx := -1
	for i, t := range b.transactions {
		if t.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrTransactionNotFound
	}

	prev := b.transactions
	next := make([]core.Transaction, 0, len(b.transactions)-1)
	next = append(next, b.transactions[:idx]...)
	next = append(next, b.transactions[idx+1:]...)
	b.transactions = next

	if err := b.store.SaveTransactions(ctx, b.transactions); err != nil {
		b.transactions = prev
		return fmt.Errorf("save transactions: %w", err)
	}

	logger.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// Customers returns a snapshot of the customer list in insertion order.
func (b *Book) Customers() []core.Customer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.Customer(nil), b.customers...)
}

// Transactions returns a snapshot of all transactions.
func (b *Book) Transactions() []core.Transaction {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]core.Transaction(nil), b.transactions...)
}

// Customer looks up a single customer by id.
func (b *Book) Customer(id string) (core.Customer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.customers {
		if c.ID == id {
			return c, true
		}
	}
	return core.Customer{}, false
}

// Transaction looks up a single transaction by id.
func (b *Book) Transaction(id string) (core.Transaction, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, ok := b.findTransaction(id)
	return t, ok
}

// Stats recomputes the dashboard aggregates. Always derived, never cached.
func (b *Book) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Stats{
		TotalDue:       core.OverallTotalDue(b.transactions),
		CustomerCount:  len(b.customers),
		TransactionCnt: len(b.transactions),
	}
}

func (b *Book) findTransaction(id string) (core.Transaction, bool) {
	for _, t := range b.transactions {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

func (b *Book) customerExists(id string) bool {
	for _, c := range b.customers {
		if c.ID == id {
			return true
		}
	}
	return false
}
