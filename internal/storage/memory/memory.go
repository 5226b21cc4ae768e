// Package memory provides an in-process store with the same collection
// load/save contract as the SQLite key-value store. It is the zero-setup
// default backend and the test double for everything above the port.
package memory

import (
	"context"
	"sync"

	"bakikhata/internal/core"
)

type Store struct {
	mu           sync.Mutex
	customers    []core.Customer
	transactions []core.Transaction
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadCustomers(_ context.Context) ([]core.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Customer(nil), s.customers...), nil
}

func (s *Store) SaveCustomers(_ context.Context, customers []core.Customer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers = append([]core.Customer(nil), customers...)
	return nil
}

func (s *Store) LoadTransactions(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.transactions...), nil
}

func (s *Store) SaveTransactions(_ context.Context, txs []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transactions = append([]core.Transaction(nil), txs...)
	return nil
}
