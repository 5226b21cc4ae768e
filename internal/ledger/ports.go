package ledger

import (
	"context"

	"bakikhata/internal/core"
)

// Ports for outbound persistence adapters.
type (
	// CustomerStore persists the customer collection as a whole. Load is
	// fail-soft: a missing or unreadable collection comes back empty, never
	// as an error the caller has to recover from. Save fully overwrites.
	CustomerStore interface {
		LoadCustomers(ctx context.Context) ([]core.Customer, error)
		SaveCustomers(ctx context.Context, customers []core.Customer) error
	}

	// TransactionStore persists the transaction collection as a whole, with
	// the same load/save semantics as CustomerStore.
	TransactionStore interface {
		LoadTransactions(ctx context.Context) ([]core.Transaction, error)
		SaveTransactions(ctx context.Context, txs []core.Transaction) error
	}

	// Store is the full persistence adapter. The two collections are
	// independent records in the backing store; there is no transactional
	// guarantee across them.
	Store interface {
		CustomerStore
		TransactionStore
	}
)
