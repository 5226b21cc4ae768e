package core

import (
	"sort"
	"strings"
)

// TotalDue sums the price of every transaction belonging to the customer.
// A customer with no transactions owes zero.
func TotalDue(txs []Transaction, customerID string) Money {
	var total Money
	for _, t := range txs {
		if t.CustomerID == customerID {
			total = total.Add(t.Price)
		}
	}
	return total
}

// OverallTotalDue sums the price of every transaction in the book.
func OverallTotalDue(txs []Transaction) Money {
	var total Money
	for _, t := range txs {
		total = total.Add(t.Price)
	}
	return total
}

// DueByCustomer builds the customer-id to total-due map in one pass, so a
// list render does not rescan the transaction list once per customer.
func DueByCustomer(txs []Transaction) map[string]Money {
	due := make(map[string]Money)
	for _, t := range txs {
		due[t.CustomerID] = due[t.CustomerID].Add(t.Price)
	}
	return due
}

// SortedCustomers filters customers whose name contains query as a
// case-insensitive substring, then orders them by amount due descending.
// Ties keep the filtered order.
func SortedCustomers(customers []Customer, due map[string]Money, query string) []Customer {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Customer, 0, len(customers))
	for _, c := range customers {
		if query == "" || strings.Contains(strings.ToLower(c.Name), query) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return due[out[i].ID].Cents > due[out[j].ID].Cents
	})
	return out
}

// SortedTransactions returns the customer's transactions most recent first.
func SortedTransactions(txs []Transaction, customerID string) []Transaction {
	out := make([]Transaction, 0)
	for _, t := range txs {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
