package core

import (
	"errors"
	"strings"
	"time"
)

type (
	// Customer is a person who buys on credit. Customers are only created
	// and deleted; there is no rename operation.
	Customer struct {
		ID        string
		Name      string
		CreatedAt time.Time
	}

	// Transaction is a single credit entry attributed to one customer.
	// Price is the flat amount owed for the line; Quantity is descriptive
	// only and never multiplied into totals.
	Transaction struct {
		ID          string
		CustomerID  string
		ProductName string
		Quantity    float64
		Price       Money
		Date        time.Time
		DueDate     string // calendar date "2006-01-02", empty when unset
		Note        string
	}
)

var (
	ErrEmptyName        = errors.New("empty customer name")
	ErrNameTooLong      = errors.New("customer name too long (max 120 characters)")
	ErrEmptyProductName = errors.New("empty product name")
	ErrEmptyCustomerID  = errors.New("missing customer reference")
	ErrZeroDate         = errors.New("transaction date cannot be zero")
	ErrInvalidDueDate   = errors.New("invalid due date")
	ErrInvalidAmount    = errors.New("invalid amount")
)

// DueDateLayout is the calendar-date format used for optional due dates.
const DueDateLayout = "2006-01-02"

func (c Customer) Validate() error {
	name := strings.TrimSpace(c.Name)
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > 120 {
		return ErrNameTooLong
	}
	return nil
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.CustomerID) == "" {
		return ErrEmptyCustomerID
	}
	if strings.TrimSpace(t.ProductName) == "" {
		return ErrEmptyProductName
	}
	if len(t.ProductName) > 200 {
		return errors.New("product name too long (max 200 characters)")
	}
	if t.Date.IsZero() {
		return ErrZeroDate
	}
	if t.DueDate != "" {
		if _, err := time.Parse(DueDateLayout, t.DueDate); err != nil {
			return ErrInvalidDueDate
		}
	}
	return nil
}
