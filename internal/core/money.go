// Package core holds the credit-book domain model and its pure
// aggregation rules.
//
// This file contains money parsing and conversion. Amounts are kept as
// integer paisa (hundredths of a taka) to avoid floating-point drift in
// totals; they only become floats at the serialization and display
// boundaries.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount of taka stored as paisa.
type Money struct {
	Cents int64
}

// ParseAmount converts a decimal string to Money with half-up rounding on
// the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) separators and, unlike a
// strict payment amount, allows a leading minus: a negative line item is a
// payment against the balance. Zero is valid.
//
// Examples:
//
//	ParseAmount("120")     -> 12000 paisa
//	ParseAmount("12,34")   -> 1234 paisa
//	ParseAmount("-50")     -> -5000 paisa
//	ParseAmount("12.346")  -> 1235 paisa (rounds up)
func ParseAmount(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Money{}, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")

	neg := false
	switch {
	case strings.HasPrefix(s, "-"):
		neg = true
		s = s[1:]
	case strings.HasPrefix(s, "+"):
		s = s[1:]
	}

	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return Money{}, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	if intPart == "0" && fracPart == "" && len(parts) == 2 {
		return Money{}, ErrInvalidAmount
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return Money{}, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return Money{}, ErrInvalidAmount
	}
	// Prevent overflow when scaling to paisa
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return Money{}, ErrInvalidAmount
	}

	// First two fractional digits, half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if neg {
		cents = -cents
	}
	return Money{Cents: cents}, nil
}

// ParseAmountOrZero is the lenient form used for free-typed form fields:
// anything unparsable becomes zero rather than an error.
func ParseAmountOrZero(s string) Money {
	m, err := ParseAmount(s)
	if err != nil {
		return Money{}
	}
	return m
}

// ParseQuantity parses a possibly fractional quantity, defaulting to zero
// on garbage. Quantity is descriptive only.
func ParseQuantity(s string) float64 {
	q, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return q
}

// Add returns the sum of two amounts.
func (m Money) Add(o Money) Money {
	return Money{Cents: m.Cents + o.Cents}
}

// Taka returns the taka value as a float64 for serialization and display.
// Use paisa for arithmetic.
func (m Money) Taka() float64 {
	return float64(m.Cents) / 100.0
}

// MoneyFromTaka converts a float taka amount (the persisted wire shape)
// back to paisa with half-up rounding.
func MoneyFromTaka(v float64) Money {
	if v < 0 {
		return Money{Cents: -int64(-v*100 + 0.5)}
	}
	return Money{Cents: int64(v*100 + 0.5)}
}
