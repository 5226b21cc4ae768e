package http

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"time"

	"bakikhata/internal/core"
)

// formatTaka formats paisa as a taka currency string (e.g., "৳120.50").
func formatTaka(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	taka := cents / 100
	rem := cents % 100
	s := strconv.FormatInt(taka, 10) + "." + fmt.Sprintf("%02d", rem)
	if neg {
		return "-৳" + s
	}
	return "৳" + s
}

// formatQuantity drops the fraction when the quantity is whole.
func formatQuantity(q float64) string {
	return strconv.FormatFloat(q, 'f', -1, 64)
}

// combineDateTime merges the separately edited date and time-of-day fields
// into one timestamp. Blank fields fall back to the current date or time.
func combineDateTime(dateStr, timeStr string) (time.Time, error) {
	now := time.Now()
	if strings.TrimSpace(dateStr) == "" {
		dateStr = now.Format("2006-01-02")
	}
	if strings.TrimSpace(timeStr) == "" {
		timeStr = now.Format("15:04")
	}
	return time.ParseInLocation("2006-01-02 15:04", dateStr+" "+timeStr, time.Local)
}

// sanitizeInput removes potentially dangerous characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
	return result
}

// generateRequestID creates a unique request ID for tracing.
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

// shortID renders the tail of an opaque id for display.
func shortID(id string) string {
	if len(id) <= 4 {
		return id
	}
	return id[len(id)-4:]
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"taka": func(m core.Money) string { return formatTaka(m.Cents) },
		"qty":  formatQuantity,
		"day":  func(t time.Time) string { return t.Format("02 Jan 2006") },
		"clock": func(t time.Time) string {
			return t.Format("03:04 PM")
		},
		"dueday": func(s string) string {
			t, err := time.Parse(core.DueDateLayout, s)
			if err != nil {
				return s
			}
			return t.Format("02 Jan 2006")
		},
		"shortid": shortID,
	}
}
