package main

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"
)

// ExpenseInput is the request shape for recording an expense. Price is left
// untyped because clients send it both as a JSON number and as a numeric
// string.
type ExpenseInput struct {
	Category string  `json:"category"`
	Date     string  `json:"date"`
	Price    any     `json:"price"`
	Notes    *string `json:"notes"`
}

// LedgerManager records and lists expense entries. The ledger is shared:
// entries carry no owner, every authenticated identity sees all of them.
type LedgerManager struct {
	store     Store
	publisher EventPublisher
}

func NewLedgerManager(store Store, publisher EventPublisher) *LedgerManager {
	return &LedgerManager{store: store, publisher: publisher}
}

// Record validates the input and persists a new entry with a server-assigned
// creation timestamp. Publishing the recorded event is best-effort and never
// fails the request.
func (m *LedgerManager) Record(ctx context.Context, in ExpenseInput) (Expense, error) {
	if in.Category == "" || in.Date == "" || in.Price == nil {
		return Expense{}, ErrMissingExpenseField
	}

	price, err := parsePrice(in.Price)
	if err != nil {
		return Expense{}, err
	}

	date, err := parseISODate(in.Date)
	if err != nil {
		return Expense{}, err
	}

	expense, err := m.store.CreateExpense(ctx, Expense{
		Category: in.Category,
		Price:    price,
		Notes:    in.Notes,
		Date:     date,
	})
	if err != nil {
		return Expense{}, err
	}

	if err := m.publisher.PublishExpenseRecorded(expense); err != nil {
		log.Printf("Failed to publish expense event: %v", err)
	}

	return expense, nil
}

// List returns all entries, most recently recorded first.
func (m *LedgerManager) List(ctx context.Context) ([]Expense, error) {
	return m.store.ListExpenses(ctx)
}

func parsePrice(v any) (float64, error) {
	switch p := v.(type) {
	case float64:
		return p, nil
	case json.Number:
		f, err := p.Float64()
		if err != nil {
			return 0, ErrPriceNotNumber
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, ErrPriceNotNumber
		}
		return f, nil
	default:
		return 0, ErrPriceNotNumber
	}
}

// Accepted date layouts, most specific first. Clients send anything from a
// bare calendar date to a full RFC 3339 timestamp.
var isoDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseISODate(s string) (time.Time, error) {
	for _, layout := range isoDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrBadDateFormat
}
