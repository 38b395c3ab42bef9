package parser

import (
	"errors"
	"testing"

	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/taxonomy"
)

const testToday = "2025-03-10"

func TestDecodeModelResponseStripsCodeFence(t *testing.T) {
	raw := "```json\n{\"amount\": 500, \"category\": \"Food\", \"date\": \"2025-03-01\", \"description\": \"Groceries\"}\n```"

	parsed, err := decodeModelResponse(raw, testToday)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Amount != 500 || parsed.Category != taxonomy.Food {
		t.Fatalf("unexpected result: %+v", parsed)
	}
	if parsed.Date != "2025-03-01" {
		t.Fatalf("date mismatch: %q", parsed.Date)
	}
}

func TestDecodeModelResponseMissingFields(t *testing.T) {
	_, err := decodeModelResponse(`{"amount": 500}`, testToday)

	var missing *errs.MissingFieldError
	if !errors.As(err, &missing) {
		t.Fatalf("expected *errs.MissingFieldError, got %T: %v", err, err)
	}
	if len(missing.Fields) != 3 {
		t.Fatalf("expected 3 missing fields, got %v", missing.Fields)
	}
}

func TestDecodeModelResponseStringAmount(t *testing.T) {
	raw := `{"amount": "42.50", "category": "Food", "date": "2025-03-01", "description": "Lunch"}`

	parsed, err := decodeModelResponse(raw, testToday)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Amount != 42.5 {
		t.Fatalf("amount mismatch: %v", parsed.Amount)
	}
}

func TestDecodeModelResponseBadAmount(t *testing.T) {
	raw := `{"amount": "lots", "category": "Food", "date": "2025-03-01", "description": "Lunch"}`

	_, err := decodeModelResponse(raw, testToday)
	var invalid *errs.InvalidAmountError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *errs.InvalidAmountError, got %T: %v", err, err)
	}
}

func TestDecodeModelResponseNotJSON(t *testing.T) {
	_, err := decodeModelResponse("I could not parse that expense.", testToday)

	var parseErr *errs.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *errs.ParseError, got %T: %v", err, err)
	}
}

func TestDecodeModelResponseCoercesCategory(t *testing.T) {
	raw := `{"amount": 10, "category": "Healthcare", "date": "2025-03-01", "description": "Pills"}`
	parsed, err := decodeModelResponse(raw, testToday)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Category != taxonomy.Health {
		t.Fatalf("alias not folded: %q", parsed.Category)
	}

	raw = `{"amount": 10, "category": "Gadgets", "date": "2025-03-01", "description": "Cable"}`
	parsed, err = decodeModelResponse(raw, testToday)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Category != taxonomy.Other {
		t.Fatalf("unknown category not coerced: %q", parsed.Category)
	}
}

func TestDecodeModelResponseBadDateUsesToday(t *testing.T) {
	raw := `{"amount": 10, "category": "Food", "date": "yesterday", "description": "Snacks"}`

	parsed, err := decodeModelResponse(raw, testToday)
	if err != nil {
		t.Fatalf("decode error: %v", err)
	}
	if parsed.Date != testToday {
		t.Fatalf("expected today for unparseable date, got %q", parsed.Date)
	}
}
