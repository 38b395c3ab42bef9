package parser

import (
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
)

// ValidateCandidate checks a record before it may reach the persistence
// layer: positive amount, ISO-8601 date, non-empty category and description.
func ValidateCandidate(e dto.ParsedExpense) error {
	if e.Amount <= 0 {
		return errs.NewValidationError("Amount must be greater than 0")
	}
	if _, err := time.Parse(dateLayout, e.Date); err != nil {
		return errs.NewValidationError("Date must be in YYYY-MM-DD format")
	}
	if strings.TrimSpace(e.Category) == "" {
		return errs.NewValidationError("Category must not be empty")
	}
	if strings.TrimSpace(e.Description) == "" {
		return errs.NewValidationError("Description must not be empty")
	}
	return nil
}

// CoerceAmount converts a JSON amount value (number or string) to float64.
func CoerceAmount(value any) (float64, error) {
	return coerceAmount(value)
}
