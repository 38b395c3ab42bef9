package parser

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/taxonomy"
)

var requiredFields = []string{"amount", "category", "date", "description"}

// decodeModelResponse turns a raw model completion into a ParsedExpense.
// All model paths share it so they fail in exactly one shape: code fences
// are stripped, the four fields must be present, the amount must coerce to
// a number, unknown categories become Other, and an unparseable date is
// replaced with today rather than failing the whole parse.
func decodeModelResponse(raw, today string) (dto.ParsedExpense, error) {
	cleaned := stripCodeFence(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return dto.ParsedExpense{}, errs.NewParseError("model response is not valid JSON: " + err.Error())
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := obj[field]; !ok {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		return dto.ParsedExpense{}, errs.NewMissingFieldError(missing)
	}

	amount, err := coerceAmount(obj["amount"])
	if err != nil {
		return dto.ParsedExpense{}, errs.NewInvalidAmountError(obj["amount"])
	}

	category, _ := obj["category"].(string)
	date, _ := obj["date"].(string)
	if _, err := time.Parse(dateLayout, date); err != nil {
		date = today
	}

	description, _ := obj["description"].(string)

	return dto.ParsedExpense{
		Amount:      amount,
		Category:    taxonomy.Coerce(category),
		Date:        date,
		Description: strings.TrimSpace(description),
	}, nil
}

func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func coerceAmount(value any) (float64, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case json.Number:
		return v.Float64()
	case string:
		return strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return 0, fmt.Errorf("amount is %T, not a number", value)
	}
}
