package dto

import (
	"github.com/GregMSThompson/expense-backend/internal/models"
)

// AddExpenseRequest covers both ingest shapes of POST /expenses/add. When
// Text is set the request routes through the parser chain; otherwise the
// remaining fields are validated directly. Amount is `any` because clients
// send it as either a JSON number or a string.
type AddExpenseRequest struct {
	UserID      string `json:"user_id"`
	Text        string `json:"text,omitempty"`
	Amount      any    `json:"amount,omitempty"`
	Category    string `json:"category,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
}

// ParsedExpense is the single result shape shared by all three parser
// variants (regex, text model, vision model).
type ParsedExpense struct {
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Date        string  `json:"date"` // YYYY-MM-DD
	Description string  `json:"description"`
}

type ScanReceiptRequest struct {
	Image   string `json:"image"` // base64, optionally a data URL
	UserID  string `json:"user_id,omitempty"`
	Save    bool   `json:"save,omitempty"`
	FileURL string `json:"file_url,omitempty"` // where the client stored the image, kept on the receipt reference
}

type ScanReceiptResult struct {
	Parsed  ParsedExpense   `json:"parsed"`
	Expense *models.Expense `json:"expense,omitempty"`
	Receipt *models.Receipt `json:"receipt,omitempty"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}
