package handlers

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/response"
)

type ExpenseService interface {
	AddFromText(ctx context.Context, uid, text string) (models.Expense, error)
	AddDirect(ctx context.Context, uid string, req dto.AddExpenseRequest) (models.Expense, error)
	List(ctx context.Context, uid string) ([]models.Expense, error)
	ScanReceipt(ctx context.Context, req dto.ScanReceiptRequest) (dto.ScanReceiptResult, error)
	Delete(ctx context.Context, uid, id string) error
}

// DatabaseStatus is what the health endpoint needs to know about the
// datastore handle.
type DatabaseStatus interface {
	Ready() bool
}

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ExpenseSvc      ExpenseService
	DB              DatabaseStatus
	Firebase        *auth.Client
	AuthRequired    bool
}
