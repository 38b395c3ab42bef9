package services

import (
	"context"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
	"github.com/GregMSThompson/expense-backend/internal/parser"
	"github.com/GregMSThompson/expense-backend/internal/taxonomy"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

// Hosted model calls get a bounded deadline; the upstream libraries ship
// without one.
const aiCallTimeout = 60 * time.Second

type textRouter interface {
	Parse(ctx context.Context, text string) (dto.ParsedExpense, error)
}

type receiptScanner interface {
	Scan(ctx context.Context, imageDataURL string) (dto.ParsedExpense, error)
}

type expenseStore interface {
	Insert(ctx context.Context, expense models.Expense) (models.Expense, error)
	ListByUser(ctx context.Context, uid string) ([]models.Expense, error)
	Delete(ctx context.Context, uid, id string) error
	AttachReceipt(ctx context.Context, uid, expenseID, fileURL string) (models.Receipt, error)
}

type expenseService struct {
	router  textRouter
	scanner receiptScanner
	store   expenseStore
}

func NewExpenseService(router textRouter, scanner receiptScanner, store expenseStore) *expenseService {
	return &expenseService{
		router:  router,
		scanner: scanner,
		store:   store,
	}
}

// AddFromText runs free-form text through the parser chain, validates the
// result, and persists it with the raw source text attached.
func (s *expenseService) AddFromText(ctx context.Context, uid, text string) (models.Expense, error) {
	log := logger.FromContext(ctx)

	parseCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	parsed, err := s.router.Parse(parseCtx, text)
	if err != nil {
		return models.Expense{}, err
	}
	if err := parser.ValidateCandidate(parsed); err != nil {
		return models.Expense{}, err
	}

	stored, err := s.store.Insert(ctx, models.Expense{
		UserID:      uid,
		Date:        parsed.Date,
		Amount:      parsed.Amount,
		Category:    parsed.Category,
		Description: parsed.Description,
		RawText:     text,
	})
	if err != nil {
		return models.Expense{}, err
	}

	log.Info("expense added from text", "expense_id", stored.ID, "category", stored.Category)
	return stored, nil
}

// AddDirect persists a structured payload after validation; no parser runs.
func (s *expenseService) AddDirect(ctx context.Context, uid string, req dto.AddExpenseRequest) (models.Expense, error) {
	amount, err := parser.CoerceAmount(req.Amount)
	if err != nil {
		return models.Expense{}, errs.NewValidationError("Invalid amount")
	}

	candidate := dto.ParsedExpense{
		Amount:      amount,
		Category:    taxonomy.Normalize(req.Category),
		Date:        req.Date,
		Description: strings.TrimSpace(req.Description),
	}
	if err := parser.ValidateCandidate(candidate); err != nil {
		return models.Expense{}, err
	}

	stored, err := s.store.Insert(ctx, models.Expense{
		UserID:      uid,
		Date:        candidate.Date,
		Amount:      candidate.Amount,
		Category:    candidate.Category,
		Description: candidate.Description,
	})
	if err != nil {
		return models.Expense{}, err
	}

	logger.FromContext(ctx).Info("expense added", "expense_id", stored.ID, "category", stored.Category)
	return stored, nil
}

func (s *expenseService) List(ctx context.Context, uid string) ([]models.Expense, error) {
	return s.store.ListByUser(ctx, uid)
}

// ScanReceipt extracts a record from the receipt image. With Save set it
// also inserts the expense and attaches a receipt reference to it.
func (s *expenseService) ScanReceipt(ctx context.Context, req dto.ScanReceiptRequest) (dto.ScanReceiptResult, error) {
	scanCtx, cancel := context.WithTimeout(ctx, aiCallTimeout)
	defer cancel()

	parsed, err := s.scanner.Scan(scanCtx, req.Image)
	if err != nil {
		return dto.ScanReceiptResult{}, err
	}

	result := dto.ScanReceiptResult{Parsed: parsed}
	if !req.Save {
		return result, nil
	}

	if req.UserID == "" {
		return dto.ScanReceiptResult{}, errs.NewValidationError("user_id is required to save a scanned expense")
	}
	if err := parser.ValidateCandidate(parsed); err != nil {
		return dto.ScanReceiptResult{}, err
	}

	stored, err := s.store.Insert(ctx, models.Expense{
		UserID:      req.UserID,
		Date:        parsed.Date,
		Amount:      parsed.Amount,
		Category:    parsed.Category,
		Description: parsed.Description,
	})
	if err != nil {
		return dto.ScanReceiptResult{}, err
	}
	result.Expense = &stored

	receipt, err := s.store.AttachReceipt(ctx, req.UserID, stored.ID, req.FileURL)
	if err != nil {
		return dto.ScanReceiptResult{}, err
	}
	result.Receipt = &receipt

	logger.FromContext(ctx).Info("receipt scanned and saved",
		"expense_id", stored.ID,
		"receipt_id", receipt.ID)
	return result, nil
}

func (s *expenseService) Delete(ctx context.Context, uid, id string) error {
	if err := s.store.Delete(ctx, uid, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info("expense deleted", "expense_id", id)
	return nil
}
