package store

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/models"
)

type expenseStore struct {
	conn *Conn
}

func NewExpenseStore(conn *Conn) *expenseStore {
	return &expenseStore{conn: conn}
}

func (s *expenseStore) expenses(client *firestore.Client, uid string) *firestore.CollectionRef {
	return client.Collection("users").Doc(uid).Collection("expenses")
}

func (s *expenseStore) Insert(ctx context.Context, expense models.Expense) (models.Expense, error) {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return models.Expense{}, err
	}

	expense.ID = uuid.NewString()
	expense.CreatedAt = time.Now()

	if _, err := s.expenses(client, expense.UserID).Doc(expense.ID).Set(ctx, expense); err != nil {
		return models.Expense{}, classify("insert expense", err)
	}
	return expense, nil
}

// ListByUser returns the user's expenses ordered by date descending. A user
// with no expenses gets an empty slice, not an error.
func (s *expenseStore) ListByUser(ctx context.Context, uid string) ([]models.Expense, error) {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return nil, err
	}

	iter := s.expenses(client, uid).OrderBy("date", firestore.Desc).Documents(ctx)
	defer iter.Stop()

	expenses := make([]models.Expense, 0)
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, classify("list expenses", err)
		}

		var expense models.Expense
		if err := snap.DataTo(&expense); err != nil {
			return nil, errs.NewDatabaseError("list expenses", err.Error())
		}
		expenses = append(expenses, expense)
	}
	return expenses, nil
}

// Delete removes an expense and cascades to its receipt references.
func (s *expenseStore) Delete(ctx context.Context, uid, id string) error {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return err
	}

	doc := s.expenses(client, uid).Doc(id)
	if _, err := doc.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return errs.NewNotFoundError("expense not found")
		}
		return classify("delete expense", err)
	}

	// receipts first, then the owning expense
	iter := doc.Collection("receipts").Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return classify("delete receipts", err)
		}
		if _, err := snap.Ref.Delete(ctx); err != nil {
			return classify("delete receipts", err)
		}
	}

	if _, err := doc.Delete(ctx); err != nil {
		return classify("delete expense", err)
	}
	return nil
}

func (s *expenseStore) AttachReceipt(ctx context.Context, uid, expenseID, fileURL string) (models.Receipt, error) {
	client, err := s.conn.Client(ctx)
	if err != nil {
		return models.Receipt{}, err
	}

	receipt := models.Receipt{
		ID:        uuid.NewString(),
		ExpenseID: expenseID,
		FileURL:   fileURL,
		CreatedAt: time.Now(),
	}

	ref := s.expenses(client, uid).Doc(expenseID).Collection("receipts").Doc(receipt.ID)
	if _, err := ref.Set(ctx, receipt); err != nil {
		return models.Receipt{}, classify("attach receipt", err)
	}
	return receipt, nil
}

// classify maps gRPC status codes at the datastore boundary to the error
// taxonomy. Transport-level failures are transient; everything else is a
// database error.
func classify(operation string, err error) error {
	switch status.Code(err) {
	case codes.Unavailable, codes.DeadlineExceeded:
		return errs.NewExternalServiceError("firestore", true, err.Error())
	default:
		return errs.NewDatabaseError(operation, err.Error())
	}
}
