package models

import (
	"time"
)

type Expense struct {
	ID          string    `firestore:"id" json:"id"`
	UserID      string    `firestore:"userId" json:"user_id"`
	Date        string    `firestore:"date" json:"date"` // YYYY-MM-DD
	Amount      float64   `firestore:"amount" json:"amount"`
	Category    string    `firestore:"category" json:"category"`
	Description string    `firestore:"description" json:"description"`
	RawText     string    `firestore:"rawText,omitempty" json:"raw_text,omitempty"` // set only on the text-parsing path
	CreatedAt   time.Time `firestore:"createdAt" json:"created_at"`
}

// Receipt is a reference attached to the expense it was scanned for. It is
// created only after a successful vision parse and expense insert, never
// updated, and removed by cascading deletion of the owning expense.
type Receipt struct {
	ID        string    `firestore:"id" json:"id"`
	ExpenseID string    `firestore:"expenseId" json:"expense_id"`
	FileURL   string    `firestore:"fileUrl" json:"file_url"`
	CreatedAt time.Time `firestore:"createdAt" json:"created_at"`
}
