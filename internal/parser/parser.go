// Package parser turns free-form expense text or receipt images into the
// structured record the persistence layer accepts. Three strategies share
// one output shape: a regex fallback, a hosted text model, and a hosted
// vision model. The Router picks the text strategy once at startup.
package parser

import (
	"context"

	"github.com/GregMSThompson/expense-backend/internal/dto"
)

const dateLayout = "2006-01-02"

// TextParser is the strategy interface for the text normalization paths.
type TextParser interface {
	Parse(ctx context.Context, text string) (dto.ParsedExpense, error)
}

// CompletionClient abstracts a hosted chat-completion backend.
type CompletionClient interface {
	Complete(ctx context.Context, req dto.CompletionRequest) (string, error)
}

// VisionClient abstracts a hosted vision-capable model.
type VisionClient interface {
	Vision(ctx context.Context, prompt, format string, data []byte) (string, error)
}
