package parser

import (
	"context"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
)

const (
	completionTemperature = 0.2
	completionMaxTokens   = 150
)

// ModelParser runs the text prompt against a hosted completion backend.
// The same parser serves both providers; only the injected client differs.
type ModelParser struct {
	client   CompletionClient
	clockNow func() time.Time
}

func NewModelParser(client CompletionClient) *ModelParser {
	return &ModelParser{
		client:   client,
		clockNow: time.Now,
	}
}

func (p *ModelParser) Parse(ctx context.Context, text string) (dto.ParsedExpense, error) {
	today := p.clockNow().Format(dateLayout)

	raw, err := p.client.Complete(ctx, dto.CompletionRequest{
		System:      textSystemPromptV1,
		Prompt:      textPrompt(text, today),
		Temperature: completionTemperature,
		MaxTokens:   completionMaxTokens,
	})
	if err != nil {
		return dto.ParsedExpense{}, err
	}

	return decodeModelResponse(raw, today)
}
