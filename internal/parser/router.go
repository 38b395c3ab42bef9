package parser

import (
	"context"
	"errors"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/pkg/logger"
)

const (
	ModeMock   = "mock"
	ModeGemini = "gemini"
	ModeOpenAI = "openai"
)

// Router owns the fallback chain. The strategy is fixed when the router is
// built, not re-evaluated per request:
//
//	mock   — regex parser only
//	gemini — model parser; any failure falls back to regex
//	openai — model parser; only quota exhaustion falls back to regex
type Router struct {
	primary     TextParser
	fallback    TextParser
	fallbackAll bool
}

func NewRouter(mode string, gemini, openai CompletionClient) *Router {
	regex := NewRegexParser()

	switch mode {
	case ModeMock:
		return &Router{primary: regex}
	case ModeOpenAI:
		return &Router{primary: NewModelParser(openai), fallback: regex}
	default:
		return &Router{primary: NewModelParser(gemini), fallback: regex, fallbackAll: true}
	}
}

func (r *Router) Parse(ctx context.Context, text string) (dto.ParsedExpense, error) {
	parsed, err := r.primary.Parse(ctx, text)
	if err == nil || r.fallback == nil {
		return parsed, err
	}

	var quota *errs.QuotaError
	if r.fallbackAll || errors.As(err, &quota) {
		logger.FromContext(ctx).Warn("primary parser failed, falling back to regex",
			"error", err)
		return r.fallback.Parse(ctx, text)
	}

	return dto.ParsedExpense{}, err
}
