package openaiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
)

const defaultBaseURL = "https://api.openai.com/v1/chat/completions"

type Adapter struct {
	httpClient *http.Client
	apiKey     string
	model      string
	baseURL    string
}

func NewAdapter(apiKey, model string) *Adapter {
	return &Adapter{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// Complete sends a chat completion request and returns the raw text of the
// first choice. Quota exhaustion comes back as *errs.QuotaError so the
// parser router can decide whether to fall back.
func (a *Adapter) Complete(ctx context.Context, req dto.CompletionRequest) (string, error) {
	if a.apiKey == "" {
		return "", errs.NewExternalServiceError("openai", false, "OpenAI API key is not configured")
	}

	requestBody := map[string]any{
		"model": a.model,
		"messages": []map[string]string{
			{"role": "system", "content": req.System},
			{"role": "user", "content": req.Prompt},
		},
		"temperature": req.Temperature,
		"max_tokens":  req.MaxTokens,
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.baseURL, bytes.NewReader(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", errs.NewExternalServiceError("openai", true, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errs.NewExternalServiceError("openai", true, "failed to read response: "+err.Error())
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyAPIError(resp.StatusCode, body)
	}

	var response chatResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", errs.NewExternalServiceError("openai", false, "failed to parse response: "+err.Error())
	}
	if len(response.Choices) == 0 {
		return "", errs.NewExternalServiceError("openai", false, "no completion choices returned")
	}

	return strings.TrimSpace(response.Choices[0].Message.Content), nil
}

func classifyAPIError(status int, body []byte) error {
	var apiErr struct {
		Error struct {
			Code    string `json:"code"`
			Type    string `json:"type"`
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &apiErr)

	if status == http.StatusTooManyRequests || apiErr.Error.Code == "insufficient_quota" {
		return errs.NewQuotaError(fmt.Sprintf("OpenAI quota exhausted (status %d): %s", status, apiErr.Error.Message))
	}

	return errs.NewExternalServiceError("openai", false,
		fmt.Sprintf("OpenAI API error (status %d): %s", status, string(body)))
}

type chatResponse struct {
	ID      string `json:"id"`
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
		Index        int    `json:"index"`
	} `json:"choices"`
}
