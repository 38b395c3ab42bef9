package vertexclient

import (
	"context"
	"log/slog"

	"cloud.google.com/go/vertexai/genai"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
)

type Adapter struct {
	client      *genai.Client
	model       string
	visionModel string
	log         *slog.Logger
}

func NewAdapter(ctx context.Context, log *slog.Logger, projectID, region, model, visionModel string) (*Adapter, error) {
	client, err := genai.NewClient(ctx, projectID, region)
	if err != nil {
		return nil, err
	}

	return &Adapter{
		client:      client,
		model:       model,
		visionModel: visionModel,
		log:         log,
	}, nil
}

func (a *Adapter) Close() error {
	err := a.client.Close()
	if err != nil && a.log != nil {
		a.log.Error("vertex adapter close failed", "error", err)
	}
	return err
}

// Complete sends a single text prompt and returns the model's raw text
// response.
func (a *Adapter) Complete(ctx context.Context, req dto.CompletionRequest) (string, error) {
	model := a.client.GenerativeModel(a.model)
	a.configure(model, req)

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", errs.NewExternalServiceError("vertex", false, err.Error())
	}

	return responseText(resp)
}

// Vision sends a prompt plus decoded image bytes with an explicit media-type
// tag to the vision-capable model.
func (a *Adapter) Vision(ctx context.Context, prompt, format string, data []byte) (string, error) {
	model := a.client.GenerativeModel(a.visionModel)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt), genai.ImageData(format, data))
	if err != nil {
		return "", errs.NewExternalServiceError("vertex", false, err.Error())
	}

	return responseText(resp)
}

func (a *Adapter) configure(model *genai.GenerativeModel, req dto.CompletionRequest) {
	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(req.MaxTokens))
	}
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", errs.NewExternalServiceError("vertex", false, "empty response from model")
	}

	var text string
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if p, ok := part.(genai.Text); ok {
				text += string(p)
			}
		}
	}

	if text == "" {
		return "", errs.NewExternalServiceError("vertex", false, "empty response from model")
	}
	return text, nil
}
