package parser

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
)

const defaultImageFormat = "jpeg"

// VisionParser extracts an expense record from a base64 receipt image.
// Every failure on this path, from a bad data URL to a garbled model
// response, comes back as *errs.ScanError wrapping the cause. There is no
// regex fallback here: a receipt that cannot be read is rejected.
type VisionParser struct {
	client   VisionClient
	clockNow func() time.Time
}

func NewVisionParser(client VisionClient) *VisionParser {
	return &VisionParser{
		client:   client,
		clockNow: time.Now,
	}
}

func (p *VisionParser) Scan(ctx context.Context, imageDataURL string) (dto.ParsedExpense, error) {
	parsed, err := p.scan(ctx, imageDataURL)
	if err != nil {
		return dto.ParsedExpense{}, errs.NewScanError(err)
	}
	return parsed, nil
}

func (p *VisionParser) scan(ctx context.Context, imageDataURL string) (dto.ParsedExpense, error) {
	format, payload := splitDataURL(imageDataURL)

	imageBytes, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return dto.ParsedExpense{}, fmt.Errorf("decoding receipt image: %w", err)
	}

	today := p.clockNow().Format(dateLayout)
	raw, err := p.client.Vision(ctx, receiptPrompt(today), format, imageBytes)
	if err != nil {
		return dto.ParsedExpense{}, err
	}

	return decodeModelResponse(raw, today)
}

// splitDataURL strips an optional "data:image/<fmt>;base64," prefix and
// returns the declared image format (default jpeg) plus the raw payload.
func splitDataURL(s string) (format, payload string) {
	format = defaultImageFormat

	comma := strings.Index(s, ",")
	if comma < 0 {
		return format, s
	}

	header, payload := s[:comma], s[comma+1:]
	if rest, ok := strings.CutPrefix(header, "data:image/"); ok {
		if semi := strings.Index(rest, ";"); semi >= 0 {
			rest = rest[:semi]
		}
		if rest != "" {
			format = rest
		}
	}
	return format, payload
}
