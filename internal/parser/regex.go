package parser

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/GregMSThompson/expense-backend/internal/dto"
	"github.com/GregMSThompson/expense-backend/internal/errs"
	"github.com/GregMSThompson/expense-backend/internal/taxonomy"
)

// Amount patterns are tried in order; the bare-number pattern is a deliberate
// catch-all, so any digit sequence matches when no currency pattern does.
var amountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`₹(\d+\.?\d*)`),
	regexp.MustCompile(`\$(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)(?:rs\.?|rupees?)\s*(\d+\.?\d*)`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:rs\.?|rupees?)`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*dollars?`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*usd`),
	regexp.MustCompile(`(?i)(\d+\.?\d*)\s*bucks?`),
	regexp.MustCompile(`(\d+)`),
}

var (
	isoDatePattern = regexp.MustCompile(`(\d{4}-\d{2}-\d{2})`)
	usDatePattern  = regexp.MustCompile(`(\d{2})/(\d{2})/(\d{4})`) // MM/DD/YYYY
)

// Keyword buckets are scanned in order; the first bucket with a match wins.
var keywordBuckets = []struct {
	category string
	keywords []string
}{
	{taxonomy.Food, []string{"food", "grocery", "groceries", "restaurant", "dinner", "lunch", "breakfast", "coffee", "cafe"}},
	{taxonomy.Transport, []string{"uber", "taxi", "bus", "train", "transport", "gas", "fuel", "parking", "car", "auto"}},
	{taxonomy.Shopping, []string{"shop", "shopping", "clothes", "shoes", "amazon", "store"}},
	{taxonomy.Entertainment, []string{"movie", "cinema", "entertainment", "game", "concert", "show"}},
	{taxonomy.Bills, []string{"bill", "electricity", "water", "internet", "phone", "rent", "utility"}},
	{taxonomy.Health, []string{"doctor", "medicine", "hospital", "health", "pharmacy", "medical"}},
}

// RegexParser is the free, deterministic fallback: given the same text and
// clock it always produces the same record.
type RegexParser struct {
	clockNow func() time.Time
}

func NewRegexParser() *RegexParser {
	return &RegexParser{clockNow: time.Now}
}

func (p *RegexParser) Parse(_ context.Context, text string) (dto.ParsedExpense, error) {
	amount, ok := extractAmount(text)
	if !ok {
		return dto.ParsedExpense{}, errs.NewParseError(fmt.Sprintf("no amount found in %q", text))
	}

	return dto.ParsedExpense{
		Amount:      amount,
		Category:    extractCategory(text),
		Date:        extractDate(text, p.clockNow().Format(dateLayout)),
		Description: strings.TrimSpace(text),
	}, nil
}

func extractAmount(text string) (float64, bool) {
	for _, pattern := range amountPatterns {
		match := pattern.FindStringSubmatch(text)
		if match == nil {
			continue
		}
		amount, err := strconv.ParseFloat(match[1], 64)
		if err != nil || amount == 0 {
			return 0, false
		}
		return amount, true
	}
	return 0, false
}

func extractDate(text, today string) string {
	if match := isoDatePattern.FindStringSubmatch(text); match != nil {
		return match[1]
	}
	if match := usDatePattern.FindStringSubmatch(text); match != nil {
		// reorder MM/DD/YYYY to YYYY-MM-DD
		return match[3] + "-" + match[1] + "-" + match[2]
	}
	return today
}

func extractCategory(text string) string {
	lower := strings.ToLower(text)
	for _, bucket := range keywordBuckets {
		for _, keyword := range bucket.keywords {
			if strings.Contains(lower, keyword) {
				return bucket.category
			}
		}
	}
	return taxonomy.Other
}
