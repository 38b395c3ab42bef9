package parser

import (
	"fmt"
)

// Prompt templates are kept here as versioned assets, separate from the
// parsing and validation logic, so wording changes can be reviewed on their
// own. Bump the suffix when the extraction contract changes.

const textSystemPromptV1 = "You are an expense parser. Return ONLY valid JSON. " +
	"No explanations, no markdown formatting, just the JSON object."

const textPromptV1 = `You are an expense parsing assistant. Parse the following expense description and return ONLY a JSON object (no markdown, no extra text).

Input: %q

Return JSON with these exact fields:
{
    "amount": <number>,
    "category": "<Food|Transport|Shopping|Entertainment|Bills|Health|Other>",
    "date": "<YYYY-MM-DD format, use today's date if not mentioned>",
    "description": "<brief summary of expense>"
}

Rules:
- Extract the numeric value only (e.g., 50.00). Convert if a currency is mentioned.
- Choose the most appropriate category from the 7 options.
- If the expense is clearly car-related (fuel, maintenance, parking, taxi, auto), use "Transport".
- Use today's date (%[2]s) if no date is specified.
- For description: extract the actual PURPOSE/ITEM from the text, not just generic words. Keep it concise but specific (max 50 chars).
- Return ONLY valid JSON, no explanation.

Examples:
Input: "Spent 500 rupees on car"
Output: {"amount": 500, "category": "Transport", "date": "%[2]s", "description": "Car maintenance"}

Input: "Auto fare to office 50 rupees"
Output: {"amount": 50, "category": "Transport", "date": "%[2]s", "description": "Auto fare to office"}

Input: "Spent 500 on groceries today"
Output: {"amount": 500, "category": "Food", "date": "%[2]s", "description": "Groceries"}

Input: "Paid ₹1200 for dinner last night"
Output: {"amount": 1200, "category": "Food", "date": "%[2]s", "description": "Dinner"}

Now parse the input above.`

const receiptPromptV1 = `Analyze this receipt image and extract information.
Return ONLY a valid JSON object with these exact fields:

{
    "amount": <total amount as number>,
    "category": "<Food|Transport|Shopping|Entertainment|Bills|Health|Other>",
    "date": "<YYYY-MM-DD>",
    "description": "<merchant name or items>"
}

Today is %s. Extract the total amount, merchant name, and date from the receipt.
If the date is unclear, use today. Categorize based on merchant/items. Return valid JSON only.`

func textPrompt(text, today string) string {
	return fmt.Sprintf(textPromptV1, text, today)
}

func receiptPrompt(today string) string {
	return fmt.Sprintf(receiptPromptV1, today)
}
