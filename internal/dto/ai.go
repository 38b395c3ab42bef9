package dto

// CompletionRequest is the provider-neutral shape both completion clients
// (Vertex Gemini, OpenAI) accept.
type CompletionRequest struct {
	System      string
	Prompt      string
	Temperature float32
	MaxTokens   int
}
