package domain

import "context"

// Generator is the interface all LLM completion backends must implement.
// The assistant holds a Generator handle passed in at construction; there is
// no process-global model state.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
	Name() string
	Healthy(ctx context.Context) error
}

type GenerateRequest struct {
	Prompt      string
	MaxTokens   int
	Stop        []string
	Temperature float64
}

// GenerateResponse mirrors the completion-endpoint wire shape: the generated
// text lives in Choices[0].Text.
type GenerateResponse struct {
	Choices []Choice `json:"choices"`
}

type Choice struct {
	Text string `json:"text"`
}

// Text returns the first choice's text, or "" when the response is empty.
func (r *GenerateResponse) Text() string {
	if r == nil || len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Text
}
