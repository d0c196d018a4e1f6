package domain

import (
	"context"

	"sellerbot/internal/core/feedback"
)

// RunnerPort drives the observer
type RunnerPort interface {
	Run(ctx context.Context) error
	Handle(ctx context.Context, it feedback.Item) (Answer, error)
}

// QueryPort reads stored answers
type QueryPort interface {
	Recent(ctx context.Context, limit int) ([]Answer, error)
}

// Prompter is the LLM seam
type Prompter interface {
	Prompt(ctx context.Context, model, prompt string) (string, error)
}

// PremiumChecker is implemented by sellers whose feedback API is paywalled
type PremiumChecker interface {
	PremiumPlus(ctx context.Context) (bool, error)
}
