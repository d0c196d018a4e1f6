package domain

import (
	"context"

	"sellerbot/internal/adapters/marketplace"
)

// ReaderPort looks summaries up
type ReaderPort interface {
	Get(ctx context.Context, id string) (Summary, error)
}

// GeneratorPort builds summaries for a whole catalogue
type GeneratorPort interface {
	Generate(ctx context.Context, seller marketplace.Seller) (int, error)
}

// Prompter is the LLM seam
type Prompter interface {
	Prompt(ctx context.Context, model, prompt string) (string, error)
}
