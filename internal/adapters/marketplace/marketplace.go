// Package marketplace defines the seller capability implemented by the
// Wildberries and Ozon adapters plus helpers both of them share
package marketplace

import (
	"context"
	"fmt"
	"iter"
	"sort"
	"strings"

	"sellerbot/internal/core/feedback"
)

// Symbol is the short marketplace code used in storage keys
type Symbol string

const (
	// WB is Wildberries
	WB Symbol = "wb"
	// Ozon is Ozon
	Ozon Symbol = "oz"
)

func (s Symbol) String() string { return string(s) }

// Title returns the human readable marketplace name
func (s Symbol) Title() string {
	switch s {
	case WB:
		return "Wildberries"
	case Ozon:
		return "Ozon"
	}
	return string(s)
}

// Unknown fills product fields a marketplace could not provide
const Unknown = "Unknown"

// Product is one catalogue entry
type Product struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProductContext is what the product summary prompt knows about a product
type ProductContext struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Price  string            `json:"price"`
	Desc   string            `json:"desc"`
	Attrs  map[string]string `json:"attrs"`
	Weight string            `json:"weight"`
	Box    string            `json:"box"`
}

// Info renders Attrs as "key: value;" lines sorted by key
func (p ProductContext) Info() string {
	keys := make([]string, 0, len(p.Attrs))
	for k := range p.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s;\n", k, p.Attrs[k])
	}
	return strings.TrimRight(b.String(), "\n")
}

// Seller is a marketplace seller account
type Seller interface {
	Symbol() Symbol

	// ListNewQuestions returns up to limit unanswered questions published at or
	// after dateFrom, newest first
	ListNewQuestions(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Question, error)
	// ListNewReviews is ListNewQuestions for reviews
	ListNewReviews(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Review, error)

	// AnswerQuestion publishes an answer; productID is required by Ozon only
	AnswerQuestion(ctx context.Context, id, text, productID string) error
	AnswerReview(ctx context.Context, id, text string) error

	// Products walks the whole catalogue; iteration stops at the first error
	Products(ctx context.Context) iter.Seq2[Product, error]
	ProductContext(ctx context.Context, productID string) (ProductContext, error)
}

// SummaryID is the storage key of a product summary
func SummaryID(s Symbol, productID string) string {
	return string(s) + "/" + strings.TrimSpace(productID)
}
