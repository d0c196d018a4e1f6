// Package domain defines the types and ports of the product summaries service
package domain

import "sellerbot/internal/adapters/marketplace"

// Summary is the LLM digest of a product card, keyed by "{symbol}/{product_id}"
type Summary struct {
	ID        string `json:"id"`
	Text      string `json:"ai_summary"`
	CreatedAt int64  `json:"created_at"`
}

// ProductData is what the product summary template receives
type ProductData struct {
	Place   string
	Product marketplace.ProductContext
}
