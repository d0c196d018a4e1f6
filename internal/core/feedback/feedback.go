// Package feedback holds the customer feedback types shared by marketplaces,
// the change detector and the observer
package feedback

import "strings"

// DefaultAuthor is used when a marketplace does not expose the author's name
const DefaultAuthor = "User"

// Kind tags a feedback item
type Kind string

const (
	// KindQuestion is a customer question about a product
	KindQuestion Kind = "question"
	// KindReview is a customer review of a product
	KindReview Kind = "review"
)

func (k Kind) String() string { return string(k) }

// Valid reports whether k is a known kind
func (k Kind) Valid() bool { return k == KindQuestion || k == KindReview }

// Question is an unanswered customer question
type Question struct {
	ID          string `json:"id"`
	ProductID   string `json:"product_id"`
	AuthorName  string `json:"author_name"`
	Text        string `json:"text"`
	PublishedAt uint64 `json:"published_at"`
}

// Review is an unprocessed customer review
type Review struct {
	ID           string  `json:"id"`
	ProductID    string  `json:"product_id"`
	AuthorName   string  `json:"author_name"`
	Text         string  `json:"text"`
	Score        float32 `json:"score"`
	PhotosAmount uint16  `json:"photos_amount"`
	VideosAmount uint16  `json:"videos_amount"`
	PublishedAt  uint64  `json:"published_at"`
}

// Item is either a question or a review
type Item struct {
	Kind     Kind
	Question *Question
	Review   *Review
}

// OfQuestion wraps q
func OfQuestion(q Question) Item { return Item{Kind: KindQuestion, Question: &q} }

// OfReview wraps r
func OfReview(r Review) Item { return Item{Kind: KindReview, Review: &r} }

// ID returns the marketplace id of the wrapped item
func (it Item) ID() string {
	switch {
	case it.Question != nil:
		return it.Question.ID
	case it.Review != nil:
		return it.Review.ID
	}
	return ""
}

// ProductID returns the product the wrapped item refers to
func (it Item) ProductID() string {
	switch {
	case it.Question != nil:
		return it.Question.ProductID
	case it.Review != nil:
		return it.Review.ProductID
	}
	return ""
}

// Text returns the customer text of the wrapped item
func (it Item) Text() string {
	switch {
	case it.Question != nil:
		return it.Question.Text
	case it.Review != nil:
		return it.Review.Text
	}
	return ""
}

// PublishedAt returns the unix seconds of the wrapped item
func (it Item) PublishedAt() uint64 {
	switch {
	case it.Question != nil:
		return it.Question.PublishedAt
	case it.Review != nil:
		return it.Review.PublishedAt
	}
	return 0
}

// Author returns name, or DefaultAuthor when it is blank
func Author(name string) string {
	if strings.TrimSpace(name) == "" {
		return DefaultAuthor
	}
	return name
}

// ComposeReviewText joins the pros, cons and comment sections of a review.
// Empty sections are skipped
func ComposeReviewText(pros, cons, comment string) string {
	var b strings.Builder
	section := func(title, body string) {
		if body == "" {
			return
		}
		b.WriteString(title)
		b.WriteString(": ")
		b.WriteString(body)
		b.WriteByte('\n')
	}
	section("Достоинства", pros)
	section("Недостатки", cons)
	section("Комментарий", comment)
	return strings.TrimSpace(b.String())
}
