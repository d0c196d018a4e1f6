// Package domain defines the types and ports of the feedback observer
package domain

import (
	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/feedback"
)

// Answer is a drafted reply to one question or review
type Answer struct {
	ID         string        `json:"id"`
	Place      string        `json:"place"`
	Kind       feedback.Kind `json:"kind"`
	FeedbackID string        `json:"feedback_id"`
	ProductID  string        `json:"product_id"`
	Question   string        `json:"question"`
	Answer     string        `json:"answer"`
	Published  bool          `json:"published"`
	CreatedAt  int64         `json:"created_at"`
}

// AnswerID is "{place}/{kind}/{feedback_id}"
func AnswerID(place marketplace.Symbol, kind feedback.Kind, feedbackID string) string {
	return string(place) + "/" + string(kind) + "/" + feedbackID
}

// QuestionData is what the question template receives
type QuestionData struct {
	Place    string
	Product  string
	Question feedback.Question
	Summary  string
}

// ReviewData is what the review template receives
type ReviewData struct {
	Place   string
	Product string
	Review  feedback.Review
	Summary string
}

// Subject is the bus subject answers are announced on
func Subject(place marketplace.Symbol, kind feedback.Kind) string {
	return "sellerbot.feedback." + string(place) + "." + string(kind)
}
