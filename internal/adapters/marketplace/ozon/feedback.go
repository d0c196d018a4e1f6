package ozon

import (
	"context"
	"strconv"
	"strings"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/feedback"
	"sellerbot/internal/core/normalize"
	perr "sellerbot/internal/platform/errors"
)

const (
	statusUnprocessed = "UNPROCESSED"
	sortDesc          = "DESC"
)

// ListNewQuestions implements marketplace.Seller
func (c *Client) ListNewQuestions(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Question, error) {
	req := questionListRequest{Filter: questionFilter{Status: statusUnprocessed, DateFrom: marketplace.FormatTime(dateFrom)}}
	var resp questionListResponse
	if err := c.post(ctx, "/v1/question/list", req, &resp); err != nil {
		return nil, err
	}

	out := make([]feedback.Question, 0, len(resp.Questions))
	for _, q := range resp.Questions {
		out = append(out, feedback.Question{
			ID:          q.ID,
			ProductID:   strconv.FormatInt(q.SKU, 10),
			AuthorName:  feedback.Author(q.AuthorName),
			Text:        normalize.Text(q.Text),
			PublishedAt: marketplace.ParseTime(q.PublishedAt),
		})
	}
	return marketplace.Shape(out, func(q feedback.Question) uint64 { return q.PublishedAt }, limit, dateFrom), nil
}

// ListNewReviews implements marketplace.Seller; Ozon has no date filter for
// reviews so dateFrom is applied locally
func (c *Client) ListNewReviews(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Review, error) {
	req := reviewListRequest{
		Limit:   marketplace.Clamp(limit, reviewMinLimit, reviewMaxLimit),
		Status:  statusUnprocessed,
		SortDir: sortDesc,
	}
	var resp reviewListResponse
	if err := c.post(ctx, "/v1/review/list", req, &resp); err != nil {
		return nil, err
	}

	out := make([]feedback.Review, 0, len(resp.Reviews))
	for _, r := range resp.Reviews {
		out = append(out, feedback.Review{
			ID:           r.ID,
			ProductID:    strconv.FormatInt(r.SKU, 10),
			AuthorName:   feedback.DefaultAuthor,
			Text:         normalize.Text(r.Text),
			Score:        float32(r.Rating),
			PhotosAmount: uint16(max(r.PhotosAmount, 0)),
			VideosAmount: uint16(max(r.VideosAmount, 0)),
			PublishedAt:  marketplace.ParseTime(r.PublishedAt),
		})
	}
	return marketplace.Shape(out, func(r feedback.Review) uint64 { return r.PublishedAt }, limit, dateFrom), nil
}

// AnswerQuestion implements marketplace.Seller; productID is the question's sku
func (c *Client) AnswerQuestion(ctx context.Context, id, text, productID string) error {
	sku, err := strconv.ParseInt(strings.TrimSpace(productID), 10, 64)
	if err != nil {
		return perr.WithField(perr.InvalidArgf("ozon answer %s: bad sku %q", id, productID), "product_id")
	}
	var out struct {
		AnswerID string `json:"answer_id"`
	}
	return c.post(ctx, "/v1/question/answer/create", answerCreateRequest{QuestionID: id, SKU: sku, Text: text}, &out)
}

// AnswerReview implements marketplace.Seller, marking the review processed
func (c *Client) AnswerReview(ctx context.Context, id, text string) error {
	var out struct {
		CommentID string `json:"comment_id"`
	}
	req := commentCreateRequest{ReviewID: id, Text: text, MarkReviewAsProcessed: true}
	return c.post(ctx, "/v1/review/comment/create", req, &out)
}
