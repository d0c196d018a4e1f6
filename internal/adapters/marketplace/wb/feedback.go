package wb

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/feedback"
	"sellerbot/internal/core/normalize"
)

const answerState = "wbRu"

func listQuery(take uint32, dateFrom uint64) string {
	q := url.Values{}
	q.Set("isAnswered", "false")
	q.Set("take", strconv.FormatUint(uint64(take), 10))
	q.Set("skip", "0")
	q.Set("dateFrom", strconv.FormatUint(dateFrom, 10))
	return q.Encode()
}

// ListNewQuestions implements marketplace.Seller
func (c *Client) ListNewQuestions(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Question, error) {
	take := marketplace.Clamp(limit, 1, questionMaxLimit)
	var env envelope[questionList]
	if err := c.api.Get(ctx, c.opts.FeedbacksURL+"/api/v1/questions?"+listQuery(take, dateFrom), &env); err != nil {
		return nil, err
	}
	data, err := env.unwrap("list questions")
	if err != nil {
		return nil, err
	}

	out := make([]feedback.Question, 0, len(data.Questions))
	for _, q := range data.Questions {
		out = append(out, feedback.Question{
			ID:          q.ID,
			ProductID:   strconv.FormatInt(q.ProductDetails.NmID, 10),
			AuthorName:  feedback.DefaultAuthor,
			Text:        normalize.Text(q.Text),
			PublishedAt: marketplace.ParseTime(q.CreatedDate),
		})
	}
	return marketplace.Shape(out, func(q feedback.Question) uint64 { return q.PublishedAt }, limit, dateFrom), nil
}

// ListNewReviews implements marketplace.Seller
func (c *Client) ListNewReviews(ctx context.Context, limit uint32, dateFrom uint64) ([]feedback.Review, error) {
	take := marketplace.Clamp(limit, 1, reviewMaxLimit)
	var env envelope[reviewList]
	if err := c.api.Get(ctx, c.opts.FeedbacksURL+"/api/v1/feedbacks?"+listQuery(take, dateFrom), &env); err != nil {
		return nil, err
	}
	data, err := env.unwrap("list reviews")
	if err != nil {
		return nil, err
	}

	out := make([]feedback.Review, 0, len(data.Feedbacks))
	for _, r := range data.Feedbacks {
		videos := uint16(0)
		if r.Video != nil {
			videos = 1
		}
		out = append(out, feedback.Review{
			ID:           r.ID,
			ProductID:    strconv.FormatInt(r.ProductDetails.NmID, 10),
			AuthorName:   feedback.Author(r.UserName),
			Text:         normalize.Text(feedback.ComposeReviewText(r.Pros, r.Cons, r.Text)),
			Score:        float32(r.ProductValuation),
			PhotosAmount: uint16(len(r.PhotoLinks)),
			VideosAmount: videos,
			PublishedAt:  marketplace.ParseTime(r.CreatedDate),
		})
	}
	return marketplace.Shape(out, func(r feedback.Review) uint64 { return r.PublishedAt }, limit, dateFrom), nil
}

// AnswerQuestion implements marketplace.Seller; productID is unused on WB
func (c *Client) AnswerQuestion(ctx context.Context, id, text, _ string) error {
	var p answerQuestionParams
	p.ID = id
	p.Answer.Text = text
	p.State = answerState
	return c.api.Do(ctx, http.MethodPatch, c.opts.FeedbacksURL+"/api/v1/questions", p, nil)
}

// AnswerReview implements marketplace.Seller
func (c *Client) AnswerReview(ctx context.Context, id, text string) error {
	return c.api.Post(ctx, c.opts.FeedbacksURL+"/api/v1/feedbacks/answer", answerReviewParams{ID: id, Text: text}, nil)
}
