// Package service runs the feedback observer: new questions and reviews are
// detected, answered by the LLM, stored and optionally published back
package service

import (
	"context"
	"encoding/json"
	"time"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/changefeed"
	"sellerbot/internal/core/feedback"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/core/throttle"
	"sellerbot/internal/modkit/repokit"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/platform/store"
	str "sellerbot/internal/platform/strings"
	"sellerbot/internal/services/observer/domain"
	"sellerbot/internal/services/observer/repo"
	sumdomain "sellerbot/internal/services/summaries/domain"
)

// Config for the observer
type Config struct {
	Model            string
	QuestionInterval time.Duration
	ReviewInterval   time.Duration
	ProbeLimit       uint32
	RingSize         int
	RestartDelay     time.Duration
	// Publish posts answers back to the marketplace
	Publish          bool
	QuestionTemplate string
	ReviewTemplate   string
}

func (c *Config) defaults() {
	if c.QuestionInterval <= 0 {
		c.QuestionInterval = 11 * time.Second
	}
	if c.ReviewInterval <= 0 {
		c.ReviewInterval = 7 * time.Second
	}
	if c.RestartDelay <= 0 {
		c.RestartDelay = 5 * time.Second
	}
	if c.QuestionTemplate == "" {
		c.QuestionTemplate = prompt.Question
	}
	if c.ReviewTemplate == "" {
		c.ReviewTemplate = prompt.Review
	}
}

// Service implements domain.RunnerPort and domain.QueryPort
type Service struct {
	Seller    marketplace.Seller
	DB        repokit.TxRunner
	Binder    repokit.Binder[repo.Storage]
	Summaries sumdomain.ReaderPort
	Prompts   *prompt.Store
	LLM       domain.Prompter
	Journal   *repo.Journal
	Bus       store.Bus
	Cfg       Config
	Log       *logger.Logger

	now func() time.Time
}

var (
	_ domain.RunnerPort = (*Service)(nil)
	_ domain.QueryPort  = (*Service)(nil)
)

// New constructs the observer; journal and bus may be nil
func New(
	seller marketplace.Seller,
	db repokit.TxRunner,
	b repokit.Binder[repo.Storage],
	summaries sumdomain.ReaderPort,
	prompts *prompt.Store,
	llm domain.Prompter,
	journal *repo.Journal,
	bus store.Bus,
	cfg Config,
	log *logger.Logger,
) *Service {
	cfg.defaults()
	if log == nil {
		log = logger.Named("observer")
	}
	l := log.With().Str("place", seller.Symbol().String()).Logger()
	return &Service{
		Seller: seller, DB: db, Binder: b, Summaries: summaries, Prompts: prompts, LLM: llm,
		Journal: journal, Bus: bus, Cfg: cfg, Log: &l,
		now: time.Now,
	}
}

// Check fails with a Forbidden error when the seller's feedback API is not
// available to the account
func (s *Service) Check(ctx context.Context) error {
	pc, ok := s.Seller.(domain.PremiumChecker)
	if !ok {
		return nil
	}
	premium, err := pc.PremiumPlus(ctx)
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeForbidden, "%s seller rating summary", s.Seller.Symbol().Title())
	}
	if !premium {
		return perr.Forbiddenf("%s questions and reviews require the Premium Plus subscription", s.Seller.Symbol().Title())
	}
	return nil
}

// Run observes until ctx is cancelled. When the feedback stream fails the
// observer waits RestartDelay and starts over with freshly primed detectors
func (s *Service) Run(ctx context.Context) error {
	if err := s.Check(ctx); err != nil {
		return err
	}
	if err := s.Journal.Ensure(ctx); err != nil {
		s.Log.Warn().Err(err).Msg("feedback journal unavailable")
	}
	for {
		s.Log.Info().Msg("starting feedback observer")
		err := s.observe(ctx)
		if ctx.Err() != nil {
			return nil
		}
		s.Log.Error().Err(err).Dur("restart_in", s.Cfg.RestartDelay).Msg("feedback stream stopped")
		if throttle.Sleep(ctx, s.Cfg.RestartDelay) != nil {
			return nil
		}
	}
}

func (s *Service) observe(ctx context.Context) error {
	questions := changefeed.New("questions", s.Seller.ListNewQuestions,
		func(q feedback.Question) changefeed.Key { return changefeed.Key{ID: q.ID, PublishedAt: q.PublishedAt} },
		changefeed.Options{ProbeLimit: s.Cfg.ProbeLimit, Interval: s.Cfg.QuestionInterval, RingSize: s.Cfg.RingSize, Log: s.Log})
	reviews := changefeed.New("reviews", s.Seller.ListNewReviews,
		func(r feedback.Review) changefeed.Key { return changefeed.Key{ID: r.ID, PublishedAt: r.PublishedAt} },
		changefeed.Options{ProbeLimit: s.Cfg.ProbeLimit, Interval: s.Cfg.ReviewInterval, RingSize: s.Cfg.RingSize, Log: s.Log})

	m := changefeed.Merge(ctx, questions, reviews)
	for ev := range m.Events() {
		if ev.Err != nil {
			s.Log.Warn().Err(ev.Err).Str("kind", ev.Item.Kind.String()).Msg("feedback detector failed")
			continue
		}
		if _, err := s.Handle(ctx, ev.Item); err != nil {
			s.Log.Error().Err(err).Str("kind", ev.Item.Kind.String()).Str("id", ev.Item.ID()).Msg("feedback not answered")
		}
	}
	<-m.Done()
	return m.Err()
}

// Handle drafts, stores and optionally publishes the answer to one item
func (s *Service) Handle(ctx context.Context, it feedback.Item) (domain.Answer, error) {
	place := s.Seller.Symbol()
	a := domain.Answer{
		ID:         domain.AnswerID(place, it.Kind, it.ID()),
		Place:      place.String(),
		Kind:       it.Kind,
		FeedbackID: it.ID(),
		ProductID:  it.ProductID(),
		Question:   it.Text(),
	}
	start := s.now()
	err := s.answer(ctx, it, &a)
	s.record(ctx, a, s.now().Sub(start), err)
	if err != nil {
		return domain.Answer{}, err
	}
	s.announce(ctx, a)
	return a, nil
}

func (s *Service) answer(ctx context.Context, it feedback.Item, a *domain.Answer) error {
	name, data, err := s.templateFor(ctx, it)
	if err != nil {
		return err
	}
	text, err := s.Prompts.Render(name, data)
	if err != nil {
		return perr.WithOp(err, "render "+name)
	}
	reply, err := s.LLM.Prompt(ctx, s.Cfg.Model, text)
	if err != nil {
		return perr.WithOp(err, "llm")
	}
	a.Answer = reply
	a.CreatedAt = s.now().Unix()

	storage := s.Binder.Bind(s.DB)
	if err := storage.Save(ctx, *a); err != nil {
		return err
	}
	s.Log.Info().
		Str("id", a.ID).
		Str("product_id", a.ProductID).
		Str("text", str.Truncate(a.Question, 80)).
		Str("answer", str.Truncate(a.Answer, 80)).
		Msg("feedback answered")

	if !s.Cfg.Publish {
		return nil
	}
	if err := s.publish(ctx, it, reply); err != nil {
		s.Log.Error().Err(err).Str("id", a.ID).Msg("publish answer failed")
		return nil
	}
	if err := storage.MarkPublished(ctx, a.ID); err != nil {
		return err
	}
	a.Published = true
	return nil
}

func (s *Service) templateFor(ctx context.Context, it feedback.Item) (string, any, error) {
	place := s.Seller.Symbol()
	summary := s.summary(ctx, it)
	switch it.Kind {
	case feedback.KindQuestion:
		return s.Cfg.QuestionTemplate, domain.QuestionData{
			Place: place.Title(), Product: it.ProductID(), Question: *it.Question, Summary: summary,
		}, nil
	case feedback.KindReview:
		return s.Cfg.ReviewTemplate, domain.ReviewData{
			Place: place.Title(), Product: it.ProductID(), Review: *it.Review, Summary: summary,
		}, nil
	}
	return "", nil, perr.InvalidArgf("unknown feedback kind %q", it.Kind)
}

// summary returns "" when the product has no stored summary
func (s *Service) summary(ctx context.Context, it feedback.Item) string {
	if s.Summaries == nil {
		return ""
	}
	id := marketplace.SummaryID(s.Seller.Symbol(), it.ProductID())
	sum, err := s.Summaries.Get(ctx, id)
	if err != nil {
		ev := s.Log.Warn().Str("summary_id", id)
		if !perr.IsCode(err, perr.ErrorCodeNotFound) {
			ev = ev.Err(err)
		}
		ev.Msg("no product summary; answering without it")
		return ""
	}
	return sum.Text
}

func (s *Service) publish(ctx context.Context, it feedback.Item, text string) error {
	switch it.Kind {
	case feedback.KindQuestion:
		return s.Seller.AnswerQuestion(ctx, it.ID(), text, it.ProductID())
	case feedback.KindReview:
		return s.Seller.AnswerReview(ctx, it.ID(), text)
	}
	return perr.InvalidArgf("unknown feedback kind %q", it.Kind)
}

func (s *Service) record(ctx context.Context, a domain.Answer, lat time.Duration, cause error) {
	if err := s.Journal.Record(ctx, repo.Entry{At: s.now(), Answer: a, Latency: lat, Err: cause}); err != nil {
		s.Log.Warn().Err(err).Str("id", a.ID).Msg("journal write failed")
	}
}

func (s *Service) announce(ctx context.Context, a domain.Answer) {
	if s.Bus == nil {
		return
	}
	data, err := json.Marshal(a)
	if err != nil {
		s.Log.Warn().Err(err).Str("id", a.ID).Msg("encode answer event")
		return
	}
	if err := s.Bus.Publish(ctx, domain.Subject(s.Seller.Symbol(), a.Kind), data); err != nil {
		s.Log.Warn().Err(err).Str("id", a.ID).Msg("announce answer failed")
	}
}

// Recent implements domain.QueryPort
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Answer, error) {
	return NewQuery(s.DB, s.Binder).Recent(ctx, limit)
}
