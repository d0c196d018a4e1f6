// Package service provides the product summaries service implementation
package service

import (
	"context"
	"time"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit/repokit"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/services/summaries/domain"
	"sellerbot/internal/services/summaries/repo"
)

// Config for the summaries service
type Config struct {
	// Model is passed to the LLM; empty uses the provider default
	Model string
	// Template defaults to prompt.ProductSummary
	Template string
}

// Service implements domain.ReaderPort and domain.GeneratorPort
type Service struct {
	DB      repokit.TxRunner
	Binder  repokit.Binder[repo.Storage]
	Cache   *repo.Cache
	Prompts *prompt.Store
	LLM     domain.Prompter
	Cfg     Config
	Log     *logger.Logger

	now func() time.Time
}

var (
	_ domain.ReaderPort    = (*Service)(nil)
	_ domain.GeneratorPort = (*Service)(nil)
)

// New constructs a summaries service; cache may be nil
func New(db repokit.TxRunner, b repokit.Binder[repo.Storage], cache *repo.Cache, prompts *prompt.Store, llm domain.Prompter, cfg Config, log *logger.Logger) *Service {
	if cfg.Template == "" {
		cfg.Template = prompt.ProductSummary
	}
	if log == nil {
		log = logger.Named("summaries")
	}
	return &Service{
		DB: db, Binder: b, Cache: cache, Prompts: prompts, LLM: llm, Cfg: cfg, Log: log,
		now: time.Now,
	}
}

// Get implements domain.ReaderPort, reading through the cache.
// Cache failures are logged and fall back to the database
func (s *Service) Get(ctx context.Context, id string) (domain.Summary, error) {
	text, ok, err := s.Cache.Get(ctx, id)
	if err != nil {
		s.Log.Warn().Err(err).Str("id", id).Msg("summary cache get failed")
	}
	if ok {
		return domain.Summary{ID: id, Text: text}, nil
	}

	sum, err := s.Binder.Bind(s.DB).Get(ctx, id)
	if err != nil {
		return domain.Summary{}, err
	}
	if err := s.Cache.Set(ctx, id, sum.Text); err != nil {
		s.Log.Warn().Err(err).Str("id", id).Msg("summary cache set failed")
	}
	return sum, nil
}

// Generate implements domain.GeneratorPort. It walks the seller's catalogue,
// summarizes every product and stops at the first failure; the count of
// stored summaries is returned either way
func (s *Service) Generate(ctx context.Context, seller marketplace.Seller) (int, error) {
	sym := seller.Symbol()
	log := s.Log.With().Str("place", sym.String()).Logger()

	n := 0
	for p, err := range seller.Products(ctx) {
		if err != nil {
			return n, perr.Wrapf(err, perr.CodeOf(err), "list %s products", sym)
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		sum, err := s.summarize(ctx, seller, p)
		if err != nil {
			return n, err
		}
		n++
		log.Info().Int("n", n).Str("id", sum.ID).Int("chars", len(sum.Text)).Msg("product summary stored")
	}
	return n, nil
}

func (s *Service) summarize(ctx context.Context, seller marketplace.Seller, p marketplace.Product) (domain.Summary, error) {
	pc, err := seller.ProductContext(ctx, p.ID)
	if err != nil {
		return domain.Summary{}, perr.WithOp(err, "product context")
	}
	text, err := s.Prompts.Render(s.Cfg.Template, domain.ProductData{Place: seller.Symbol().Title(), Product: pc})
	if err != nil {
		return domain.Summary{}, perr.WithOp(err, "render")
	}
	answer, err := s.LLM.Prompt(ctx, s.Cfg.Model, text)
	if err != nil {
		return domain.Summary{}, perr.WithOp(err, "llm")
	}

	sum := domain.Summary{
		ID:        marketplace.SummaryID(seller.Symbol(), p.ID),
		Text:      answer,
		CreatedAt: s.now().Unix(),
	}
	if err := s.Binder.Bind(s.DB).Upsert(ctx, sum); err != nil {
		return domain.Summary{}, err
	}
	if err := s.Cache.Set(ctx, sum.ID, sum.Text); err != nil {
		s.Log.Warn().Err(err).Str("id", sum.ID).Msg("summary cache set failed")
	}
	return sum, nil
}
