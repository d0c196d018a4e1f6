package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"sellerbot/internal/adapters/llm"
	"sellerbot/internal/adapters/marketplace/sellers"
	"sellerbot/internal/core/feedback"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/module"
	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/platform/store"
	ptime "sellerbot/internal/platform/time"

	observermod "sellerbot/internal/services/observer/module"
	summariesmod "sellerbot/internal/services/summaries/module"

	"github.com/google/uuid"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fPlace    = flag.String("marketplace", "", "wb | oz (overrides MARKETPLACE)")
		fProduct  = flag.String("product", "", "product id the question is about (required)")
		fQuestion = flag.String("question", "", "customer question text (required)")
		fAuthor   = flag.String("author", "", "customer name")
		fDB       = flag.String("db", "sellerbot.db", "sqlite path used when no SQL backend is configured")
	)
	flag.Parse()

	if *fProduct == "" || *fQuestion == "" {
		flag.Usage()
		os.Exit(2)
	}
	mustSetEnv("MARKETPLACE", *fPlace)

	root := config.New()
	l := logger.Get()
	ctx := context.Background()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "sellerbot-ask").RequireSQL(*fDB), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	seller, err := sellers.FromConfig(root, logger.Named("marketplace"))
	if err != nil {
		l.Panic().Err(err).Msg("marketplace adapter")
	}
	prompts, err := prompt.Open(root.MayString("TEMPLATES_DIR", "templates"))
	if err != nil {
		l.Panic().Err(err).Msg("prompt.Open failed")
	}
	lo := llm.FromConfig(root)
	lo.Log = logger.Named("llm")
	ai := llm.New(lo)

	deps := modkit.DepsFrom(*l, root, st)
	sm := summariesmod.New(deps, prompts, ai, summariesmod.FromConfig(root))
	module.Register(sm.Name(), sm.Ports())

	// never post a hand-typed question back to the marketplace
	oopts := observermod.FromConfig(root)
	oopts.Publish = false
	om := observermod.New(deps, seller, module.MustPortsOf[summariesmod.Ports](sm).Reader, prompts, ai, oopts)
	ports := module.MustPortsOf[observermod.Ports](om)

	q := feedback.Question{
		ID:          "ask-" + uuid.NewString(),
		ProductID:   *fProduct,
		AuthorName:  feedback.Author(*fAuthor),
		Text:        *fQuestion,
		PublishedAt: ptime.NowUnix(),
	}
	ans, err := ports.Runner.Handle(logger.WithPlace(ctx, seller.Symbol().String()), feedback.OfQuestion(q))
	if err != nil {
		l.Fatal().Err(err).Msg("ask failed")
	}
	fmt.Println(ans.Answer)
}
