package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sellerbot/internal/adapters/llm"
	"sellerbot/internal/adapters/marketplace/sellers"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/module"
	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/platform/store"

	summariesmod "sellerbot/internal/services/summaries/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fPlace = flag.String("marketplace", "", "wb | oz (overrides MARKETPLACE)")
		fModel = flag.String("model", "", "model override for summaries")
		fDB    = flag.String("db", "sellerbot.db", "sqlite path used when no SQL backend is configured")
	)
	flag.Parse()

	mustSetEnv("MARKETPLACE", *fPlace)
	mustSetEnv("SUMMARIES_MODEL", *fModel)

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "sellerbot-summarize").RequireSQL(*fDB), store.WithLogger(*l))
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

	sm := summariesmod.New(modkit.DepsFrom(*l, root, st), prompts, llm.New(lo), summariesmod.FromConfig(root))
	module.Register(sm.Name(), sm.Ports())
	ports := module.MustPortsOf[summariesmod.Ports](sm)

	start := time.Now()
	n, err := ports.Generator.Generate(logger.WithPlace(ctx, seller.Symbol().String()), seller)
	if err != nil {
		l.Fatal().Err(err).Int("summarized", n).Msg("summarize failed")
	}
	l.Info().Int("summarized", n).Dur("took", time.Since(start)).Msg("summarize done")
}
