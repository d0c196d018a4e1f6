package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"sellerbot/internal/adapters/llm"
	"sellerbot/internal/adapters/marketplace/sellers"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/module"
	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	"sellerbot/internal/platform/store"

	observermod "sellerbot/internal/services/observer/module"
	summariesmod "sellerbot/internal/services/summaries/module"
)

func mustSetEnv(key, val string) {
	if val != "" {
		_ = os.Setenv(key, val)
	}
}

func main() {
	var (
		fPlace   = flag.String("marketplace", "", "wb | oz (overrides MARKETPLACE)")
		fPublish = flag.Bool("publish", false, "post drafted answers back to the marketplace")
		fDB      = flag.String("db", "sellerbot.db", "sqlite path used when no SQL backend is configured")
	)
	flag.Parse()

	mustSetEnv("MARKETPLACE", *fPlace)
	if *fPublish {
		mustSetEnv("OBSERVER_PUBLISH_ANSWERS", "1")
	}

	root := config.New()
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "sellerbot-observer").RequireSQL(*fDB), store.WithLogger(*l))
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
	summaries := module.MustPortsOf[summariesmod.Ports](sm)

	om := observermod.New(deps, seller, summaries.Reader, prompts, ai, observermod.FromConfig(root))
	module.Register(om.Name(), om.Ports())
	ports := module.MustPortsOf[observermod.Ports](om)

	l.Info().Str("place", seller.Symbol().String()).Msg("observer starting")
	if err := ports.Runner.Run(logger.WithPlace(ctx, seller.Symbol().String())); err != nil {
		l.Fatal().Err(err).Msg("observer failed")
	}
}
