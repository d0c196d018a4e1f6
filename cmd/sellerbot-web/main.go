package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"sellerbot/internal/adapters/llm"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit/repokit"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	phttp "sellerbot/internal/platform/net/http"
	"sellerbot/internal/platform/store"

	"sellerbot/internal/services/api"
)

func main() {
	root := config.New()
	// TEMPLATES_PORT wins over CORE_API_PORT so the editor keeps its old address
	srvCfg := root.Prefix("CORE_API_")
	if root.Has("TEMPLATES_PORT") {
		srvCfg = root.Prefix("TEMPLATES_")
	}

	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.ConfigFromEnv(root, "sellerbot-web"), store.WithLogger(*l))
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()
	repokit.MustGuard(ctx, st)

	prompts, err := prompt.Open(root.MayString("TEMPLATES_DIR", "templates"))
	if err != nil {
		l.Panic().Err(err).Msg("prompt.Open failed")
	}

	opt := api.Options{
		Service:        "sellerbot-web",
		Config:         root,
		Store:          st,
		Logger:         l,
		Prompts:        prompts,
		EnableProfiler: root.Prefix("CORE_API_").MayBool("PROFILER", false),
	}
	// the llm is only needed when summaries are generated; reads work without it
	if root.Has("AI_PROVIDER_BASE_URL") {
		o := llm.FromConfig(root)
		o.Log = logger.Named("llm")
		opt.LLM = llm.New(o)
	}

	srv := phttp.NewServer(srvCfg)
	api.Mount(srv.Router(), opt)

	l.Info().Str("addr", srv.Addr()).Str("templates", prompts.Dir()).Msg("template web server starting")
	if err := srv.Run(ctx); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
