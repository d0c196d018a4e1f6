// Package api provides the HTTP API for the template web server
package api

import (
	"time"

	"sellerbot/internal/core/prompt"
	"sellerbot/internal/platform/config"
	"sellerbot/internal/platform/logger"
	phttp "sellerbot/internal/platform/net/http"
	"sellerbot/internal/platform/net/middleware"
	"sellerbot/internal/platform/store"

	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/httpkit"
	"sellerbot/internal/modkit/module"

	metamod "sellerbot/internal/services/api/meta/module"
	observermod "sellerbot/internal/services/observer/module"
	sumdomain "sellerbot/internal/services/summaries/domain"
	summariesmod "sellerbot/internal/services/summaries/module"
	templatesmod "sellerbot/internal/services/templates/module"
)

// Options are the API options
type Options struct {
	Service        string
	Config         config.Conf // root; modules read their own prefixes
	Store          *store.Store
	Logger         *logger.Logger
	Prompts        *prompt.Store
	LLM            sumdomain.Prompter
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	log := logger.Nop()
	if opt.Logger != nil {
		log = *opt.Logger
	}
	deps := modkit.DepsFrom(log, opt.Config, opt.Store)
	apiCfg := opt.Config.Prefix("CORE_API_")

	mods := []module.Module{
		metamod.New(deps, opt.Service),
		templatesmod.New(deps, opt.Prompts, templatesmod.FromConfig(opt.Config)),
	}
	if deps.SQL != nil {
		mods = append(mods,
			summariesmod.New(deps, opt.Prompts, opt.LLM, summariesmod.FromConfig(opt.Config)),
			observermod.NewReadOnly(deps),
		)
	} else {
		log.Warn().Msg("no sql backend configured; summary and answer routes are disabled")
	}

	r.Use(httpkit.CommonStack(
		apiCfg.MayDuration("TIMEOUT", 30*time.Second),
		middleware.CORSOptions{AllowedOrigins: apiCfg.MayCSV("CORS_ORIGINS", nil)},
	)...)
	r.NotFound(phttp.NotFound)
	r.MethodNotAllowed(phttp.MethodNotAllowed)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	r.Route("/api", func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())
			m.MountRoutes(api)
		}
	})
}
