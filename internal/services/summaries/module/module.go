// Package module implements the product summaries module
package module

import (
	"net/http"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/httpkit"
	str "sellerbot/internal/platform/strings"
	"sellerbot/internal/services/summaries/domain"
	"sellerbot/internal/services/summaries/repo"
	"sellerbot/internal/services/summaries/service"
)

// Ports exposed by the summaries module
type Ports struct {
	Reader    domain.ReaderPort
	Generator domain.GeneratorPort
}

// Module implements the summaries module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports
}

// New constructs the module; deps.SQL is required
func New(deps modkit.Deps, prompts *prompt.Store, llm domain.Prompter, opts Options, mopts ...modkit.Option) *Module {
	if deps.SQL == nil {
		panic("summaries: sql store is required")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("summaries"),
		modkit.WithPrefix("/summary"),
	}, mopts...)...)

	log := deps.Log.With().Str("component", "summaries").Logger()
	svc := service.New(deps.SQL, repo.NewSQL(), repo.NewCache(deps.Redis, opts.CacheTTL), prompts, llm,
		service.Config{Model: opts.Model, Template: opts.Template}, &log)

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Reader: svc, Generator: svc},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.Or(m.name, "summaries") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes exposes GET {prefix}/{place}/{product_id}
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		httpkit.GetJSON(sub, "/{place}/{product_id}", func(req *http.Request) (any, error) {
			id := marketplace.SummaryID(marketplace.Symbol(httpkit.Param(req, "place")), httpkit.Param(req, "product_id"))
			return m.ports.Reader.Get(req.Context(), id)
		})
	})
}
