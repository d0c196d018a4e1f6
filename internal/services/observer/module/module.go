// Package module implements the feedback observer module
package module

import (
	"net/http"
	"strconv"

	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/httpkit"
	str "sellerbot/internal/platform/strings"
	"sellerbot/internal/services/observer/domain"
	"sellerbot/internal/services/observer/repo"
	"sellerbot/internal/services/observer/service"
	sumdomain "sellerbot/internal/services/summaries/domain"
)

// Ports exposed by the observer module
type Ports struct {
	Runner domain.RunnerPort
	Query  domain.QueryPort
}

// Module implements the observer module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler
	ports  Ports
}

// New constructs the module; deps.SQL is required, CH and Bus are optional
func New(
	deps modkit.Deps,
	seller marketplace.Seller,
	summaries sumdomain.ReaderPort,
	prompts *prompt.Store,
	llm domain.Prompter,
	opts Options,
	mopts ...modkit.Option,
) *Module {
	if deps.SQL == nil {
		panic("observer: sql store is required")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("observer"),
		modkit.WithPrefix("/answers"),
	}, mopts...)...)

	log := deps.Log.With().Str("component", "observer").Logger()
	svc := service.New(seller, deps.SQL, repo.NewSQL(), summaries, prompts, llm,
		repo.NewJournal(deps.CH), deps.Bus,
		service.Config{
			Model:            opts.Model,
			QuestionInterval: opts.QuestionInterval,
			ReviewInterval:   opts.ReviewInterval,
			ProbeLimit:       uint32(max(opts.ProbeLimit, 0)),
			RingSize:         opts.RingSize,
			RestartDelay:     opts.RestartDelay,
			Publish:          opts.Publish,
			QuestionTemplate: opts.QuestionTemplate,
			ReviewTemplate:   opts.ReviewTemplate,
		}, &log)

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Runner: svc, Query: svc},
	}
}

// NewReadOnly constructs a module that only serves stored answers
func NewReadOnly(deps modkit.Deps, mopts ...modkit.Option) *Module {
	if deps.SQL == nil {
		panic("observer: sql store is required")
	}
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("observer"),
		modkit.WithPrefix("/answers"),
	}, mopts...)...)
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		ports:  Ports{Query: service.NewQuery(deps.SQL, repo.NewSQL())},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.Or(m.name, "observer") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes exposes GET {prefix}?limit=N with the latest answers
func (m *Module) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, m.prefix, m.mws, func(sub httpkit.Router) {
		httpkit.GetJSON(sub, "/", func(req *http.Request) (any, error) {
			limit, _ := strconv.Atoi(req.URL.Query().Get("limit"))
			return m.ports.Query.Recent(req.Context(), limit)
		})
	})
}
