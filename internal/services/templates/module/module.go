// Package module wires the prompt template endpoints
package module

import (
	"net/http"

	"sellerbot/internal/core/prompt"
	"sellerbot/internal/modkit"
	"sellerbot/internal/modkit/httpkit"
	str "sellerbot/internal/platform/strings"
	tmplhttp "sellerbot/internal/services/templates/http"
)

// Module implements modkit.Module
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// New constructs the templates module; routes mount at the router root unless
// a prefix option is given
func New(deps modkit.Deps, store *prompt.Store, opts Options, mopts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("templates")}, mopts...)...)
	if opts.WriteToken == "" {
		deps.Log.Warn().Msg("TEMPLATES_WRITE_TOKEN is empty; template writes are unauthenticated")
	}
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		register: func(r httpkit.Router) {
			tmplhttp.Register(r, tmplhttp.Deps{Store: store, WriteToken: opts.WriteToken})
		},
	}
}

// Name satisfies modkit.Module
func (m *Module) Name() string { return str.Or(m.name, "templates") }

// Ports satisfies modkit.Module
func (m *Module) Ports() any { return nil }

// MountRoutes satisfies modkit.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	modkit.Built{Name: m.name, Prefix: m.prefix, Mw: m.mws, Register: m.register}.Mount(r)
}
