// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"context"
	"net/http"
	"time"

	modkit "sellerbot/internal/modkit"
	"sellerbot/internal/modkit/httpkit"
	"sellerbot/internal/platform/store"
	str "sellerbot/internal/platform/strings"

	metahttp "sellerbot/internal/services/api/meta/http"
)

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(httpkit.Router)
}

// New constructs a meta module reporting on the backends in deps
func New(deps modkit.Deps, service string, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	started := time.Now()
	checks := Checks(deps)
	external := b.Register
	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		register: func(r httpkit.Router) {
			metahttp.Register(r, metahttp.Deps{ServiceName: service, StartedAt: started, Checks: checks})
			external(r)
		},
	}
}

// Checks builds readiness probes for every backend present in deps
func Checks(deps modkit.Deps) []metahttp.Check {
	var out []metahttp.Check
	add := func(name string, v any) {
		if p, ok := v.(store.Pinger); ok {
			out = append(out, metahttp.Check{Name: name, Ping: p.Ping})
		}
	}
	if deps.SQL != nil {
		add(string(deps.Dialect), deps.SQL)
	}
	if deps.CH != nil {
		add("clickhouse", deps.CH)
	}
	if deps.Bus != nil {
		add("nats", deps.Bus)
	}
	if deps.Redis != nil {
		rdb := deps.Redis
		out = append(out, metahttp.Check{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }})
	}
	return out
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) {
	modkit.Built{Name: m.name, Prefix: m.prefix, Mw: m.mws, Register: m.register}.Mount(r)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Or(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
