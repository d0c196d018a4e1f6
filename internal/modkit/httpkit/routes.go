package httpkit

import "net/http"

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r Router, prefix string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route(prefix, func(sub Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}

// Guarded groups routes behind a static bearer token; an empty token leaves them open
func Guarded(r Router, token string, fn func(Router)) {
	r.Group(func(g Router) {
		g.Use(Bearer(token))
		fn(g)
	})
}
