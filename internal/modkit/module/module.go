// Package module holds the module contract and the process-wide ports registry
package module

import phttp "sellerbot/internal/platform/net/http"

// Module mounts its routes and exposes a ports value other modules wire against
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}
