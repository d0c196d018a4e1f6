package httpkit

import (
	"net/http"
	"time"

	"sellerbot/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware for an HTTP binary
func CommonStack(timeout time.Duration, cors middleware.CORSOptions) []func(http.Handler) http.Handler {
	stack := middleware.Defaults(timeout)
	return append(stack,
		middleware.CORS(cors),
		middleware.Heartbeat("/health"),
	)
}

// Bearer wires the static token guard
func Bearer(token string) func(http.Handler) http.Handler {
	return middleware.BearerToken(token)
}
