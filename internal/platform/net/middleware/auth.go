package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "sellerbot/internal/platform/errors"
	phttp "sellerbot/internal/platform/net/http"
)

// BearerToken guards mutating routes with a static token; an empty token disables the check
func BearerToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if token == "" {
			return next
		}
		want := []byte(token)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || subtle.ConstantTimeCompare([]byte(strings.TrimSpace(got)), want) != 1 {
				phttp.RespondError(w, r, perr.New(perr.ErrorCodeUnauthorized, "missing or invalid bearer token"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
