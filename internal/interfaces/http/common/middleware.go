package common

import (
	"log/slog"
	"net/http"

	"github.com/sngm3741/delight-spot/api/internal/public/application"
)

// RequireAuth rejects anonymous requests.
func RequireAuth(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !PrincipalFromContext(r.Context()).Authenticated() {
				WriteError(logger, w, r, application.ErrAuthenticationFailed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireToken rejects requests that did not present a signed token.
func RequireToken(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if CredentialFromContext(r.Context()).Source != SourceToken {
				WriteError(logger, w, r, application.ErrAuthenticationFailed)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
