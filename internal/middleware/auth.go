package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/stellaracademy/academy-be/internal/auth"
	"github.com/stellaracademy/academy-be/internal/http/respond"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the session claims attached by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*auth.Claims)
	return claims, ok
}

// RequireAuth rejects requests without a valid bearer token and attaches the
// decoded claims to the request context for downstream handlers. It makes no
// role-based decisions and touches no persisted state.
func RequireAuth(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				respond.Message(w, http.StatusUnauthorized, "No token, authorization denied")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				respond.Message(w, http.StatusUnauthorized, "Token is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(value, prefix) {
		return "", false
	}
	token := strings.TrimSpace(value[len(prefix):])
	if token == "" {
		return "", false
	}
	return token, true
}
