package middleware

import (
	"net/http"
	"strings"

	"github.com/xspace-labs/xspace-backend/pkg/utils"
)

// TokenValidator reports whether a bearer token belongs to a logged-in
// operator.
type TokenValidator interface {
	Validate(token string) (string, bool)
}

// RequireToken guards console routes behind the token issued by /api/login.
func RequireToken(tokens TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				utils.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			if _, valid := tokens.Validate(token); !valid {
				utils.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
