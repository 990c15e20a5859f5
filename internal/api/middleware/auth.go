package middleware

import (
	"net/http"

	"autoshop/internal/api/util"
	"autoshop/internal/auth"
)

type AuthMiddleware struct {
	tokens *auth.TokenManager
}

func NewAuthMiddleware(tokens *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{
		tokens: tokens,
	}
}

// Authenticate verifies the x-auth-token header and attaches the
// decoded identity to the request context.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("x-auth-token")
		if token == "" {
			util.WriteMessage(w, http.StatusUnauthorized, "No token, authorization denied")
			return
		}

		identity, err := m.tokens.Verify(token)
		if err != nil {
			util.WriteMessage(w, http.StatusUnauthorized, "Token is not valid")
			return
		}

		ctx := auth.WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must be stacked after Authenticate; it assumes the
// identity is already attached.
func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.IdentityFromContext(r.Context())
		if !ok || !identity.Admin {
			util.WriteMessage(w, http.StatusForbidden, "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}
