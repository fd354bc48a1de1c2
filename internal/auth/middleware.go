package auth

import (
	"errors"
	"net/http"

	"github.com/gdg-garage/conference-api/internal/apperr"
)

// AuthMiddleware resolves the caller for plain chi routes and stores the
// identity in the request context. Session cookies with less than half of
// their lifetime left are reissued.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if apiKey := r.Header.Get(APIKeyHeader); apiKey != "" {
			id, err := h.authorizeAPIKey(r.Context(), apiKey)
			if err != nil {
				writeAuthError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
			return
		}

		cookie, err := r.Cookie(CookieName)
		if err != nil {
			http.Error(w, "Unauthorized: No token found", http.StatusUnauthorized)
			return
		}

		id, exp, err := h.parseToken(cookie.Value)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		if remaining := exp.Sub(h.now()); remaining < TokenDuration/2 {
			if fresh, err := h.GenerateToken(id); err == nil {
				h.setSessionCookie(w, fresh)
			}
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

func writeAuthError(w http.ResponseWriter, err error) {
	var authErr *apperr.AuthenticationError
	if errors.As(err, &authErr) {
		http.Error(w, "Unauthorized: "+authErr.Reason, http.StatusUnauthorized)
		return
	}
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}
