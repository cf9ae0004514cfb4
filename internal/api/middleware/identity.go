package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type contextKey string

const identityKey contextKey = "identity"

const identityCookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// IdentityConfig controls the identity cookie issued by the middleware.
type IdentityConfig struct {
	CookieName string
	Secure     bool
}

// IdentityMiddleware assigns an anonymous persistent identity to every
// request. A request without the identity cookie receives a fresh opaque
// token; a replayed cookie is reused without a second Set-Cookie. The token
// is a continuity mechanism, not a security credential.
func IdentityMiddleware(cfg IdentityConfig) func(http.Handler) http.Handler {
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "carescript_uid"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var identity string

			if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
				identity = cookie.Value
			} else {
				identity = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     cookieName,
					Value:    identity,
					Path:     "/",
					MaxAge:   identityCookieMaxAge,
					HttpOnly: true,
					Secure:   cfg.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// IdentityFromContext returns the request's identity token.
func IdentityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}
