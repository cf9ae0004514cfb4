package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescript/backend/internal/api/middleware"
)

func TestIdentityMiddleware_IssuesCookieOnce(t *testing.T) {
	var seen []string
	handler := middleware.IdentityMiddleware(middleware.IdentityConfig{CookieName: "carescript_uid"})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = append(seen, middleware.IdentityFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		}),
	)

	// First request: no cookie, one gets issued.
	first := httptest.NewRecorder()
	handler.ServeHTTP(first, httptest.NewRequest("GET", "/api/me", nil))

	cookies := first.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, "carescript_uid", cookie.Name)
	assert.NotEmpty(t, cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, 365*24*60*60, cookie.MaxAge)

	// Second request replays the cookie: same identity, no second Set-Cookie.
	req := httptest.NewRequest("GET", "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: cookie.Name, Value: cookie.Value})
	second := httptest.NewRecorder()
	handler.ServeHTTP(second, req)

	assert.Empty(t, second.Result().Cookies())
	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestIdentityMiddleware_SecureFlagInProduction(t *testing.T) {
	handler := middleware.IdentityMiddleware(middleware.IdentityConfig{CookieName: "carescript_uid", Secure: true})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}),
	)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest("GET", "/", nil))

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}
