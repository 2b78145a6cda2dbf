package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanest/marketplace/backend/controllers"
	"github.com/urbanest/marketplace/backend/utils"
)

func TestClassifyPath(t *testing.T) {
	cases := []struct {
		path string
		want PathClass
	}{
		{"/", PathPublic},
		{"/search", PathPublic},
		{"/properties/abc123", PathPublic},
		{"/dashboard", PathProtected},
		{"/dashboard/properties", PathProtected},
		{"/role-selection", PathProtected},
		{"/post-property", PathProtected},
		{"/login", PathAuthOnly},
		{"/signup", PathAuthOnly},
		{"/static/css/site.css", PathStatic},
		{"/favicon.ico", PathStatic},
		{"/images/logo.png", PathStatic},
		{"/dashboard/report.pdf", PathStatic},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ClassifyPath(tc.path), "path %q", tc.path)
	}
}

func guardedHandler(t *testing.T) (http.Handler, *int) {
	t.Helper()
	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})
	return RouteGuard(next), &calls
}

func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateJWT("user-1", "user@example.com")
	require.NoError(t, err)
	return &http.Cookie{Name: controllers.SessionCookieName, Value: token}
}

func TestRouteGuardRedirectsSignedOutFromProtectedPath(t *testing.T) {
	handler, calls := guardedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/properties", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirectedFrom=%2Fdashboard%2Fproperties", rec.Header().Get("Location"))
	assert.Equal(t, 0, *calls)
}

func TestRouteGuardTreatsInvalidTokenAsSignedOut(t *testing.T) {
	handler, calls := guardedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: controllers.SessionCookieName, Value: "not-a-jwt"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login?redirectedFrom=%2Fdashboard", rec.Header().Get("Location"))
	assert.Equal(t, 0, *calls)
}

func TestRouteGuardRedirectsSignedInFromAuthOnlyPath(t *testing.T) {
	handler, calls := guardedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(sessionCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
	assert.Equal(t, 0, *calls)
}

func TestRouteGuardAllowsSignedInOnProtectedPath(t *testing.T) {
	handler, calls := guardedHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/role-selection", nil)
	req.AddCookie(sessionCookie(t))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
}

func TestRouteGuardAllowsSignedOutOnAuthOnlyAndPublicPaths(t *testing.T) {
	handler, calls := guardedHandler(t)

	for _, path := range []string{"/login", "/signup", "/", "/search"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %q", path)
	}
	assert.Equal(t, 4, *calls)
}

func TestRouteGuardPassesStaticPathsThrough(t *testing.T) {
	handler, calls := guardedHandler(t)

	// A garbage cookie must not matter on static paths: no session is
	// resolved for them at all.
	req := httptest.NewRequest(http.MethodGet, "/dashboard/export.csv", nil)
	req.AddCookie(&http.Cookie{Name: controllers.SessionCookieName, Value: "garbage"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, *calls)
}

func TestResolveTokenPrefersBearerHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	req.AddCookie(&http.Cookie{Name: controllers.SessionCookieName, Value: "cookie-token"})

	assert.Equal(t, "header-token", ResolveToken(req))
}

func TestResolveTokenFallsBackToCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.AddCookie(&http.Cookie{Name: controllers.SessionCookieName, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", ResolveToken(req))
}

func TestResolveTokenMalformedHeader(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Basic abc")

	assert.Equal(t, "", ResolveToken(req))
}
