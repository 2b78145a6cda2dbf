package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/urbanest/marketplace/backend/utils"
)

type PathClass int

const (
	PathPublic PathClass = iota
	PathProtected
	PathAuthOnly
	PathStatic
)

var protectedPrefixes = []string{"/dashboard", "/role-selection", "/post-property"}

var authOnlyPrefixes = []string{"/login", "/signup"}

// ClassifyPath buckets a request path for the route guard. Static-asset paths
// (the reserved /static prefix, or any path whose last segment has a file
// extension) skip session resolution entirely; that is a performance shortcut,
// not a security boundary.
func ClassifyPath(path string) PathClass {
	if strings.HasPrefix(path, "/static/") {
		return PathStatic
	}
	if last := path[strings.LastIndex(path, "/")+1:]; strings.Contains(last, ".") {
		return PathStatic
	}
	for _, p := range protectedPrefixes {
		if strings.HasPrefix(path, p) {
			return PathProtected
		}
	}
	for _, p := range authOnlyPrefixes {
		if strings.HasPrefix(path, p) {
			return PathAuthOnly
		}
	}
	return PathPublic
}

// RouteGuard redirects unauthenticated callers away from protected pages and
// authenticated callers away from the login/signup pages. A token that fails
// validation counts as no session, so protected paths fail closed. The guard
// never mutates session state.
func RouteGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := ClassifyPath(r.URL.Path)
		if class == PathStatic {
			next.ServeHTTP(w, r)
			return
		}

		hasSession := false
		if token := ResolveToken(r); token != "" {
			if _, err := utils.ValidateJWT(token); err == nil {
				hasSession = true
			} else {
				log.Printf("Route guard: session resolution failed, treating as signed out: %v", err)
			}
		}

		if !hasSession && class == PathProtected {
			target := "/login?redirectedFrom=" + url.QueryEscape(r.URL.Path)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}

		if hasSession && class == PathAuthOnly {
			http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
			return
		}

		next.ServeHTTP(w, r)
	})
}
