package controllers

import (
	"encoding/json"
	"net/http"
)

// Page serves a minimal shell for a browser-facing route. The interesting part
// is the route guard sitting in front of these handlers; the shells themselves
// just confirm which page was reached.
func Page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"page": name,
			"path": r.URL.Path,
		})
	}
}
