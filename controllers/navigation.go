package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/urbanest/marketplace/backend/models"
)

type navEntry struct {
	Title  string `json:"title"`
	Path   string `json:"path"`
	Active bool   `json:"active"`
}

// GetNavigation returns the sidebar menu for the caller's role. A missing
// profile resolves to the buyer menu. The optional path parameter marks the
// active entry by exact match.
func GetNavigation() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var role models.Role
		if profile, err := fetchProfile(r.Context(), userID); err == nil {
			role = profile.Role
		}

		path := r.URL.Query().Get("path")
		items := models.ResolveNavigation(role)

		entries := make([]navEntry, 0, len(items))
		for _, item := range items {
			entries = append(entries, navEntry{
				Title:  item.Title,
				Path:   item.Path,
				Active: item.IsActive(path),
			})
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: entries})
	}
}
