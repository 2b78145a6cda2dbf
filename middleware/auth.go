package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/controllers"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
)

// ResolveToken extracts the session token from the Authorization header or,
// failing that, the session cookie. Returns "" when neither is present.
func ResolveToken(r *http.Request) string {
	tokenHeader := r.Header.Get("Authorization")
	if tokenHeader != "" {
		tokenParts := strings.Split(tokenHeader, " ")
		if len(tokenParts) == 2 && tokenParts[0] == "Bearer" {
			return tokenParts[1]
		}
		return ""
	}

	cookie, err := r.Cookie(controllers.SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		token := ResolveToken(r)
		if token == "" {
			log.Printf("Missing session token from request %s %s", r.Method, r.URL)
			http.Error(w, "Missing session token", http.StatusUnauthorized)
			return
		}

		claims, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Invalid or expired token: %v", err)
			http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), controllers.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, controllers.UserEmailKey, claims.Email)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin gates a subrouter on the caller's profile role. The profile is
// read per request; an insufficient role answers 403 rather than redirecting
// since these are API routes.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(controllers.UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var profile models.Profile
		err := config.ProfileCollection.FindOne(r.Context(), bson.M{"userID": userID}).Decode(&profile)
		if err != nil || profile.Role != models.RoleAdmin {
			log.Printf("Admin route denied for user %s", userID)
			http.Error(w, "Admin access required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
