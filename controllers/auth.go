package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ContextKey string

const (
	UserIDKey    = ContextKey("userID")
	UserEmailKey = ContextKey("userEmail")
)

// SessionCookieName is the cookie the auth endpoints set alongside the bearer
// token so that page navigation carries the session too.
const SessionCookieName = "session"

type Response struct {
	Message string `json:"message"`
	Token   string `json:"token,omitempty"`
	Next    string `json:"next,omitempty"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

type registerPayload struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func RegisterUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload registerPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			log.Printf("Error decoding signup data: %v", err)
			http.Error(w, "Invalid request payload", http.StatusBadRequest)
			return
		}

		email := normalizeEmail(payload.Email)
		if email == "" || payload.Password == "" {
			http.Error(w, "Email and password are required", http.StatusBadRequest)
			return
		}

		exists := config.UserCollection.FindOne(r.Context(), bson.M{"email": email})
		if exists.Err() == nil {
			log.Printf("User email already exists: %s", email)
			http.Error(w, "Email already exists", http.StatusConflict)
			return
		}

		hashedPwd, err := utils.HashPassword(payload.Password)
		if err != nil {
			log.Printf("Error hashing password: %v", err)
			http.Error(w, "Failed to hash password", http.StatusInternalServerError)
			return
		}

		objectID := primitive.NewObjectID()
		user := models.User{
			ID:        objectID,
			UserID:    objectID.Hex(),
			Email:     email,
			Password:  hashedPwd,
			FullName:  strings.TrimSpace(payload.FirstName + " " + payload.LastName),
			CreatedAt: time.Now(),
		}

		if _, err := config.UserCollection.InsertOne(r.Context(), user); err != nil {
			log.Printf("Error inserting user into the database: %v", err)
			http.Error(w, "Failed to create user", http.StatusInternalServerError)
			return
		}

		next := "/role-selection"
		if isAdminEmail(email) {
			// Promotion failure fails the whole signup, even though the
			// credential record was created.
			if err := promoteAdminProfile(r.Context(), user.UserID, email, user.FullName); err != nil {
				log.Printf("Failed to create admin profile for %s: %v", email, err)
				http.Error(w, "Failed to create admin profile", http.StatusInternalServerError)
				return
			}
			next = "/admin"
		}

		token, err := utils.GenerateJWT(user.UserID, email)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, token)

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Response{Message: "User registered successfully", Token: token, Next: next})
	}
}

func LoginUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var credentials loginPayload
		if err := json.NewDecoder(r.Body).Decode(&credentials); err != nil {
			log.Printf("Error decoding login credentials: %v", err)
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		email := normalizeEmail(credentials.Email)

		var dbUser models.User
		err := config.UserCollection.FindOne(r.Context(), bson.M{"email": email}).Decode(&dbUser)
		if err != nil {
			log.Printf("User not found: %s", email)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		if !utils.CheckPasswordHash(credentials.Password, dbUser.Password) {
			log.Printf("Invalid credentials for user: %s", email)
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
			return
		}

		next := "/dashboard"
		if isAdminEmail(email) {
			// Upsert-as-override: any prior role for the configured admin
			// email is replaced on every successful login.
			if err := promoteAdminProfile(r.Context(), dbUser.UserID, email, dbUser.FullName); err != nil {
				log.Printf("Failed to promote admin profile for %s: %v", email, err)
				http.Error(w, "Failed to promote admin profile", http.StatusInternalServerError)
				return
			}
			next = "/admin"
		}

		token, err := utils.GenerateJWT(dbUser.UserID, email)
		if err != nil {
			log.Printf("Error generating JWT token: %v", err)
			http.Error(w, "Failed to generate token", http.StatusInternalServerError)
			return
		}
		setSessionCookie(w, token)

		json.NewEncoder(w).Encode(Response{Message: "Login successful", Token: token, Next: next})
	}
}

func LogoutUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
		})
		json.NewEncoder(w).Encode(Response{Message: "Signed out", Next: "/login"})
	}
}

type rolePayload struct {
	Role string `json:"role"`
}

// UpdateRole is the generic role-selection entry point. It rejects the admin
// role outright; the promotion rule in login/signup is the only path to admin.
func UpdateRole() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var payload rolePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		role, err := models.ParseRole(payload.Role)
		if err != nil {
			http.Error(w, "Unknown role", http.StatusBadRequest)
			return
		}
		if !role.SelfAssignable() {
			log.Printf("Blocked self-assignment of role %q by user %s", payload.Role, userID)
			http.Error(w, "Unauthorized: Cannot self-assign admin role", http.StatusForbidden)
			return
		}

		var dbUser models.User
		if err := config.UserCollection.FindOne(r.Context(), bson.M{"userID": userID}).Decode(&dbUser); err != nil {
			log.Printf("User lookup failed for %s: %v", userID, err)
			http.Error(w, "User not found", http.StatusUnauthorized)
			return
		}

		update := bson.M{"$set": bson.M{
			"userID":    userID,
			"email":     dbUser.Email,
			"fullName":  dbUser.FullName,
			"role":      role,
			"updatedAt": time.Now(),
		}}
		opts := options.Update().SetUpsert(true)
		if _, err := config.ProfileCollection.UpdateOne(r.Context(), bson.M{"userID": userID}, update, opts); err != nil {
			log.Printf("Error updating role for user %s: %v", userID, err)
			http.Error(w, "Failed to update role", http.StatusInternalServerError)
			return
		}

		next := "/dashboard"
		if role.RequiresKyc() {
			next = "/dashboard/kyc"
		}
		json.NewEncoder(w).Encode(Response{Message: "Role updated", Next: next})
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func isAdminEmail(email string) bool {
	admin := normalizeEmail(os.Getenv("ADMIN_EMAIL"))
	return admin != "" && normalizeEmail(email) == admin
}

// adminProfileUpdate is the upsert document applied by the promotion rule.
// It overrides any existing role and marks the profile verified.
func adminProfileUpdate(userID, email, fullName string) bson.M {
	return bson.M{"$set": bson.M{
		"userID":     userID,
		"email":      email,
		"fullName":   fullName,
		"role":       models.RoleAdmin,
		"isVerified": true,
		"updatedAt":  time.Now(),
	}}
}

func promoteAdminProfile(ctx context.Context, userID, email, fullName string) error {
	opts := options.Update().SetUpsert(true)
	_, err := config.ProfileCollection.UpdateOne(ctx, bson.M{"userID": userID}, adminProfileUpdate(userID, email, fullName), opts)
	return err
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int((15 * time.Minute).Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
