package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/utils"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fetchProfile reads the caller's profile with the idempotent-read retry
// policy. A missing profile is not retried; it returns mongo.ErrNoDocuments.
func fetchProfile(ctx context.Context, userID string) (models.Profile, error) {
	var profile models.Profile
	err := utils.Do(ctx, utils.ReadAttempts, utils.ReadBaseDelay, func(ctx context.Context) error {
		findErr := config.ProfileCollection.FindOne(ctx, bson.M{"userID": userID}).Decode(&profile)
		if findErr == mongo.ErrNoDocuments {
			profile = models.Profile{}
			return nil
		}
		return findErr
	})
	if err != nil {
		return models.Profile{}, err
	}
	if profile.UserID == "" {
		return models.Profile{}, mongo.ErrNoDocuments
	}
	return profile, nil
}

func GetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		profile, err := fetchProfile(r.Context(), userID)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "Profile not set up", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("Profile fetch failed for user %s: %v", userID, err)
			http.Error(w, "Failed to fetch profile", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: profile})
	}
}

type profileUpdatePayload struct {
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

// UpdateProfile changes the display name and, optionally, the role. Role
// changes go through the same self-assignment guard as role selection.
func UpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var payload profileUpdatePayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		set := bson.M{"updatedAt": time.Now()}
		if payload.FullName != "" {
			set["fullName"] = payload.FullName
		}
		if payload.Role != "" {
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
			set["role"] = role
		}

		res, err := config.ProfileCollection.UpdateOne(r.Context(), bson.M{"userID": userID}, bson.M{"$set": set})
		if err != nil {
			log.Printf("Profile update failed for user %s: %v", userID, err)
			http.Error(w, "Failed to update profile", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Profile not set up", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Profile updated"})
	}
}
