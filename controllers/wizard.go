package controllers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/wizard"

	"github.com/redis/go-redis/v9"
)

// Wizard state lives in Redis per user. The listing insert at the final step
// is the only durable write in the whole flow; abandoned sessions just expire.
const (
	wizardKeyPrefix = "wizard:"
	wizardTTL       = 24 * time.Hour
)

type wizardStateResponse struct {
	Steps   []string        `json:"steps"`
	Step    int             `json:"step"`
	MinStep int             `json:"minStep"`
	Form    wizard.FormData `json:"form"`
}

type wizardSubmitResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Next    string `json:"next"`
}

func wizardKey(userID string) string {
	return wizardKeyPrefix + userID
}

func loadWizard(ctx context.Context, redisClient *redis.Client, userID string) (*wizard.Wizard, error) {
	data, err := redisClient.Get(ctx, wizardKey(userID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var w wizard.Wizard
	if err := json.Unmarshal([]byte(data), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func saveWizard(ctx context.Context, redisClient *redis.Client, userID string, w *wizard.Wizard) error {
	data, err := json.Marshal(w)
	if err != nil {
		return err
	}
	return redisClient.Set(ctx, wizardKey(userID), data, wizardTTL).Err()
}

func stateResponse(w *wizard.Wizard) wizardStateResponse {
	return wizardStateResponse{
		Steps:   wizard.Steps,
		Step:    w.Step,
		MinStep: wizard.MinStep,
		Form:    w.Form,
	}
}

// StartWizard opens a fresh post-property session. The starting role comes
// from the caller's profile; roles that cannot list default to owner.
func StartWizard(redisClient *redis.Client) http.HandlerFunc {
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

		wiz := wizard.New(role)
		if err := saveWizard(r.Context(), redisClient, userID, wiz); err != nil {
			log.Printf("Failed to save wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to start wizard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stateResponse(wiz)})
	}
}

func GetWizard(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		wiz, err := loadWizard(r.Context(), redisClient, userID)
		if err != nil {
			log.Printf("Failed to load wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to load wizard", http.StatusInternalServerError)
			return
		}
		if wiz == nil {
			http.Error(w, "Wizard not started", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stateResponse(wiz)})
	}
}

// UpdateWizardSlice replaces one named slice of the form data (role, details,
// media, amenities, contact) wholesale.
func UpdateWizardSlice(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		wiz, err := loadWizard(r.Context(), redisClient, userID)
		if err != nil {
			log.Printf("Failed to load wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to load wizard", http.StatusInternalServerError)
			return
		}
		if wiz == nil {
			http.Error(w, "Wizard not started", http.StatusNotFound)
			return
		}

		slice := strings.ToLower(mux.Vars(r)["slice"])
		var raw json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if err := wiz.SetSlice(slice, raw); err != nil {
			log.Printf("Rejected wizard slice update %q for user %s: %v", slice, userID, err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if err := saveWizard(r.Context(), redisClient, userID, wiz); err != nil {
			log.Printf("Failed to save wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to save wizard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stateResponse(wiz)})
	}
}

// AdvanceWizard moves the cursor forward; at the Publish step it submits
// instead. Submission validates locally first, then makes the single property
// insert, with status decided by the poster's verification flag. On insert
// failure the accumulated state is preserved for resubmission.
func AdvanceWizard(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		wiz, err := loadWizard(r.Context(), redisClient, userID)
		if err != nil {
			log.Printf("Failed to load wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to load wizard", http.StatusInternalServerError)
			return
		}
		if wiz == nil {
			http.Error(w, "Wizard not started", http.StatusNotFound)
			return
		}

		if submit := wiz.Next(); !submit {
			if err := saveWizard(r.Context(), redisClient, userID, wiz); err != nil {
				log.Printf("Failed to save wizard state for user %s: %v", userID, err)
				http.Error(w, "Failed to save wizard", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stateResponse(wiz)})
			return
		}

		if err := wiz.Validate(); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		profile, err := fetchProfile(r.Context(), userID)
		if err != nil {
			log.Printf("Profile fetch failed during submission for user %s: %v", userID, err)
			http.Error(w, "Unable to verify your profile status. Please try again.", http.StatusInternalServerError)
			return
		}

		listing, err := wiz.Listing(userID, profile.IsVerified)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		if _, err := config.PropertyCollection.InsertOne(r.Context(), listing); err != nil {
			log.Printf("Listing insert failed for user %s: %v", userID, err)
			http.Error(w, "Failed to submit property", http.StatusInternalServerError)
			return
		}

		if err := redisClient.Del(r.Context(), wizardKey(userID)).Err(); err != nil {
			log.Printf("Failed to clear wizard state for user %s: %v", userID, err)
		}
		invalidateSearchCache(redisClient)

		resp := wizardSubmitResponse{
			Success: true,
			Status:  listing.Status,
			Message: "Property published successfully.",
			Next:    "/search",
		}
		if listing.Status == models.StatusDraft {
			resp.Message = "Your property was saved as a draft. Complete verification to publish it."
			resp.Next = "/dashboard/properties"
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: resp})
	}
}

func BackWizard(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		wiz, err := loadWizard(r.Context(), redisClient, userID)
		if err != nil {
			log.Printf("Failed to load wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to load wizard", http.StatusInternalServerError)
			return
		}
		if wiz == nil {
			http.Error(w, "Wizard not started", http.StatusNotFound)
			return
		}

		wiz.Back()

		if err := saveWizard(r.Context(), redisClient, userID, wiz); err != nil {
			log.Printf("Failed to save wizard state for user %s: %v", userID, err)
			http.Error(w, "Failed to save wizard", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: stateResponse(wiz)})
	}
}
