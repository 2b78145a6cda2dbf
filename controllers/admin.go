package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Admin endpoints. All of these sit behind the RequireAdmin middleware; the
// handlers assume the caller's role has already been checked.

func ListUsers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		findOptions := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
		cursor, err := config.ProfileCollection.Find(r.Context(), bson.M{}, findOptions)
		if err != nil {
			log.Printf("Failed to list profiles: %v", err)
			http.Error(w, "Failed to list users", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var profiles []models.Profile
		if err := cursor.All(r.Context(), &profiles); err != nil {
			log.Printf("Failed to decode profiles: %v", err)
			http.Error(w, "Failed to decode users", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: profiles})
	}
}

// VerifyUser sets the verification flag on a profile. This is what moves a
// poster from draft-only to publish-capable.
func VerifyUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setUserVerification(w, r, true)
	}
}

// BlockUser revokes verification, pushing the poster back to draft-only.
func BlockUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		setUserVerification(w, r, false)
	}
}

// verificationUpdate is the update document applied by verify and block.
func verificationUpdate(verified bool) bson.M {
	return bson.M{"$set": bson.M{"isVerified": verified, "updatedAt": time.Now()}}
}

func setUserVerification(w http.ResponseWriter, r *http.Request, verified bool) {
	targetID := mux.Vars(r)["id"]

	callerID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		http.Error(w, "User ID missing in context", http.StatusUnauthorized)
		return
	}
	// Admins cannot target their own profile, in either direction.
	if targetID == callerID {
		http.Error(w, "Admins cannot change their own verification", http.StatusForbidden)
		return
	}

	res, err := config.ProfileCollection.UpdateOne(r.Context(), bson.M{"userID": targetID}, verificationUpdate(verified))
	if err != nil {
		log.Printf("Verification update failed for user %s: %v", targetID, err)
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	if res.MatchedCount == 0 {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}

	message := "User verified"
	if !verified {
		message = "User blocked"
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: message})
}

func ListAllProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := bson.M{}
		if status := r.URL.Query().Get("status"); status != "" {
			query["status"] = status
		}

		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := config.PropertyCollection.Find(r.Context(), query, findOptions)
		if err != nil {
			log.Printf("Failed to list properties: %v", err)
			http.Error(w, "Failed to list properties", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var properties []models.Property
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Printf("Failed to decode properties: %v", err)
			http.Error(w, "Failed to decode properties", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: properties})
	}
}

type statusPayload struct {
	Status string `json:"status"`
}

// UpdatePropertyStatus moves a listing between draft, published and rejected.
func UpdatePropertyStatus(redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		var payload statusPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}
		switch payload.Status {
		case models.StatusDraft, models.StatusPublished, models.StatusRejected:
		default:
			http.Error(w, "Unknown status", http.StatusBadRequest)
			return
		}

		update := bson.M{"$set": bson.M{"status": payload.Status}}
		res, err := config.PropertyCollection.UpdateOne(r.Context(), bson.M{"_id": objID}, update)
		if err != nil {
			log.Printf("Status update failed for property %s: %v", propertyID, err)
			http.Error(w, "Failed to update status", http.StatusInternalServerError)
			return
		}
		if res.MatchedCount == 0 {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}

		invalidateSearchCache(redisClient)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Status updated"})
	}
}

func CreateInternalLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var lead models.InternalLead
		if err := json.NewDecoder(r.Body).Decode(&lead); err != nil {
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if lead.Name == "" {
			http.Error(w, "Name is required", http.StatusBadRequest)
			return
		}

		lead.ID = primitive.NewObjectID()
		if lead.Stage == "" {
			lead.Stage = "new"
		}
		lead.CreatedAt = time.Now()

		if _, err := config.InternalLeadCollection.InsertOne(r.Context(), lead); err != nil {
			log.Printf("Internal lead insert failed: %v", err)
			http.Error(w, "Failed to create lead", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Lead created", Data: lead})
	}
}

func ListInternalLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
		cursor, err := config.InternalLeadCollection.Find(r.Context(), bson.M{}, findOptions)
		if err != nil {
			log.Printf("Failed to list internal leads: %v", err)
			http.Error(w, "Failed to list leads", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var leads []models.InternalLead
		if err := cursor.All(r.Context(), &leads); err != nil {
			log.Printf("Failed to decode internal leads: %v", err)
			http.Error(w, "Failed to decode leads", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: leads})
	}
}
