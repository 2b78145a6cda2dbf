package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func CreateBooking() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var booking models.Booking
		if err := json.NewDecoder(r.Body).Decode(&booking); err != nil {
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if booking.PropertyID.IsZero() {
			http.Error(w, "PropertyID is required", http.StatusBadRequest)
			return
		}

		booking.ID = primitive.NewObjectID()
		booking.UserID = userID
		booking.Status = models.BookingRequested
		booking.CreatedAt = time.Now()

		if _, err := config.BookingCollection.InsertOne(r.Context(), booking); err != nil {
			log.Printf("Booking insert failed for user %s: %v", userID, err)
			http.Error(w, "Failed to create booking", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Booking requested", Data: booking})
	}
}

func GetBookings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		listByField(w, r, config.BookingCollection, "userID", userID, &[]models.Booking{})
	}
}

type leadPayload struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// CreateLead records a visitor enquiry against a listing. It is a public
// endpoint; the lead is routed to the listing's owner.
func CreateLead() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		propertyID := mux.Vars(r)["id"]
		objID, err := primitive.ObjectIDFromHex(propertyID)
		if err != nil {
			http.Error(w, "Invalid property ID", http.StatusBadRequest)
			return
		}

		var payload leadPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if payload.Name == "" || (payload.Email == "" && payload.Phone == "") {
			http.Error(w, "Name and a contact detail are required", http.StatusBadRequest)
			return
		}

		var property models.Property
		if err := config.PropertyCollection.FindOne(r.Context(), bson.M{"_id": objID}).Decode(&property); err != nil {
			http.Error(w, "Property not found", http.StatusNotFound)
			return
		}

		lead := models.Lead{
			ID:         primitive.NewObjectID(),
			PropertyID: objID,
			OwnerID:    property.OwnerID,
			Name:       payload.Name,
			Email:      payload.Email,
			Phone:      payload.Phone,
			Message:    payload.Message,
			CreatedAt:  time.Now(),
		}

		if _, err := config.LeadCollection.InsertOne(r.Context(), lead); err != nil {
			log.Printf("Lead insert failed for property %s: %v", propertyID, err)
			http.Error(w, "Failed to record enquiry", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Enquiry sent"})
	}
}

// GetLeads lists enquiries against the caller's own listings.
func GetLeads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		listByField(w, r, config.LeadCollection, "ownerID", userID, &[]models.Lead{})
	}
}

func CreateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireBuilder(w, r)
		if !ok {
			return
		}

		var project models.Project
		if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if project.Name == "" {
			http.Error(w, "Project name is required", http.StatusBadRequest)
			return
		}

		project.ID = primitive.NewObjectID()
		project.BuilderID = userID
		project.CreatedAt = time.Now()

		if _, err := config.ProjectCollection.InsertOne(r.Context(), project); err != nil {
			log.Printf("Project insert failed for builder %s: %v", userID, err)
			http.Error(w, "Failed to create project", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Project created", Data: project})
	}
}

func GetProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireBuilder(w, r)
		if !ok {
			return
		}

		listByField(w, r, config.ProjectCollection, "builderID", userID, &[]models.Project{})
	}
}

func AddTeamMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireBuilder(w, r)
		if !ok {
			return
		}

		var member models.TeamMember
		if err := json.NewDecoder(r.Body).Decode(&member); err != nil {
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}
		if member.Name == "" || member.Email == "" {
			http.Error(w, "Name and email are required", http.StatusBadRequest)
			return
		}

		member.ID = primitive.NewObjectID()
		member.BuilderID = userID
		member.CreatedAt = time.Now()

		if _, err := config.TeamMemberCollection.InsertOne(r.Context(), member); err != nil {
			log.Printf("Team member insert failed for builder %s: %v", userID, err)
			http.Error(w, "Failed to add team member", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "Team member added", Data: member})
	}
}

func GetTeamMembers() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := requireBuilder(w, r)
		if !ok {
			return
		}

		listByField(w, r, config.TeamMemberCollection, "builderID", userID, &[]models.TeamMember{})
	}
}

// requireBuilder resolves the caller and checks the builder role. It writes
// the error response itself; callers bail out when ok is false.
func requireBuilder(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID, ok := r.Context().Value(UserIDKey).(string)
	if !ok {
		http.Error(w, "User ID missing in context", http.StatusUnauthorized)
		return "", false
	}

	profile, err := fetchProfile(r.Context(), userID)
	if err != nil || profile.Role != models.RoleBuilder {
		http.Error(w, "Builder account required", http.StatusForbidden)
		return "", false
	}
	return userID, true
}

// listByField runs the shared equality-filtered list query, newest first, and
// writes the JSON response.
func listByField(w http.ResponseWriter, r *http.Request, coll *mongo.Collection, field, value string, out interface{}) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := coll.Find(r.Context(), bson.M{field: value}, findOptions)
	if err != nil {
		log.Printf("List query failed on %s: %v", coll.Name(), err)
		http.Error(w, "Failed to fetch records", http.StatusInternalServerError)
		return
	}
	defer cursor.Close(r.Context())

	if err := cursor.All(r.Context(), out); err != nil {
		log.Printf("Decode failed on %s: %v", coll.Name(), err)
		http.Error(w, "Failed to decode records", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: out})
}
