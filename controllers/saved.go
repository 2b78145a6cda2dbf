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
)

func AddSavedProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		var saved models.SavedProperty
		if err := json.NewDecoder(r.Body).Decode(&saved); err != nil {
			log.Println("Invalid request data ", err)
			http.Error(w, "Invalid request data", http.StatusBadRequest)
			return
		}

		if saved.PropertyID.IsZero() {
			log.Println("PropertyID is required")
			http.Error(w, "PropertyID is required", http.StatusBadRequest)
			return
		}

		saved.UserID = userID
		saved.ID = primitive.NewObjectID()
		saved.SavedAt = time.Now()

		var existing models.SavedProperty
		err := config.SavedPropertyCollection.FindOne(r.Context(), bson.M{"userID": userID, "propertyID": saved.PropertyID}).Decode(&existing)
		if err == nil {
			log.Println("Property is already saved")
			http.Error(w, "Property is already saved", http.StatusConflict)
			return
		}
		if err != mongo.ErrNoDocuments {
			log.Println("Failed to check saved properties ", err)
			http.Error(w, "Failed to check saved properties", http.StatusInternalServerError)
			return
		}

		_, err = config.SavedPropertyCollection.InsertOne(r.Context(), saved)
		if err != nil {
			log.Println("Failed to save property ", err)
			http.Error(w, "Failed to save property", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property saved",
			Data:    saved,
		})
	}
}

func GetSavedProperties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		pipeline := mongo.Pipeline{
			{
				{Key: "$match", Value: bson.M{"userID": userID}},
			},
			{
				{Key: "$lookup", Value: bson.M{
					"from":         "properties",
					"localField":   "propertyID",
					"foreignField": "_id",
					"as":           "propertyDetails",
				}},
			},
			{
				{Key: "$unwind", Value: "$propertyDetails"},
			},
			{
				{Key: "$replaceRoot", Value: bson.M{"newRoot": "$propertyDetails"}},
			},
		}

		cursor, err := config.SavedPropertyCollection.Aggregate(r.Context(), pipeline)
		if err != nil {
			log.Println("Failed to fetch saved properties ", err)
			http.Error(w, "Failed to fetch saved properties", http.StatusInternalServerError)
			return
		}
		defer cursor.Close(r.Context())

		var properties []models.Property
		if err := cursor.All(r.Context(), &properties); err != nil {
			log.Println("Failed to decode saved properties ", err)
			http.Error(w, "Failed to decode saved properties", http.StatusInternalServerError)
			return
		}

		for i := range properties {
			properties[i].IsSaved = true
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Fetched saved properties",
			Data:    properties,
		})
	}
}

func RemoveSavedProperty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			log.Println("User ID missing in context")
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		params := mux.Vars(r)
		propertyIDHex := params["propertyID"]

		propertyObjID, err := primitive.ObjectIDFromHex(propertyIDHex)
		if err != nil {
			log.Println("Invalid property ID format ", err)
			http.Error(w, "Invalid property ID format", http.StatusBadRequest)
			return
		}

		deleteResult, err := config.SavedPropertyCollection.DeleteOne(r.Context(), bson.M{
			"userID":     userID,
			"propertyID": propertyObjID,
		})
		if err != nil {
			log.Println("Failed to remove saved property ", err)
			http.Error(w, "Failed to remove saved property", http.StatusInternalServerError)
			return
		}

		if deleteResult.DeletedCount == 0 {
			log.Println("Saved property not found")
			http.Error(w, "Saved property not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{
			Success: true,
			Message: "Property removed from saved list",
		})
	}
}
