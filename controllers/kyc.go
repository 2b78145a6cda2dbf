package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type kycPayload struct {
	DocumentType  string   `json:"documentType"`
	DocumentURLs  []string `json:"documentUrls"`
	Pan           string   `json:"pan"`
	Aadhaar       string   `json:"aadhaar"`
	LicenseNumber string   `json:"licenseNumber"`
}

// SubmitKyc records a verification request. The required metadata depends on
// the caller's role: agents submit PAN and Aadhaar, builders a license number.
// Records always start pending; review happens out of band.
func SubmitKyc() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		profile, err := fetchProfile(r.Context(), userID)
		if err != nil {
			log.Printf("Profile fetch failed for KYC submission by %s: %v", userID, err)
			http.Error(w, "Profile not set up", http.StatusForbidden)
			return
		}
		if !profile.Role.RequiresKyc() {
			http.Error(w, "KYC applies to agent and builder accounts", http.StatusForbidden)
			return
		}

		var payload kycPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "Invalid payload", http.StatusBadRequest)
			return
		}

		if payload.DocumentType == "" || len(payload.DocumentURLs) == 0 {
			http.Error(w, "Document type and documents are required", http.StatusBadRequest)
			return
		}

		switch profile.Role {
		case models.RoleAgent:
			if payload.Pan == "" || payload.Aadhaar == "" {
				http.Error(w, "PAN and Aadhaar are required for agent verification", http.StatusBadRequest)
				return
			}
		case models.RoleBuilder:
			if payload.LicenseNumber == "" {
				http.Error(w, "License number is required for builder verification", http.StatusBadRequest)
				return
			}
		}

		record := models.KycRecord{
			ID:           primitive.NewObjectID(),
			UserID:       userID,
			DocumentType: payload.DocumentType,
			DocumentURLs: payload.DocumentURLs,
			Status:       models.KycStatusPending,
			Metadata: models.KycMetadata{
				Pan:           payload.Pan,
				Aadhaar:       payload.Aadhaar,
				LicenseNumber: payload.LicenseNumber,
			},
			SubmittedAt: time.Now(),
		}

		if _, err := config.KycCollection.InsertOne(r.Context(), record); err != nil {
			log.Printf("KYC insert failed for user %s: %v", userID, err)
			http.Error(w, "Failed to submit KYC", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Message: "KYC submitted", Data: record})
	}
}

// GetKycStatus returns the caller's most recent KYC record.
func GetKycStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := r.Context().Value(UserIDKey).(string)
		if !ok {
			http.Error(w, "User ID missing in context", http.StatusUnauthorized)
			return
		}

		opts := options.FindOne().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
		var record models.KycRecord
		err := config.KycCollection.FindOne(r.Context(), bson.M{"userID": userID}, opts).Decode(&record)
		if err == mongo.ErrNoDocuments {
			http.Error(w, "No KYC record found", http.StatusNotFound)
			return
		}
		if err != nil {
			log.Printf("KYC lookup failed for user %s: %v", userID, err)
			http.Error(w, "Failed to fetch KYC record", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.APIResponse{Success: true, Data: record})
	}
}
