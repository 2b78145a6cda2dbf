package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	KycStatusPending  = "pending"
	KycStatusApproved = "approved"
	KycStatusRejected = "rejected"
)

// KycMetadata carries the role-specific verification fields: agents submit
// PAN and Aadhaar, builders a license number.
type KycMetadata struct {
	Pan           string `bson:"pan,omitempty" json:"pan,omitempty"`
	Aadhaar       string `bson:"aadhaar,omitempty" json:"aadhaar,omitempty"`
	LicenseNumber string `bson:"licenseNumber,omitempty" json:"licenseNumber,omitempty"`
}

type KycRecord struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID       string             `bson:"userID" json:"user_id"`
	DocumentType string             `bson:"documentType" json:"document_type"`
	DocumentURLs []string           `bson:"documentUrls" json:"document_urls"`
	Status       string             `bson:"status" json:"status"`
	Metadata     KycMetadata        `bson:"metadata" json:"metadata"`
	SubmittedAt  time.Time          `bson:"submittedAt" json:"submitted_at"`
}
