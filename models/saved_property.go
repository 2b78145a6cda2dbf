package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type SavedProperty struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     string             `bson:"userID" json:"user_id"`
	PropertyID primitive.ObjectID `bson:"propertyID" json:"property_id"`
	SavedAt    time.Time          `bson:"savedAt" json:"saved_at"`
}
