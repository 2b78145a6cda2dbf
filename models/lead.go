package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lead is a contact enquiry from a visitor against a listing, routed to the
// listing's owner.
type Lead struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID `bson:"propertyID" json:"property_id"`
	OwnerID    string             `bson:"ownerID" json:"owner_id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Message    string             `bson:"message,omitempty" json:"message,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}

// InternalLead is a row in the platform's own sales pipeline, visible to
// admins only.
type InternalLead struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Stage      string             `bson:"stage" json:"stage"`
	AssignedTo string             `bson:"assignedTo,omitempty" json:"assigned_to,omitempty"`
	Notes      string             `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}
