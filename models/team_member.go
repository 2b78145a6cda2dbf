package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TeamMember struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuilderID   string             `bson:"builderID" json:"builder_id"`
	Name        string             `bson:"name" json:"name"`
	Email       string             `bson:"email" json:"email"`
	Phone       string             `bson:"phone,omitempty" json:"phone,omitempty"`
	Designation string             `bson:"designation,omitempty" json:"designation,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"created_at"`
}
