package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project is a builder's development project grouping its inventory.
type Project struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BuilderID  string             `bson:"builderID" json:"builder_id"`
	Name       string             `bson:"name" json:"name"`
	City       string             `bson:"city" json:"city"`
	Locality   string             `bson:"locality" json:"locality"`
	Status     string             `bson:"status" json:"status"`
	TotalUnits int                `bson:"totalUnits" json:"total_units"`
	CreatedAt  time.Time          `bson:"createdAt" json:"created_at"`
}
