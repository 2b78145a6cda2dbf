package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing lifecycle statuses. Unverified posters can create but not publish:
// their listings land as drafts until verification completes.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusRejected  = "rejected"
)

type AddressDetails struct {
	City     string `bson:"city" json:"city"`
	Locality string `bson:"locality" json:"locality"`
	Landmark string `bson:"landmark,omitempty" json:"landmark,omitempty"`
}

type PropertyMedia struct {
	Photos     []string `bson:"photos" json:"photos"`
	FloorPlans []string `bson:"floorPlans" json:"floor_plans"`
}

type ContactPrefs struct {
	Call     bool `bson:"call" json:"call"`
	Whatsapp bool `bson:"whatsapp" json:"whatsapp"`
	Chat     bool `bson:"chat" json:"chat"`
}

type Property struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID      string             `bson:"ownerId" json:"owner_id"`
	PosterRole   string             `bson:"posterRole" json:"poster_role"`
	ListingType  string             `bson:"listingType" json:"listing_type"` // Sell | Rent
	Category     string             `bson:"propertyCategory" json:"property_category"`
	Type         string             `bson:"propertyType" json:"property_type"`
	Bhk          string             `bson:"bhk" json:"bhk"`
	AreaSqFt     float64            `bson:"areaSqft" json:"area_sqft"`
	Price        float64            `bson:"price" json:"price"`
	Address      AddressDetails     `bson:"addressDetails" json:"address_details"`
	Amenities    []string           `bson:"amenities" json:"amenities"`
	ContactPrefs ContactPrefs       `bson:"contactPrefs" json:"contact_prefs"`
	Media        PropertyMedia      `bson:"media" json:"media"`
	Status       string             `bson:"status" json:"status"`
	CreatedAt    time.Time          `bson:"createdAt" json:"created_at"`
	IsSaved      bool               `bson:"-" json:"is_saved,omitempty"`
}
