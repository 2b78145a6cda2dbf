package models

import "time"

// Profile is the application-level user record, distinct from the User
// credential record. Exactly one profile exists per user id.
type Profile struct {
	UserID     string    `bson:"userID" json:"id"`
	Email      string    `bson:"email" json:"email"`
	FullName   string    `bson:"fullName" json:"full_name"`
	Role       Role      `bson:"role" json:"role"`
	IsVerified bool      `bson:"isVerified" json:"is_verified"`
	UpdatedAt  time.Time `bson:"updatedAt" json:"updated_at"`
}
