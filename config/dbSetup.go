package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	UserCollection          *mongo.Collection
	ProfileCollection       *mongo.Collection
	PropertyCollection      *mongo.Collection
	SavedPropertyCollection *mongo.Collection
	BookingCollection       *mongo.Collection
	LeadCollection          *mongo.Collection
	InternalLeadCollection  *mongo.Collection
	ProjectCollection       *mongo.Collection
	TeamMemberCollection    *mongo.Collection
	KycCollection           *mongo.Collection
)

func ConnectDB() (*mongo.Client, error) {
	MONGO_URI := os.Getenv("MONGOURI")
	if MONGO_URI == "" {
		return nil, fmt.Errorf("MONGO_URI not set in environment")
	}

	clientOptions := options.Client().ApplyURI(MONGO_URI)
	client, err := mongo.Connect(context.TODO(), clientOptions)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("MongoDB ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	return client, nil
}

func InitCollections(client *mongo.Client) {
	dbName := os.Getenv("DB")
	UserCollection = client.Database(dbName).Collection("users")
	ProfileCollection = client.Database(dbName).Collection("profiles")
	PropertyCollection = client.Database(dbName).Collection("properties")
	SavedPropertyCollection = client.Database(dbName).Collection("saved_properties")
	BookingCollection = client.Database(dbName).Collection("bookings")
	LeadCollection = client.Database(dbName).Collection("leads")
	InternalLeadCollection = client.Database(dbName).Collection("internal_leads")
	ProjectCollection = client.Database(dbName).Collection("projects")
	TeamMemberCollection = client.Database(dbName).Collection("team_members")
	KycCollection = client.Database(dbName).Collection("kyc_records")
}

func CloseDBConnection(client *mongo.Client) {
	if err := client.Disconnect(context.TODO()); err != nil {
		log.Fatalf("Error closing database connection: %v", err)
	}
	log.Println("MongoDB connection closed")
}
