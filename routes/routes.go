package routes

import (
	"github.com/gorilla/mux"
	"github.com/redis/go-redis/v9"
	"github.com/urbanest/marketplace/backend/controllers"
	"github.com/urbanest/marketplace/backend/middleware"
	"go.mongodb.org/mongo-driver/mongo"
)

func Routes(router *mux.Router, client *mongo.Client, redisClient *redis.Client) {
	// Auth routes
	router.HandleFunc("/register", controllers.RegisterUser()).Methods("POST")
	router.HandleFunc("/login", controllers.LoginUser()).Methods("POST")

	// Public search surface
	router.HandleFunc("/search", controllers.SearchProperties(redisClient)).Methods("GET")
	router.HandleFunc("/search/locations", controllers.AutoCompleteLocations()).Methods("GET")
	router.HandleFunc("/search/trending", controllers.TrendingLocalities()).Methods("GET")
	router.HandleFunc("/properties/{id}", controllers.GetPropertyByID()).Methods("GET")
	router.HandleFunc("/properties/{id}/leads", controllers.CreateLead()).Methods("POST")

	// Browser-facing pages behind the route guard
	pages := router.NewRoute().Subrouter()
	pages.Use(middleware.RouteGuard)
	pages.HandleFunc("/", controllers.Page("home")).Methods("GET")
	pages.HandleFunc("/login", controllers.Page("login")).Methods("GET")
	pages.HandleFunc("/signup", controllers.Page("signup")).Methods("GET")
	pages.HandleFunc("/role-selection", controllers.Page("role-selection")).Methods("GET")
	pages.HandleFunc("/post-property", controllers.Page("post-property")).Methods("GET")
	pages.HandleFunc("/dashboard", controllers.Page("dashboard")).Methods("GET")
	pages.PathPrefix("/dashboard/").HandlerFunc(controllers.Page("dashboard")).Methods("GET")

	// Routes that require authentication
	authenticated := router.PathPrefix("/api").Subrouter()
	authenticated.Use(middleware.AuthMiddleware)

	authenticated.HandleFunc("/logout", controllers.LogoutUser()).Methods("POST")
	authenticated.HandleFunc("/role", controllers.UpdateRole()).Methods("POST")
	authenticated.HandleFunc("/profile", controllers.GetProfile()).Methods("GET")
	authenticated.HandleFunc("/profile", controllers.UpdateProfile()).Methods("PUT")
	authenticated.HandleFunc("/navigation", controllers.GetNavigation()).Methods("GET")

	// Post-property wizard
	authenticated.HandleFunc("/post-property", controllers.StartWizard(redisClient)).Methods("POST")
	authenticated.HandleFunc("/post-property", controllers.GetWizard(redisClient)).Methods("GET")
	authenticated.HandleFunc("/post-property/next", controllers.AdvanceWizard(redisClient)).Methods("POST")
	authenticated.HandleFunc("/post-property/back", controllers.BackWizard(redisClient)).Methods("POST")
	authenticated.HandleFunc("/post-property/{slice}", controllers.UpdateWizardSlice(redisClient)).Methods("PUT")

	// Property routes (owner-scoped)
	authenticated.HandleFunc("/properties", controllers.GetMyProperties()).Methods("GET")
	authenticated.HandleFunc("/properties/{id}", controllers.UpdateProperty(redisClient)).Methods("PUT")
	authenticated.HandleFunc("/properties/{id}", controllers.DeleteProperty(redisClient)).Methods("DELETE")

	// Saved properties
	authenticated.HandleFunc("/saved-properties", controllers.AddSavedProperty()).Methods("POST")
	authenticated.HandleFunc("/saved-properties", controllers.GetSavedProperties()).Methods("GET")
	authenticated.HandleFunc("/saved-properties/{propertyID}", controllers.RemoveSavedProperty()).Methods("DELETE")

	// Bookings and leads
	authenticated.HandleFunc("/bookings", controllers.CreateBooking()).Methods("POST")
	authenticated.HandleFunc("/bookings", controllers.GetBookings()).Methods("GET")
	authenticated.HandleFunc("/leads", controllers.GetLeads()).Methods("GET")

	// Builder dashboard
	authenticated.HandleFunc("/projects", controllers.CreateProject()).Methods("POST")
	authenticated.HandleFunc("/projects", controllers.GetProjects()).Methods("GET")
	authenticated.HandleFunc("/team", controllers.AddTeamMember()).Methods("POST")
	authenticated.HandleFunc("/team", controllers.GetTeamMembers()).Methods("GET")

	// KYC
	authenticated.HandleFunc("/kyc", controllers.SubmitKyc()).Methods("POST")
	authenticated.HandleFunc("/kyc", controllers.GetKycStatus()).Methods("GET")

	// Admin routes
	admin := authenticated.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", controllers.ListUsers()).Methods("GET")
	admin.HandleFunc("/users/{id}/verify", controllers.VerifyUser()).Methods("POST")
	admin.HandleFunc("/users/{id}/block", controllers.BlockUser()).Methods("POST")
	admin.HandleFunc("/properties", controllers.ListAllProperties()).Methods("GET")
	admin.HandleFunc("/properties/{id}/status", controllers.UpdatePropertyStatus(redisClient)).Methods("PUT")
	admin.HandleFunc("/leads", controllers.CreateInternalLead()).Methods("POST")
	admin.HandleFunc("/leads", controllers.ListInternalLeads()).Methods("GET")
}
