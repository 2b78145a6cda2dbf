// Package wizard implements the six-step post-property flow: a numeric cursor
// over a fixed step sequence accumulating one form-data object, submitted as a
// single listing insert at the final step.
package wizard

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/urbanest/marketplace/backend/models"
)

var Steps = []string{"Role", "Details", "Media", "Amenities", "Contact", "Publish"}

// MinStep is where the flow begins: the role step is resolved from the
// caller's profile, so manual role selection is skipped.
const MinStep = 2

var placeholderPhoto = "/placeholder-house.jpg"

type Details struct {
	ListingType string `json:"listingType,omitempty"` // Sell | Rent
	Category    string `json:"category,omitempty"`    // Residential | Commercial
	Type        string `json:"type,omitempty"`
	Bhk         string `json:"bhk,omitempty"`
	Area        string `json:"area,omitempty"`
	Price       string `json:"price,omitempty"`
	City        string `json:"city,omitempty"`
	Locality    string `json:"locality,omitempty"`
	Landmark    string `json:"landmark,omitempty"`
}

type Media struct {
	Photos     []string `json:"photos"`
	FloorPlans []string `json:"floor_plans"`
}

type Contact struct {
	Call     bool `json:"call"`
	Whatsapp bool `json:"whatsapp"`
	Chat     bool `json:"chat"`
}

type FormData struct {
	Role      string   `json:"role"`
	Details   Details  `json:"details"`
	Media     Media    `json:"media"`
	Amenities []string `json:"amenities"`
	Contact   Contact  `json:"contact"`
}

// Wizard is the in-flight state of one post-property session. It performs no
// I/O; persistence of the state between requests is the caller's concern.
type Wizard struct {
	Step int      `json:"step"`
	Form FormData `json:"form"`
}

// New starts a wizard for a caller with the given profile role. Roles that can
// list keep their role; everything else defaults to owner. The cursor starts
// at MinStep either way.
func New(role models.Role) *Wizard {
	if !role.CanList() {
		role = models.RoleOwner
	}
	return &Wizard{
		Step: MinStep,
		Form: FormData{
			Role: string(role),
			Details: Details{
				ListingType: "Sell",
				Category:    "Residential",
			},
			Media: Media{
				Photos:     []string{},
				FloorPlans: []string{},
			},
			Amenities: []string{},
			Contact: Contact{
				Call:     true,
				Whatsapp: true,
				Chat:     true,
			},
		},
	}
}

// AtFinalStep reports whether the cursor sits on the Publish step.
func (w *Wizard) AtFinalStep() bool {
	return w.Step >= len(Steps)
}

// Next advances the cursor by one. At the final step it does not advance and
// returns true: the caller should submit instead.
func (w *Wizard) Next() (submit bool) {
	if w.Step < len(Steps) {
		w.Step++
		return false
	}
	return true
}

// Back moves the cursor one step back. Going below MinStep is a no-op, not an
// error.
func (w *Wizard) Back() {
	if w.Step > MinStep {
		w.Step--
	}
}

// SetSlice replaces one named slice of the form data wholesale. The step owns
// the internal shape of its slice; unknown names are rejected.
func (w *Wizard) SetSlice(name string, raw json.RawMessage) error {
	switch strings.ToLower(name) {
	case "role":
		var role string
		if err := json.Unmarshal(raw, &role); err != nil {
			return fmt.Errorf("invalid role payload: %w", err)
		}
		parsed, err := models.ParseRole(role)
		if err != nil || !parsed.CanList() {
			return fmt.Errorf("role %q cannot post properties", role)
		}
		w.Form.Role = string(parsed)
	case "details":
		var d Details
		if err := json.Unmarshal(raw, &d); err != nil {
			return fmt.Errorf("invalid details payload: %w", err)
		}
		w.Form.Details = d
	case "media":
		var m Media
		if err := json.Unmarshal(raw, &m); err != nil {
			return fmt.Errorf("invalid media payload: %w", err)
		}
		w.Form.Media = m
	case "amenities":
		var a []string
		if err := json.Unmarshal(raw, &a); err != nil {
			return fmt.Errorf("invalid amenities payload: %w", err)
		}
		w.Form.Amenities = a
	case "contact":
		var c Contact
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("invalid contact payload: %w", err)
		}
		w.Form.Contact = c
	default:
		return fmt.Errorf("unknown form slice %q", name)
	}
	return nil
}

// Validate checks the numeric fields that must hold before any backend write.
func (w *Wizard) Validate() error {
	if _, err := parsePositive(w.Form.Details.Area); err != nil {
		return errors.New("please enter a valid built-up area")
	}
	if _, err := parsePositive(w.Form.Details.Price); err != nil {
		return errors.New("please enter a valid expected price")
	}
	return nil
}

// Listing builds the property document for submission. Status is published
// only when the poster's profile is verified; otherwise the listing is saved
// as a draft.
func (w *Wizard) Listing(ownerID string, verified bool) (models.Property, error) {
	area, err := parsePositive(w.Form.Details.Area)
	if err != nil {
		return models.Property{}, errors.New("please enter a valid built-up area")
	}
	price, err := parsePositive(w.Form.Details.Price)
	if err != nil {
		return models.Property{}, errors.New("please enter a valid expected price")
	}

	role, err := models.ParseRole(w.Form.Role)
	if err != nil {
		role = models.RoleOwner
	}

	status := models.StatusDraft
	if verified {
		status = models.StatusPublished
	}

	d := w.Form.Details
	photos := w.Form.Media.Photos
	if len(photos) == 0 {
		photos = []string{placeholderPhoto}
	}
	floorPlans := w.Form.Media.FloorPlans
	if floorPlans == nil {
		floorPlans = []string{}
	}

	return models.Property{
		OwnerID:     ownerID,
		PosterRole:  role.PosterLabel(),
		ListingType: orDefault(d.ListingType, "Sell"),
		Category:    orDefault(d.Category, "Residential"),
		Type:        orDefault(d.Type, "Apartment"),
		Bhk:         d.Bhk,
		AreaSqFt:    area,
		Price:       price,
		Address: models.AddressDetails{
			City:     d.City,
			Locality: d.Locality,
			Landmark: d.Landmark,
		},
		Amenities:    w.Form.Amenities,
		ContactPrefs: models.ContactPrefs(w.Form.Contact),
		Media: models.PropertyMedia{
			Photos:     photos,
			FloorPlans: floorPlans,
		},
		Status:    status,
		CreatedAt: time.Now(),
	}, nil
}

func parsePositive(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("value %q is not a positive finite number", s)
	}
	return v, nil
}

func orDefault(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
