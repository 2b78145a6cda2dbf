package wizard

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urbanest/marketplace/backend/models"
)

func TestNewStartsAtMinStepWithProfileRole(t *testing.T) {
	w := New(models.RoleAgent)

	assert.Equal(t, MinStep, w.Step)
	assert.Equal(t, "agent", w.Form.Role)
	assert.Equal(t, "Sell", w.Form.Details.ListingType)
	assert.Equal(t, "Residential", w.Form.Details.Category)
	assert.True(t, w.Form.Contact.Call)
	assert.True(t, w.Form.Contact.Whatsapp)
	assert.True(t, w.Form.Contact.Chat)
}

func TestNewDefaultsNonListingRolesToOwner(t *testing.T) {
	for _, role := range []models.Role{models.RoleBuyer, models.RoleTenant, models.RoleAdmin, models.Role("")} {
		w := New(role)
		assert.Equal(t, "owner", w.Form.Role, "role %q", role)
		assert.Equal(t, MinStep, w.Step)
	}
}

func TestNextAdvancesUntilFinalStep(t *testing.T) {
	w := New(models.RoleOwner)

	for step := MinStep; step < len(Steps); step++ {
		assert.False(t, w.AtFinalStep())
		submit := w.Next()
		assert.False(t, submit)
		assert.Equal(t, step+1, w.Step)
	}

	assert.True(t, w.AtFinalStep())
	assert.True(t, w.Next(), "next at the final step means submit")
	assert.Equal(t, len(Steps), w.Step, "cursor must not advance past the final step")
}

func TestBackStopsAtMinStep(t *testing.T) {
	w := New(models.RoleOwner)
	w.Next()
	w.Back()
	assert.Equal(t, MinStep, w.Step)

	// Below MinStep is a no-op, not an error.
	w.Back()
	w.Back()
	assert.Equal(t, MinStep, w.Step)
}

func TestSetSliceReplacesWholesale(t *testing.T) {
	w := New(models.RoleOwner)

	require.NoError(t, w.SetSlice("details", json.RawMessage(`{"listingType":"Rent","area":"1200","price":"35000","city":"Bangalore","locality":"HSR Layout"}`)))
	assert.Equal(t, "Rent", w.Form.Details.ListingType)
	// Whole-slice replacement: the category default set at start is gone.
	assert.Equal(t, "", w.Form.Details.Category)

	require.NoError(t, w.SetSlice("amenities", json.RawMessage(`["Lift","Gym"]`)))
	assert.Equal(t, []string{"Lift", "Gym"}, w.Form.Amenities)

	require.NoError(t, w.SetSlice("contact", json.RawMessage(`{"call":false,"whatsapp":true,"chat":false}`)))
	assert.False(t, w.Form.Contact.Call)

	assert.Error(t, w.SetSlice("bogus", json.RawMessage(`{}`)))
}

func TestSetSliceRoleRejectsNonListingRoles(t *testing.T) {
	w := New(models.RoleOwner)

	require.NoError(t, w.SetSlice("role", json.RawMessage(`"builder"`)))
	assert.Equal(t, "builder", w.Form.Role)

	assert.Error(t, w.SetSlice("role", json.RawMessage(`"buyer"`)))
	assert.Error(t, w.SetSlice("role", json.RawMessage(`"admin"`)))
	assert.Equal(t, "builder", w.Form.Role)
}

func TestValidateRequiresPositiveFiniteNumbers(t *testing.T) {
	cases := []struct {
		name  string
		area  string
		price string
		valid bool
	}{
		{name: "valid", area: "1200", price: "4500000", valid: true},
		{name: "missing area", area: "", price: "4500000", valid: false},
		{name: "non-numeric area", area: "big", price: "4500000", valid: false},
		{name: "zero price", area: "1200", price: "0", valid: false},
		{name: "negative price", area: "1200", price: "-1", valid: false},
		{name: "infinite area", area: "Inf", price: "4500000", valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := New(models.RoleOwner)
			w.Form.Details.Area = tc.area
			w.Form.Details.Price = tc.price

			err := w.Validate()
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestListingStatusFollowsVerification(t *testing.T) {
	w := New(models.RoleAgent)
	w.Form.Details.Area = "1500"
	w.Form.Details.Price = "7500000"

	draft, err := w.Listing("user-1", false)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDraft, draft.Status)

	published, err := w.Listing("user-1", true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPublished, published.Status)
}

func TestListingAppliesDefaults(t *testing.T) {
	w := New(models.RoleOwner)
	w.Form.Details = Details{Area: "900", Price: "25000", City: "Bangalore", Locality: "Whitefield"}
	w.Form.Media = Media{}

	listing, err := w.Listing("user-2", true)
	require.NoError(t, err)

	assert.Equal(t, "user-2", listing.OwnerID)
	assert.Equal(t, "Owner", listing.PosterRole)
	assert.Equal(t, "Sell", listing.ListingType)
	assert.Equal(t, "Residential", listing.Category)
	assert.Equal(t, "Apartment", listing.Type)
	assert.Equal(t, 900.0, listing.AreaSqFt)
	assert.Equal(t, 25000.0, listing.Price)
	assert.Equal(t, []string{"/placeholder-house.jpg"}, listing.Media.Photos)
	assert.Equal(t, []string{}, listing.Media.FloorPlans)
	assert.Equal(t, "Whitefield", listing.Address.Locality)
}

func TestListingRejectsInvalidNumbersWithoutSideEffects(t *testing.T) {
	w := New(models.RoleOwner)
	w.Form.Details.Area = "abc"
	w.Form.Details.Price = "100"

	_, err := w.Listing("user-3", true)
	assert.Error(t, err)
}
