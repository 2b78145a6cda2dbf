package models

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }
func intPtr(v int64) *int64       { return &v }

func TestParseSearchFiltersAbsentMeansNil(t *testing.T) {
	f := ParseSearchFilters(url.Values{})

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.MinArea)
	assert.Nil(t, f.MaxArea)
	assert.Nil(t, f.PropertyTypes)
	assert.Nil(t, f.BhkTypes)
	assert.Nil(t, f.Amenities)
	assert.Nil(t, f.ListingType)
	assert.Nil(t, f.Location)
	assert.Nil(t, f.Limit)
	assert.Nil(t, f.Offset)
}

func TestParseSearchFiltersZeroIsNotAbsent(t *testing.T) {
	f := ParseSearchFilters(url.Values{"minPrice": {"0"}})

	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 0.0, *f.MinPrice)
}

func TestParseSearchFiltersEmptyAndMalformedParams(t *testing.T) {
	f := ParseSearchFilters(url.Values{
		"minPrice": {""},
		"maxPrice": {"not-a-number"},
		"type":     {""},
		"location": {""},
	})

	assert.Nil(t, f.MinPrice)
	assert.Nil(t, f.MaxPrice)
	assert.Nil(t, f.PropertyTypes)
	assert.Nil(t, f.Location)
}

func TestSearchFiltersRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		f    SearchFilters
	}{
		{name: "empty", f: SearchFilters{}},
		{
			name: "price range and location",
			f: SearchFilters{
				MinPrice: floatPtr(2500000),
				MaxPrice: floatPtr(9000000),
				Location: strPtr("Indiranagar"),
			},
		},
		{
			name: "sets with some empty",
			f: SearchFilters{
				PropertyTypes: []string{"Apartment", "Villa"},
				BhkTypes:      []string{"2 BHK"},
				ListingType:   strPtr("Rent"),
			},
		},
		{
			name: "pagination",
			f: SearchFilters{
				Limit:  intPtr(50),
				Offset: intPtr(40),
			},
		},
		{
			name: "everything",
			f: SearchFilters{
				MinPrice:      floatPtr(100000),
				MaxPrice:      floatPtr(200000),
				MinArea:       floatPtr(600),
				MaxArea:       floatPtr(1800),
				PropertyTypes: []string{"Apartment"},
				BhkTypes:      []string{"2 BHK", "3 BHK"},
				Amenities:     []string{"Lift", "Gym"},
				ListingType:   strPtr("Sell"),
				Location:      strPtr("HSR Layout"),
				Limit:         intPtr(10),
				Offset:        intPtr(0),
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decoded := ParseSearchFilters(tc.f.QueryValues())
			assert.Equal(t, tc.f, decoded)
		})
	}
}

func TestQueryValuesOmitsEmptyParams(t *testing.T) {
	q := SearchFilters{Location: strPtr("Whitefield")}.QueryValues()

	assert.Equal(t, "location=Whitefield", q.Encode())
}

func TestQueryValuesSkipsPointersToEmptyStrings(t *testing.T) {
	f := SearchFilters{
		Location:    strPtr(""),
		ListingType: strPtr(""),
		MinPrice:    floatPtr(100000),
	}

	q := f.QueryValues()
	assert.Equal(t, "minPrice=100000", q.Encode())

	// An emitted empty-string param would decode back to nil anyway; skipping
	// it keeps the encoding canonical.
	decoded := ParseSearchFilters(q)
	assert.Nil(t, decoded.Location)
	assert.Nil(t, decoded.ListingType)
}

func TestRPCParamsExplicitNulls(t *testing.T) {
	params := SearchFilters{}.RPCParams()

	for _, key := range []string{
		"min_price", "max_price", "min_area", "max_area",
		"property_types", "bhk_types", "selected_amenities",
		"listing_status", "search_location",
	} {
		v, present := params[key]
		assert.True(t, present, "key %s must be present", key)
		assert.Nil(t, v, "key %s must be explicit nil", key)
	}

	assert.Equal(t, int64(20), params["limit_val"])
	assert.Equal(t, int64(0), params["offset_val"])
}

func TestRPCParamsMapping(t *testing.T) {
	f := SearchFilters{
		MinPrice:    floatPtr(500000),
		BhkTypes:    []string{"3 BHK"},
		ListingType: strPtr("Sell"),
		Limit:       intPtr(5),
		Offset:      intPtr(10),
	}
	params := f.RPCParams()

	assert.Equal(t, 500000.0, params["min_price"])
	assert.Equal(t, []string{"3 BHK"}, params["bhk_types"])
	assert.Equal(t, "Sell", params["listing_status"])
	assert.Equal(t, int64(5), params["limit_val"])
	assert.Equal(t, int64(10), params["offset_val"])
	assert.Nil(t, params["max_price"])
}
