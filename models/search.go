package models

import (
	"net/url"
	"strconv"
	"strings"
)

// SearchFilters is the structured form of a property search. Every field is
// optional; a nil pointer or empty set means "unconstrained", which is distinct
// from a zero value.
type SearchFilters struct {
	MinPrice      *float64 `json:"minPrice,omitempty"`
	MaxPrice      *float64 `json:"maxPrice,omitempty"`
	MinArea       *float64 `json:"minArea,omitempty"`
	MaxArea       *float64 `json:"maxArea,omitempty"`
	PropertyTypes []string `json:"propertyTypes,omitempty"`
	BhkTypes      []string `json:"bhkTypes,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	ListingType   *string  `json:"listingType,omitempty"` // "Sell" or "Rent"
	Location      *string  `json:"location,omitempty"`
	Limit         *int64   `json:"limit,omitempty"`
	Offset        *int64   `json:"offset,omitempty"`
}

const (
	DefaultSearchLimit  int64 = 20
	DefaultSearchOffset int64 = 0
)

// LocationSuggestion is one autocomplete hit for a location lookup.
type LocationSuggestion struct {
	Locality string `bson:"locality" json:"locality"`
	City     string `bson:"city" json:"city"`
	Count    int64  `bson:"count" json:"count"`
}

// ParseSearchFilters decodes the URL query parameter surface
// (location, listingType, minPrice, maxPrice, minArea, maxArea, type, bhk,
// amenities, limit, offset) into a SearchFilters. Absent or malformed
// parameters decode to nil, never to zero or an empty string.
func ParseSearchFilters(q url.Values) SearchFilters {
	return SearchFilters{
		MinPrice:      parseFloatParam(q, "minPrice"),
		MaxPrice:      parseFloatParam(q, "maxPrice"),
		MinArea:       parseFloatParam(q, "minArea"),
		MaxArea:       parseFloatParam(q, "maxArea"),
		PropertyTypes: parseListParam(q, "type"),
		BhkTypes:      parseListParam(q, "bhk"),
		Amenities:     parseListParam(q, "amenities"),
		ListingType:   parseStringParam(q, "listingType"),
		Location:      parseStringParam(q, "location"),
		Limit:         parseIntParam(q, "limit"),
		Offset:        parseIntParam(q, "offset"),
	}
}

// QueryValues encodes the filters back to their canonical query-string form.
// Absent scalars and empty sets are omitted entirely; no empty-string params
// are ever emitted, so ParseSearchFilters(f.QueryValues()) reproduces f.
func (f SearchFilters) QueryValues() url.Values {
	q := url.Values{}
	setStringParam(q, "location", f.Location)
	setStringParam(q, "listingType", f.ListingType)
	setFloatParam(q, "minPrice", f.MinPrice)
	setFloatParam(q, "maxPrice", f.MaxPrice)
	setFloatParam(q, "minArea", f.MinArea)
	setFloatParam(q, "maxArea", f.MaxArea)
	if len(f.PropertyTypes) > 0 {
		q.Set("type", strings.Join(f.PropertyTypes, ","))
	}
	if len(f.BhkTypes) > 0 {
		q.Set("bhk", strings.Join(f.BhkTypes, ","))
	}
	if len(f.Amenities) > 0 {
		q.Set("amenities", strings.Join(f.Amenities, ","))
	}
	if f.Limit != nil {
		q.Set("limit", strconv.FormatInt(*f.Limit, 10))
	}
	if f.Offset != nil {
		q.Set("offset", strconv.FormatInt(*f.Offset, 10))
	}
	return q
}

// RPCParams maps the filters to the backend search procedure's parameter
// names. Every absent filter is carried as an explicit nil, and the
// limit/offset defaults are applied here.
func (f SearchFilters) RPCParams() map[string]interface{} {
	return map[string]interface{}{
		"min_price":          floatOrNil(f.MinPrice),
		"max_price":          floatOrNil(f.MaxPrice),
		"min_area":           floatOrNil(f.MinArea),
		"max_area":           floatOrNil(f.MaxArea),
		"property_types":     listOrNil(f.PropertyTypes),
		"bhk_types":          listOrNil(f.BhkTypes),
		"selected_amenities": listOrNil(f.Amenities),
		"listing_status":     stringOrNil(f.ListingType),
		"search_location":    stringOrNil(f.Location),
		"limit_val":          f.EffectiveLimit(),
		"offset_val":         f.EffectiveOffset(),
	}
}

func (f SearchFilters) EffectiveLimit() int64 {
	if f.Limit != nil && *f.Limit > 0 {
		return *f.Limit
	}
	return DefaultSearchLimit
}

func (f SearchFilters) EffectiveOffset() int64 {
	if f.Offset != nil && *f.Offset > 0 {
		return *f.Offset
	}
	return DefaultSearchOffset
}

func parseStringParam(q url.Values, key string) *string {
	if !q.Has(key) {
		return nil
	}
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func parseFloatParam(q url.Values, key string) *float64 {
	if !q.Has(key) || q.Get(key) == "" {
		return nil
	}
	v, err := strconv.ParseFloat(q.Get(key), 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseIntParam(q url.Values, key string) *int64 {
	if !q.Has(key) || q.Get(key) == "" {
		return nil
	}
	v, err := strconv.ParseInt(q.Get(key), 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseListParam(q url.Values, key string) []string {
	if !q.Has(key) || q.Get(key) == "" {
		return nil
	}
	return strings.Split(q.Get(key), ",")
}

// setStringParam skips pointers to the empty string: an empty-string param
// would decode back to nil, breaking the round trip.
func setStringParam(q url.Values, key string, v *string) {
	if v != nil && *v != "" {
		q.Set(key, *v)
	}
}

func setFloatParam(q url.Values, key string, v *float64) {
	if v != nil {
		q.Set(key, strconv.FormatFloat(*v, 'f', -1, 64))
	}
}

func floatOrNil(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func stringOrNil(v *string) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func listOrNil(v []string) interface{} {
	if len(v) == 0 {
		return nil
	}
	return v
}
