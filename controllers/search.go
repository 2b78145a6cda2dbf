package controllers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/urbanest/marketplace/backend/config"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/utils"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	searchCachePrefix = "search:"
	searchCacheTTL    = 10 * time.Minute

	// Lookups shorter than this return an empty list without touching the
	// backend at all.
	autoCompleteMinChars = 2
)

type propertySearcher interface {
	Search(ctx context.Context, filters models.SearchFilters) ([]models.Property, error)
}

type locationCompleter interface {
	Complete(ctx context.Context, term string) ([]models.LocationSuggestion, error)
	Trending(ctx context.Context) ([]models.LocationSuggestion, error)
}

// mongoSearcher executes the search contract against the properties
// collection. The filter is assembled from the RPC parameter mapping, so every
// absent filter is an explicit nil and never constrains the query.
type mongoSearcher struct{}

func (mongoSearcher) Search(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	params := filters.RPCParams()

	query := bson.M{"status": models.StatusPublished}
	var andConditions []bson.M

	if v := params["min_price"]; v != nil {
		andConditions = append(andConditions, bson.M{"price": bson.M{"$gte": v}})
	}
	if v := params["max_price"]; v != nil {
		andConditions = append(andConditions, bson.M{"price": bson.M{"$lte": v}})
	}
	if v := params["min_area"]; v != nil {
		andConditions = append(andConditions, bson.M{"areaSqft": bson.M{"$gte": v}})
	}
	if v := params["max_area"]; v != nil {
		andConditions = append(andConditions, bson.M{"areaSqft": bson.M{"$lte": v}})
	}
	if v := params["property_types"]; v != nil {
		andConditions = append(andConditions, bson.M{"propertyType": bson.M{"$in": v}})
	}
	if v := params["bhk_types"]; v != nil {
		andConditions = append(andConditions, bson.M{"bhk": bson.M{"$in": v}})
	}
	if v := params["selected_amenities"]; v != nil {
		andConditions = append(andConditions, bson.M{"amenities": bson.M{"$all": v}})
	}
	if v := params["listing_status"]; v != nil {
		andConditions = append(andConditions, bson.M{"listingType": v})
	}
	if v := params["search_location"]; v != nil {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(v.(string)), Options: "i"}
		andConditions = append(andConditions, bson.M{"$or": []bson.M{
			{"addressDetails.locality": bson.M{"$regex": pattern}},
			{"addressDetails.city": bson.M{"$regex": pattern}},
		}})
	}
	if len(andConditions) > 0 {
		query["$and"] = andConditions
	}

	findOptions := options.Find().
		SetLimit(params["limit_val"].(int64)).
		SetSkip(params["offset_val"].(int64)).
		SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := config.PropertyCollection.Find(ctx, query, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var properties []models.Property
	if err := cursor.All(ctx, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

// searchWithFailSoft runs the search with the read-retry policy. A backend
// failure degrades to an empty result list; ok is false only in that case so
// the caller can skip caching the degraded response.
func searchWithFailSoft(ctx context.Context, s propertySearcher, filters models.SearchFilters) (results []models.Property, ok bool) {
	err := utils.Do(ctx, utils.ReadAttempts, utils.ReadBaseDelay, func(ctx context.Context) error {
		var opErr error
		results, opErr = s.Search(ctx, filters)
		return opErr
	})
	if err != nil {
		log.Printf("Search failed, degrading to empty result: %v", err)
		return []models.Property{}, false
	}
	if results == nil {
		results = []models.Property{}
	}
	return results, true
}

// completeLocations applies the minimum-length threshold before any backend
// call, then runs the lookup with the read-retry policy. Errors degrade to an
// empty list.
func completeLocations(ctx context.Context, c locationCompleter, term string) []models.LocationSuggestion {
	term = strings.TrimSpace(term)
	if len(term) < autoCompleteMinChars {
		return []models.LocationSuggestion{}
	}

	var suggestions []models.LocationSuggestion
	err := utils.Do(ctx, utils.ReadAttempts, utils.ReadBaseDelay, func(ctx context.Context) error {
		var opErr error
		suggestions, opErr = c.Complete(ctx, term)
		return opErr
	})
	if err != nil {
		log.Printf("Auto-complete failed for %q: %v", term, err)
		return []models.LocationSuggestion{}
	}
	if suggestions == nil {
		suggestions = []models.LocationSuggestion{}
	}
	return suggestions
}

func SearchProperties(redisClient *redis.Client) http.HandlerFunc {
	searcher := mongoSearcher{}
	return func(w http.ResponseWriter, r *http.Request) {
		filters := models.ParseSearchFilters(r.URL.Query())
		cacheKey := searchCacheKey(filters)

		cachedData, err := redisClient.Get(r.Context(), cacheKey).Result()
		if err == nil {
			log.Printf("Cache hit for key: %s", cacheKey)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cachedData))
			return
		}
		if err != redis.Nil {
			log.Printf("Redis GET error for key %s: %v", cacheKey, err)
		}

		results, ok := searchWithFailSoft(r.Context(), searcher, filters)

		resultBytes, err := json.Marshal(results)
		if err != nil {
			log.Printf("Failed to serialize search results: %v", err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
			return
		}

		if ok {
			if err := redisClient.Set(r.Context(), cacheKey, resultBytes, searchCacheTTL).Err(); err != nil {
				log.Printf("Failed to cache response for key %s: %v", cacheKey, err)
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write(resultBytes)
	}
}

func AutoCompleteLocations() http.HandlerFunc {
	completer := mongoCompleter{}
	return func(w http.ResponseWriter, r *http.Request) {
		suggestions := completeLocations(r.Context(), completer, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggestions)
	}
}

// trendingFallback is served when the aggregation is unavailable, so the home
// page never renders an error for this widget.
var trendingFallback = []models.LocationSuggestion{
	{Locality: "Indiranagar", City: "Bangalore", Count: 124},
	{Locality: "HSR Layout", City: "Bangalore", Count: 98},
	{Locality: "Whitefield", City: "Bangalore", Count: 86},
	{Locality: "Koramangala", City: "Bangalore", Count: 72},
}

func TrendingLocalities() http.HandlerFunc {
	completer := mongoCompleter{}
	return func(w http.ResponseWriter, r *http.Request) {
		var suggestions []models.LocationSuggestion
		err := utils.Do(r.Context(), utils.ReadAttempts, utils.ReadBaseDelay, func(ctx context.Context) error {
			var opErr error
			suggestions, opErr = completer.Trending(ctx)
			return opErr
		})
		if err != nil || len(suggestions) == 0 {
			if err != nil {
				log.Printf("Trending localities unavailable, serving fallback: %v", err)
			}
			suggestions = trendingFallback
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggestions)
	}
}

type mongoCompleter struct{}

func (mongoCompleter) Complete(ctx context.Context, term string) ([]models.LocationSuggestion, error) {
	pattern := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	match := bson.M{
		"status": models.StatusPublished,
		"$or": []bson.M{
			{"addressDetails.locality": bson.M{"$regex": pattern}},
			{"addressDetails.city": bson.M{"$regex": pattern}},
		},
	}
	return aggregateLocalities(ctx, match, 8)
}

func (mongoCompleter) Trending(ctx context.Context) ([]models.LocationSuggestion, error) {
	return aggregateLocalities(ctx, bson.M{"status": models.StatusPublished}, 4)
}

func aggregateLocalities(ctx context.Context, match bson.M, limit int64) ([]models.LocationSuggestion, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id": bson.M{
				"locality": "$addressDetails.locality",
				"city":     "$addressDetails.city",
			},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"count": -1}}},
		{{Key: "$limit", Value: limit}},
		{{Key: "$project", Value: bson.M{
			"_id":      0,
			"locality": "$_id.locality",
			"city":     "$_id.city",
			"count":    1,
		}}},
	}

	cursor, err := config.PropertyCollection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var suggestions []models.LocationSuggestion
	if err := cursor.All(ctx, &suggestions); err != nil {
		return nil, err
	}
	return suggestions, nil
}

// searchCacheKey hashes the canonical query-string encoding of the filters, so
// equivalent filter values share one cache entry regardless of parameter order.
func searchCacheKey(filters models.SearchFilters) string {
	sum := sha256.Sum256([]byte(filters.QueryValues().Encode()))
	return searchCachePrefix + hex.EncodeToString(sum[:])
}
