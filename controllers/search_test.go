package controllers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urbanest/marketplace/backend/models"
	"github.com/urbanest/marketplace/backend/utils"
)

type fakeSearcher struct {
	calls   int
	results []models.Property
	err     error
}

func (f *fakeSearcher) Search(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	f.calls++
	return f.results, f.err
}

type fakeCompleter struct {
	calls       int
	suggestions []models.LocationSuggestion
	err         error
}

func (f *fakeCompleter) Complete(ctx context.Context, term string) ([]models.LocationSuggestion, error) {
	f.calls++
	return f.suggestions, f.err
}

func (f *fakeCompleter) Trending(ctx context.Context) ([]models.LocationSuggestion, error) {
	return f.suggestions, f.err
}

func TestSearchWithFailSoftPassesResultsThrough(t *testing.T) {
	s := &fakeSearcher{results: []models.Property{{OwnerID: "u1"}}}

	results, ok := searchWithFailSoft(context.Background(), s, models.SearchFilters{})

	assert.True(t, ok)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, s.calls)
}

func TestSearchWithFailSoftDegradesToEmptyList(t *testing.T) {
	s := &fakeSearcher{err: errors.New("backend down")}

	results, ok := searchWithFailSoft(context.Background(), s, models.SearchFilters{})

	assert.False(t, ok)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Equal(t, utils.ReadAttempts, s.calls, "failed reads are retried up to the policy limit")
}

func TestSearchWithFailSoftNormalizesNilResults(t *testing.T) {
	s := &fakeSearcher{results: nil}

	results, ok := searchWithFailSoft(context.Background(), s, models.SearchFilters{})

	assert.True(t, ok)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestSearchWithFailSoftRecoversAfterTransientError(t *testing.T) {
	failures := 1
	s := &recoveringSearcher{failAttempts: &failures, results: []models.Property{{OwnerID: "u1"}}}

	results, ok := searchWithFailSoft(context.Background(), s, models.SearchFilters{})

	assert.True(t, ok)
	assert.Len(t, results, 1)
	assert.Equal(t, 2, s.calls)
}

type recoveringSearcher struct {
	calls        int
	failAttempts *int
	results      []models.Property
}

func (r *recoveringSearcher) Search(ctx context.Context, filters models.SearchFilters) ([]models.Property, error) {
	r.calls++
	if *r.failAttempts > 0 {
		*r.failAttempts--
		return nil, errors.New("transient")
	}
	return r.results, nil
}

func TestCompleteLocationsBelowThresholdSkipsBackend(t *testing.T) {
	c := &fakeCompleter{suggestions: []models.LocationSuggestion{{Locality: "HSR Layout", City: "Bangalore"}}}

	for _, term := range []string{"", "a", " a ", "\t"} {
		got := completeLocations(context.Background(), c, term)
		assert.NotNil(t, got)
		assert.Empty(t, got, "term %q", term)
	}
	assert.Equal(t, 0, c.calls)
}

func TestCompleteLocationsAtThresholdQueriesBackend(t *testing.T) {
	c := &fakeCompleter{suggestions: []models.LocationSuggestion{{Locality: "HSR Layout", City: "Bangalore", Count: 12}}}

	got := completeLocations(context.Background(), c, "hs")

	assert.Equal(t, 1, c.calls)
	assert.Equal(t, c.suggestions, got)
}

func TestCompleteLocationsTrimsBeforeThresholdCheck(t *testing.T) {
	c := &fakeCompleter{suggestions: []models.LocationSuggestion{{Locality: "Whitefield", City: "Bangalore"}}}

	got := completeLocations(context.Background(), c, "  wh  ")

	assert.Equal(t, 1, c.calls)
	assert.Len(t, got, 1)
}

func TestCompleteLocationsDegradesToEmptyListOnError(t *testing.T) {
	c := &fakeCompleter{err: errors.New("backend down")}

	got := completeLocations(context.Background(), c, "indira")

	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Equal(t, utils.ReadAttempts, c.calls)
}

func TestSearchCacheKeyIsStableAcrossParamOrder(t *testing.T) {
	minPrice, maxPrice := 100000.0, 500000.0
	a := models.SearchFilters{MinPrice: &minPrice, MaxPrice: &maxPrice}
	b := models.SearchFilters{MaxPrice: &maxPrice, MinPrice: &minPrice}

	assert.Equal(t, searchCacheKey(a), searchCacheKey(b))
	assert.NotEqual(t, searchCacheKey(a), searchCacheKey(models.SearchFilters{MinPrice: &minPrice}))
}
