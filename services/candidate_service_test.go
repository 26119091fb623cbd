package services

import (
	"context"
	"errors"
	"testing"

	"midway_server/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	tokyoStation    = models.Coordinate{Latitude: 35.6812, Longitude: 139.7671}
	shinjukuStation = models.Coordinate{Latitude: 35.6895, Longitude: 139.6917}
)

// --- Fakes ---

type searchCall struct {
	radius   float64
	category string
}

type fakePlaceSearcher struct {
	places []models.Place
	err    error
	calls  []searchCall
}

func (f *fakePlaceSearcher) SearchNearby(ctx context.Context, center models.Coordinate, radiusMeters float64, category string) ([]models.Place, error) {
	f.calls = append(f.calls, searchCall{radius: radiusMeters, category: category})
	if f.err != nil {
		return nil, f.err
	}
	return f.places, nil
}

func floatPtr(v float64) *float64 { return &v }

func placeNear(id string, coord models.Coordinate, rating float64) models.Place {
	return models.Place{
		ID:         id,
		Name:       "Place " + id,
		Address:    "1-1 " + id,
		Coordinate: coord,
		Rating:     floatPtr(rating),
	}
}

// --- Tests ---

func TestGetCandidates_NoSearcherReturnsSyntheticSet(t *testing.T) {
	cs := &CandidateService{}

	candidates, degraded, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "coffee")
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, candidates, 5)

	labels := activityLabels["coffee"]
	for i, c := range candidates {
		assert.True(t, c.IsSynthetic)
		assert.Equal(t, labels[i], c.Name)
		assert.InDelta(t, 0.5-0.1*float64(i), c.FairnessScore, 1e-9)
	}
}

func TestGetCandidates_SearcherErrorDegrades(t *testing.T) {
	searcher := &fakePlaceSearcher{err: errors.New("upstream timeout")}
	cs := &CandidateService{Places: searcher}

	candidates, degraded, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "coffee")
	require.NoError(t, err)
	assert.True(t, degraded)
	require.Len(t, candidates, 5)
	for _, c := range candidates {
		assert.True(t, c.IsSynthetic)
	}
}

func TestGetCandidates_UnknownActivityUsesGenericLabels(t *testing.T) {
	cs := &CandidateService{}

	candidates, _, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "skydiving")
	require.NoError(t, err)
	require.Len(t, candidates, 5)
	for i, c := range candidates {
		assert.Equal(t, genericLabels[i], c.Name)
	}
}

func TestGetCandidates_MidpointCandidateIsFair(t *testing.T) {
	cs := &CandidateService{}

	candidates, _, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "coffee")
	require.NoError(t, err)

	// The first offset is the midpoint itself, so both walks should be
	// nearly the same length.
	first := candidates[0]
	assert.InDelta(t, first.DistanceToA, first.DistanceToB, 0.3)
	assert.Greater(t, first.WalkTimeA, 0)
	assert.Greater(t, first.WalkTimeB, 0)
}

func TestGetCandidates_FairnessOrderingNonIncreasing(t *testing.T) {
	mid := models.Coordinate{
		Latitude:  (tokyoStation.Latitude + shinjukuStation.Latitude) / 2,
		Longitude: (tokyoStation.Longitude + shinjukuStation.Longitude) / 2,
	}
	searcher := &fakePlaceSearcher{places: []models.Place{
		placeNear("p1", mid, 2.0),
		placeNear("p2", models.Coordinate{Latitude: mid.Latitude + 0.01, Longitude: mid.Longitude}, 5.0),
		placeNear("p3", models.Coordinate{Latitude: mid.Latitude - 0.005, Longitude: mid.Longitude}, 4.0),
	}}
	cs := &CandidateService{Places: searcher}

	candidates, degraded, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "coffee")
	require.NoError(t, err)
	assert.False(t, degraded)

	for i := 1; i < len(candidates); i++ {
		assert.GreaterOrEqual(t, candidates[i-1].FairnessScore, candidates[i].FairnessScore)
	}
}

func TestGetCandidates_RealCandidatesReplaceSynthetic(t *testing.T) {
	mid := models.Coordinate{
		Latitude:  (tokyoStation.Latitude + shinjukuStation.Latitude) / 2,
		Longitude: (tokyoStation.Longitude + shinjukuStation.Longitude) / 2,
	}
	searcher := &fakePlaceSearcher{places: []models.Place{
		placeNear("p1", mid, 4.5),
		placeNear("p2", models.Coordinate{Latitude: mid.Latitude + 0.001, Longitude: mid.Longitude}, 4.0),
		placeNear("p3", models.Coordinate{Latitude: mid.Latitude - 0.001, Longitude: mid.Longitude}, 3.5),
	}}
	cs := &CandidateService{Places: searcher}

	candidates, degraded, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "coffee")
	require.NoError(t, err)
	assert.False(t, degraded)

	// Three unique places dedup across the three categories and fully
	// replace the fallback set.
	require.Len(t, candidates, 3)
	for _, c := range candidates {
		assert.False(t, c.IsSynthetic)
	}
}

func TestGetCandidates_FewRealCandidatesPadWithFallback(t *testing.T) {
	mid := models.Coordinate{
		Latitude:  (tokyoStation.Latitude + shinjukuStation.Latitude) / 2,
		Longitude: (tokyoStation.Longitude + shinjukuStation.Longitude) / 2,
	}
	searcher := &fakePlaceSearcher{places: []models.Place{
		placeNear("solo", mid, 5.0),
	}}
	cs := &CandidateService{Places: searcher}

	candidates, degraded, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "lunch")
	require.NoError(t, err)
	assert.False(t, degraded)
	require.Len(t, candidates, 5)

	assert.False(t, candidates[0].IsSynthetic)
	assert.Equal(t, "solo", candidates[0].ID)
	for _, c := range candidates[1:] {
		assert.True(t, c.IsSynthetic)
	}
	// Fallback keeps its own relative order when padding.
	labels := activityLabels["lunch"]
	for i, c := range candidates[1:] {
		assert.Equal(t, labels[i], c.Name)
	}
}

func TestGetCandidates_SearchRadiusClamped(t *testing.T) {
	searcher := &fakePlaceSearcher{}
	cs := &CandidateService{Places: searcher}

	// Same point: inter-user distance 0, radius clamps to the minimum.
	_, _, err := cs.GetCandidates(context.Background(), tokyoStation, tokyoStation, "coffee")
	require.NoError(t, err)
	require.NotEmpty(t, searcher.calls)
	assert.Equal(t, 1000.0, searcher.calls[0].radius)

	// Far apart: radius clamps to the maximum.
	searcher.calls = nil
	osaka := models.Coordinate{Latitude: 34.6937, Longitude: 135.5023}
	_, _, err = cs.GetCandidates(context.Background(), tokyoStation, osaka, "coffee")
	require.NoError(t, err)
	require.NotEmpty(t, searcher.calls)
	assert.Equal(t, 10000.0, searcher.calls[0].radius)
}

func TestGetCandidates_CategoriesFollowActivity(t *testing.T) {
	searcher := &fakePlaceSearcher{}
	cs := &CandidateService{Places: searcher}

	_, _, err := cs.GetCandidates(context.Background(), tokyoStation, shinjukuStation, "drinks")
	require.NoError(t, err)
	require.Len(t, searcher.calls, 3)

	expected := activityCategories["drinks"]
	for i, call := range searcher.calls {
		assert.Equal(t, expected[i], call.category)
	}
}

func TestGetCandidates_InvalidCoordinateFails(t *testing.T) {
	cs := &CandidateService{}

	_, _, err := cs.GetCandidates(context.Background(), models.Coordinate{Latitude: 95}, shinjukuStation, "coffee")
	assert.ErrorIs(t, err, models.ErrInvalidCoordinate)
}
