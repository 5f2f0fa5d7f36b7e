package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkabout/internal/models/domain_models"
)

func TestLoopServicePicksReachablePOIs(t *testing.T) {
	travel := newStubTravel()
	loop := NewLoopService(travel)

	near := domain_models.POI{Name: "Near Fountain", Latitude: 40.0005, Longitude: -74.0, Score: 50}
	far := domain_models.POI{Name: "Far Lookout", Latitude: 40.03, Longitude: -74.0, Score: 500}

	route, err := loop.FindLoop(context.Background(), 40.0, -74.0, 60,
		[]domain_models.POI{near, far}, domain_models.NewUserPreferences())
	require.NoError(t, err)

	require.Len(t, route.Points, 1)
	assert.Equal(t, "Near Fountain", route.Points[0].Name)
	assert.LessOrEqual(t, route.TotalTime, 60)
	assert.Equal(t, 50.0, route.TotalScore)
	assert.Equal(t, "stub_polyline", route.Polyline)
}

func TestLoopServiceEmptyWhenBudgetTooSmall(t *testing.T) {
	travel := newStubTravel()
	loop := NewLoopService(travel)

	near := domain_models.POI{Name: "Near Fountain", Latitude: 40.0005, Longitude: -74.0, Score: 50}

	route, err := loop.FindLoop(context.Background(), 40.0, -74.0, 6,
		[]domain_models.POI{near}, domain_models.NewUserPreferences())
	require.NoError(t, err)

	assert.Empty(t, route.Points)
	assert.Equal(t, 0, route.TotalTime)
}

func TestLoopServiceDeduplicatesPool(t *testing.T) {
	travel := newStubTravel()
	loop := NewLoopService(travel)

	near := domain_models.POI{Name: "Near Fountain", Latitude: 40.0005, Longitude: -74.0, Score: 50}

	route, err := loop.FindLoop(context.Background(), 40.0, -74.0, 60,
		[]domain_models.POI{near, near, near}, domain_models.NewUserPreferences())
	require.NoError(t, err)

	assert.Len(t, route.Points, 1)
}

func TestLoopServiceDegradesWhenPolylineFails(t *testing.T) {
	travel := newStubTravel()
	travel.polyErr = errors.New("provider down")
	loop := NewLoopService(travel)

	near := domain_models.POI{Name: "Near Fountain", Latitude: 40.0005, Longitude: -74.0, Score: 50}

	route, err := loop.FindLoop(context.Background(), 40.0, -74.0, 60,
		[]domain_models.POI{near}, domain_models.NewUserPreferences())
	require.NoError(t, err)

	require.Len(t, route.Points, 1)
	assert.Equal(t, "", route.Polyline)
}

func TestLoopServiceSubNeutralWeightDoesNotPenalizePicks(t *testing.T) {
	travel := newStubTravel()
	loop := NewLoopService(travel)

	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryCafe, 0.5)

	// Equidistant from the start; the cafe still wins on raw score because
	// down-weights are applied once, during rescoring, not here.
	cafe := domain_models.POI{Name: "Espresso Bar", Latitude: 40.0005, Longitude: -74.0,
		Score: 100, Tags: []string{"cafe"}}
	plain := domain_models.POI{Name: "Quiet Plaza", Latitude: 39.9995, Longitude: -74.0, Score: 60}

	route, err := loop.FindLoop(context.Background(), 40.0, -74.0, 60,
		[]domain_models.POI{plain, cafe}, preferences)
	require.NoError(t, err)

	require.NotEmpty(t, route.Points)
	assert.Equal(t, "Espresso Bar", route.Points[0].Name)
}

func TestBoostWeightFloorsAtNeutral(t *testing.T) {
	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryCafe, 0.5)
	preferences.SetCategoryWeight(domain_models.CategoryPark, 3.0)

	cafe := domain_models.POI{Name: "Corner Cafe", Tags: []string{"cafe"}}
	assert.Equal(t, 1.0, boostWeight(cafe, preferences))

	park := domain_models.POI{Name: "Green Park", Tags: []string{"park"}}
	assert.Equal(t, 3.0, boostWeight(park, preferences))
}

func TestMatchedWeightUsesStrongestCategory(t *testing.T) {
	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryPark, 3.0)
	preferences.SetCategoryWeight(domain_models.CategoryCafe, 0.5)

	poi := domain_models.POI{Name: "Garden Cafe", Tags: []string{"park", "cafe"}}
	assert.Equal(t, 3.0, matchedWeight(poi, preferences))

	plain := domain_models.POI{Name: "Unknown Spot"}
	assert.Equal(t, 1.0, matchedWeight(plain, preferences))
}
