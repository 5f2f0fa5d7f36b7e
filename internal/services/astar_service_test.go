package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkabout/internal/models/domain_models"
)

func TestAStarCollectsPOIBetweenEndpoints(t *testing.T) {
	travel := newStubTravel()
	astar := NewAStarService(travel)

	mid := domain_models.POI{Name: "Old Library", Latitude: 40.001, Longitude: -74.0, Score: 40}

	route, err := astar.FindRoute(context.Background(),
		40.0, -74.0, 40.002, -74.0, 60,
		[]domain_models.POI{mid}, domain_models.NewUserPreferences(), nil)
	require.NoError(t, err)

	require.Len(t, route.Points, 1)
	assert.Equal(t, "Old Library", route.Points[0].Name)
	assert.Equal(t, 40.0, route.TotalScore)
	assert.LessOrEqual(t, route.TotalTime, 60)
	assert.Equal(t, "stub_polyline", route.Polyline)
}

func TestAStarKeepsBestScoringEndState(t *testing.T) {
	travel := newStubTravel()
	astar := NewAStarService(travel)

	// Both POIs fit as single-stop routes; the on-line one reaches the end
	// sooner, so its finish pops first. The detour still has to win on score.
	onLine := domain_models.POI{Name: "Waypoint Kiosk", Latitude: 0.0, Longitude: 0.005, Score: 10}
	detour := domain_models.POI{Name: "Grand Gallery", Latitude: 0.003, Longitude: 0.005, Score: 100}

	route, err := astar.FindRoute(context.Background(),
		0.0, 0.0, 0.0, 0.01, 30,
		[]domain_models.POI{onLine, detour}, domain_models.NewUserPreferences(), nil)
	require.NoError(t, err)

	require.Len(t, route.Points, 1)
	assert.Equal(t, "Grand Gallery", route.Points[0].Name)
	assert.Equal(t, 100.0, route.TotalScore)
}

func TestAStarPropagatesPolylineFailure(t *testing.T) {
	travel := newStubTravel()
	travel.polyErr = errors.New("provider down")
	astar := NewAStarService(travel)

	mid := domain_models.POI{Name: "Old Library", Latitude: 40.001, Longitude: -74.0, Score: 40}

	_, err := astar.FindRoute(context.Background(),
		40.0, -74.0, 40.002, -74.0, 60,
		[]domain_models.POI{mid}, domain_models.NewUserPreferences(), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, travel.polyErr)
}

func TestAStarEmptyWhenEndUnreachableInBudget(t *testing.T) {
	travel := newStubTravel()
	astar := NewAStarService(travel)

	mid := domain_models.POI{Name: "Old Library", Latitude: 40.001, Longitude: -74.0, Score: 40}

	route, err := astar.FindRoute(context.Background(),
		40.0, -74.0, 40.002, -74.0, 2,
		[]domain_models.POI{mid}, domain_models.NewUserPreferences(), nil)
	require.NoError(t, err)

	assert.Empty(t, route.Points)
	assert.Equal(t, 0, route.TotalTime)
}

func TestBuildSearchPoolPinsGuaranteedPOIs(t *testing.T) {
	var pois []domain_models.POI
	for i := 0; i < 25; i++ {
		pois = append(pois, domain_models.POI{
			Name:     string(rune('A' + i)),
			Latitude: 40.0 + float64(i)*0.001,
			Score:    float64(i + 1),
		})
	}
	guaranteed := []domain_models.POI{pois[0]} // lowest score

	pool := buildSearchPool(pois, domain_models.NewUserPreferences(), guaranteed)

	require.Len(t, pool, astarPoolSize)
	assert.Equal(t, pois[0].Name, pool[0].name)
	assert.Equal(t, pois[24].Name, pool[1].name, "rest of the pool fills by score")
}

func TestBetterStatePrefersMorePOIs(t *testing.T) {
	more := &searchState{poiCount: 3, score: 10, elapsed: 100}
	fewer := &searchState{poiCount: 2, score: 500, elapsed: 10}
	assert.True(t, betterState(more, fewer))

	fast := &searchState{poiCount: 2, score: 10.005, elapsed: 30}
	slow := &searchState{poiCount: 2, score: 10.0, elapsed: 50}
	assert.True(t, betterState(fast, slow), "near-equal scores break the tie on time")
}
