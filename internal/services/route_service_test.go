package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

type fakePlaces struct {
	pois  []domain_models.POI
	err   error
	calls int
}

func (f *fakePlaces) NearbyPOIs(ctx context.Context, lat, lng float64, includeMuseums bool) ([]domain_models.POI, error) {
	f.calls++
	return f.pois, f.err
}

func (f *fakePlaces) SearchByType(ctx context.Context, lat, lng float64, poiType string) ([]domain_models.POI, error) {
	f.calls++
	return f.pois, f.err
}

func newTestRouteService(places *fakePlaces) (*RouteService, *MetricsService) {
	travel := newStubTravel()
	metrics := NewMetricsService()
	svc := NewRouteService(places,
		NewAStarService(travel),
		NewLoopService(travel),
		NewOneWayService(travel),
		metrics)
	return svc, metrics
}

func planningCode(t *testing.T, err error) string {
	t.Helper()
	pe, ok := utils.AsPlanningError(err)
	require.True(t, ok, "expected a planning error, got %v", err)
	return pe.Code
}

func TestPlanRouteRejectsShortTimeLimit(t *testing.T) {
	places := &fakePlaces{}
	svc, metrics := newTestRouteService(places)

	_, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 5, domain_models.NewUserPreferences())

	assert.Equal(t, utils.CodeTimeLimitShort, planningCode(t, err))
	assert.Equal(t, 0, places.calls, "validation must fail before fetching POIs")

	summary := metrics.Summary()
	assert.Equal(t, int64(1), summary["failedRequests"])
	assert.Equal(t, int64(1), summary["errorCounts"].(map[string]int64)[utils.CodeTimeLimitShort])
}

func TestPlanRouteRejectsLongTimeLimit(t *testing.T) {
	places := &fakePlaces{}
	svc, _ := newTestRouteService(places)

	_, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 481, domain_models.NewUserPreferences())
	assert.Equal(t, utils.CodeTimeLimitLong, planningCode(t, err))
}

func TestPlanRouteRejectsBadCoordinates(t *testing.T) {
	places := &fakePlaces{}
	svc, _ := newTestRouteService(places)

	_, err := svc.PlanRoute(context.Background(), 95.0, -74.0, 60, domain_models.NewUserPreferences())
	assert.Equal(t, utils.CodeInvalidLatitude, planningCode(t, err))

	_, err = svc.PlanRoute(context.Background(), 40.0, -200.0, 60, domain_models.NewUserPreferences())
	assert.Equal(t, utils.CodeInvalidLongitude, planningCode(t, err))
}

func TestPlanRouteRequiresEndPointForPointToPoint(t *testing.T) {
	places := &fakePlaces{}
	svc, _ := newTestRouteService(places)

	preferences := domain_models.NewUserPreferences()
	preferences.RouteShape = domain_models.ShapePointToPoint

	_, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 60, preferences)
	assert.Equal(t, utils.CodeMissingEndPoint, planningCode(t, err))
	assert.Equal(t, 0, places.calls)
}

func TestPlanRouteExcludesZeroWeightCategories(t *testing.T) {
	museum := domain_models.POI{
		Name: "City Museum", Latitude: 40.001, Longitude: -74.0,
		Score: 90, Tags: []string{"museum"},
	}
	places := &fakePlaces{pois: []domain_models.POI{museum}}
	svc, _ := newTestRouteService(places)

	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryMuseum, 0)

	_, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 60, preferences)
	assert.Equal(t, utils.CodeNoSuitablePOIs, planningCode(t, err))
}

func TestPlanRouteLoopRecordsMetrics(t *testing.T) {
	near := domain_models.POI{Name: "Near Fountain", Latitude: 40.0005, Longitude: -74.0, Score: 50}
	places := &fakePlaces{pois: []domain_models.POI{near}}
	svc, metrics := newTestRouteService(places)

	route, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 60, domain_models.NewUserPreferences())
	require.NoError(t, err)
	require.Len(t, route.Points, 1)

	summary := metrics.Summary()
	assert.Equal(t, int64(1), summary["totalRequests"])
	assert.Equal(t, int64(1), summary["successfulRequests"])
	assert.Equal(t, int64(1), summary["totalRoutes"])
	assert.Equal(t, int64(1), summary["algorithmUsage"].(map[string]int64)[AlgorithmTwoPointLoop])
	assert.Equal(t, int64(1), summary["routeShapes"].(map[string]int64)[string(domain_models.ShapeLoop)])
}

func TestPlanRouteDispatchesPointToPoint(t *testing.T) {
	mid := domain_models.POI{Name: "Old Library", Latitude: 40.001, Longitude: -74.0, Score: 40}
	places := &fakePlaces{pois: []domain_models.POI{mid}}
	svc, metrics := newTestRouteService(places)

	endLat, endLng := 40.002, -74.0
	preferences := domain_models.NewUserPreferences()
	preferences.RouteShape = domain_models.ShapePointToPoint
	preferences.EndLat = &endLat
	preferences.EndLng = &endLng

	route, err := svc.PlanRoute(context.Background(), 40.0, -74.0, 60, preferences)
	require.NoError(t, err)
	assert.Len(t, route.Points, 1)

	summary := metrics.Summary()
	assert.Equal(t, int64(1), summary["algorithmUsage"].(map[string]int64)[AlgorithmAStarP2P])
}

func TestApplyPreferenceScoringRescales(t *testing.T) {
	park := domain_models.POI{Name: "Green Park", Score: 100, Tags: []string{"park"}}

	preferences := domain_models.NewUserPreferences()
	preferences.SetCategoryWeight(domain_models.CategoryPark, 2.0)

	scored := applyPreferenceScoring([]domain_models.POI{park}, preferences)
	require.Len(t, scored, 1)
	assert.Equal(t, 200.0, scored[0].Score)
	assert.Equal(t, 100.0, park.Score, "input POIs stay untouched")
}
