package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

// Algorithm labels reported in metrics.
const (
	AlgorithmTwoPointLoop = "TWO_POINT_LOOP"
	AlgorithmGreedyOneWay = "GREEDY_ONE_WAY"
	AlgorithmAStarP2P     = "ASTAR_P2P"
)

const (
	minRouteMinutes = 10
	maxRouteMinutes = 480
)

// RouteService validates requests, fetches and preference-scores POIs,
// and dispatches to the planner matching the requested shape.
type RouteService struct {
	places  PlacesService
	astar   *AStarService
	loop    *LoopService
	oneway  *OneWayService
	metrics *MetricsService
}

func NewRouteService(
	places PlacesService,
	astar *AStarService,
	loop *LoopService,
	oneway *OneWayService,
	metrics *MetricsService,
) *RouteService {
	return &RouteService{
		places:  places,
		astar:   astar,
		loop:    loop,
		oneway:  oneway,
		metrics: metrics,
	}
}

func (s *RouteService) PlanRoute(
	ctx context.Context,
	startLat, startLng float64,
	minutes int,
	preferences *domain_models.UserPreferences,
) (domain_models.Route, error) {
	s.metrics.RecordRequest(preferences.RouteShape)

	route, err := s.planRoute(ctx, startLat, startLng, minutes, preferences)
	if err != nil {
		if pe, ok := utils.AsPlanningError(err); ok {
			s.metrics.RecordFailure(pe.Code)
			return domain_models.EmptyRoute(), err
		}
		s.metrics.RecordFailure(utils.CodeUnexpectedError)
		return domain_models.EmptyRoute(), utils.WrapPlanningError(utils.CodeUnexpectedError, "Route planning failed", err)
	}
	return route, nil
}

func (s *RouteService) planRoute(
	ctx context.Context,
	startLat, startLng float64,
	minutes int,
	preferences *domain_models.UserPreferences,
) (domain_models.Route, error) {
	if err := validateCoordinate(startLat, startLng); err != nil {
		return domain_models.EmptyRoute(), err
	}
	if minutes < minRouteMinutes {
		return domain_models.EmptyRoute(), utils.NewPlanningError(utils.CodeTimeLimitShort,
			fmt.Sprintf("Time limit must be at least %d minutes", minRouteMinutes))
	}
	if minutes > maxRouteMinutes {
		return domain_models.EmptyRoute(), utils.NewPlanningError(utils.CodeTimeLimitLong,
			fmt.Sprintf("Time limit must be at most %d minutes", maxRouteMinutes))
	}
	if preferences.RouteShape == domain_models.ShapePointToPoint {
		if !preferences.HasEndPoint() {
			return domain_models.EmptyRoute(), utils.NewPlanningError(utils.CodeMissingEndPoint,
				"Point-to-point routes require an end point")
		}
		if err := validateCoordinate(*preferences.EndLat, *preferences.EndLng); err != nil {
			return domain_models.EmptyRoute(), err
		}
	}

	for category := range preferences.BoostedCategories() {
		s.metrics.RecordBoostedCategory(category)
	}

	pois, err := s.places.NearbyPOIs(ctx, startLat, startLng, false)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	pois = applyPreferenceScoring(pois, preferences)
	if len(pois) == 0 {
		return domain_models.EmptyRoute(), utils.NewPlanningError(utils.CodeNoSuitablePOIs,
			"No suitable points of interest near the start")
	}

	started := time.Now()
	var route domain_models.Route
	var algorithm string

	switch preferences.RouteShape {
	case domain_models.ShapeLoop:
		algorithm = AlgorithmTwoPointLoop
		route, err = s.loop.FindLoop(ctx, startLat, startLng, minutes, pois, preferences)
	case domain_models.ShapePointToPoint:
		algorithm = AlgorithmAStarP2P
		route, err = s.astar.FindRoute(ctx, startLat, startLng,
			*preferences.EndLat, *preferences.EndLng, minutes, pois, preferences, nil)
	default:
		algorithm = AlgorithmGreedyOneWay
		route, err = s.oneway.FindRoute(ctx, startLat, startLng, minutes, pois)
	}
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	elapsed := time.Since(started).Milliseconds()
	s.metrics.RecordSuccess()
	s.metrics.RecordRouteGeneration(preferences.RouteShape, algorithm, elapsed, len(route.Points))
	log.Printf("planned %s route: %d POIs in %dms", algorithm, len(route.Points), elapsed)

	return route, nil
}

func validateCoordinate(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return utils.NewPlanningError(utils.CodeInvalidLatitude, "Latitude must be between -90 and 90")
	}
	if lng < -180 || lng > 180 {
		return utils.NewPlanningError(utils.CodeInvalidLongitude, "Longitude must be between -180 and 180")
	}
	return nil
}

// applyPreferenceScoring drops POIs carrying a zero-weighted category and
// rescales the rest by their strongest matching weight. Neutral
// preferences leave the list untouched.
func applyPreferenceScoring(pois []domain_models.POI, preferences *domain_models.UserPreferences) []domain_models.POI {
	if !preferences.HasCustomPreferences() {
		return pois
	}

	var scored []domain_models.POI
	for _, poi := range pois {
		if poi.ShouldBeExcluded(preferences) {
			continue
		}
		scored = append(scored, poi.Rescored(poi.Score*matchedWeight(poi, preferences)))
	}
	return scored
}
