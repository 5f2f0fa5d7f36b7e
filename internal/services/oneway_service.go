package services

import (
	"context"
	"sort"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

const (
	onewayDwellMinutes  = 5
	onewayMaxPOIs       = 20
	densityRadiusMeters = 300.0
	densityBonusFactor  = 0.5

	// Flat bonus for early picks close to the start.
	proximityBonus       = 200.0
	proximityRangeMeters = 1000.0
	proximityPickLimit   = 3
)

// OneWayService plans open-ended routes: pick high-value POIs favoring
// dense clusters, order them nearest-neighbor from the start, then trim
// to the time budget with provider walking times.
type OneWayService struct {
	travel TravelService
}

func NewOneWayService(travel TravelService) *OneWayService {
	return &OneWayService{travel: travel}
}

func (s *OneWayService) FindRoute(
	ctx context.Context,
	startLat, startLng float64,
	minutes int,
	pois []domain_models.POI,
) (domain_models.Route, error) {
	maxPOIs := minutes/8 + 3
	if maxPOIs > onewayMaxPOIs {
		maxPOIs = onewayMaxPOIs
	}

	selected := selectDenseCluster(startLat, startLng, pois, maxPOIs)
	ordered := orderByNearestNeighbor(startLat, startLng, selected)

	trimmed, err := s.trimToBudget(ctx, startLat, startLng, minutes, ordered)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	totalTime, err := s.walkTotals(ctx, startLat, startLng, trimmed)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}

	score := 0.0
	for _, poi := range trimmed {
		score += poi.Score
	}

	polyline := ""
	if len(trimmed) > 0 {
		polyline, err = s.travel.PolylineWithWaypoints(ctx, startLat, startLng, trimmed)
		if err != nil {
			return domain_models.EmptyRoute(), err
		}
	}

	return domain_models.NewRoute(trimmed, score, totalTime, polyline), nil
}

// selectDenseCluster greedily picks POIs by score plus a bonus for sitting
// near other still-available POIs, so the route leans toward walkable
// clusters instead of scattered singles.
func selectDenseCluster(startLat, startLng float64, pois []domain_models.POI, maxPOIs int) []domain_models.POI {
	remaining := make([]domain_models.POI, len(pois))
	copy(remaining, pois)

	var selected []domain_models.POI
	for len(selected) < maxPOIs && len(remaining) > 0 {
		bestIdx := -1
		bestValue := 0.0

		for i, poi := range remaining {
			density := 0.0
			for j, other := range remaining {
				if i == j {
					continue
				}
				if utils.HaversineMeters(poi.Latitude, poi.Longitude, other.Latitude, other.Longitude) <= densityRadiusMeters {
					density += other.Score
				}
			}

			value := poi.Score + densityBonusFactor*density
			if len(selected) < proximityPickLimit &&
				utils.HaversineMeters(startLat, startLng, poi.Latitude, poi.Longitude) < proximityRangeMeters {
				value += proximityBonus
			}

			if bestIdx < 0 || value > bestValue {
				bestIdx = i
				bestValue = value
			}
		}

		selected = append(selected, remaining[bestIdx])
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)
	}

	return selected
}

func orderByNearestNeighbor(startLat, startLng float64, pois []domain_models.POI) []domain_models.POI {
	remaining := make([]domain_models.POI, len(pois))
	copy(remaining, pois)

	ordered := make([]domain_models.POI, 0, len(remaining))
	curLat, curLng := startLat, startLng
	for len(remaining) > 0 {
		sort.SliceStable(remaining, func(i, j int) bool {
			return utils.HaversineMeters(curLat, curLng, remaining[i].Latitude, remaining[i].Longitude) <
				utils.HaversineMeters(curLat, curLng, remaining[j].Latitude, remaining[j].Longitude)
		})
		next := remaining[0]
		ordered = append(ordered, next)
		remaining = remaining[1:]
		curLat, curLng = next.Latitude, next.Longitude
	}
	return ordered
}

// trimToBudget replays the ordered POIs against provider walking times and
// keeps each one that still fits; a POI that does not fit is skipped but
// later, closer POIs may still make it.
func (s *OneWayService) trimToBudget(ctx context.Context, startLat, startLng float64, maxMinutes int, ordered []domain_models.POI) ([]domain_models.POI, error) {
	var kept []domain_models.POI
	total := 0
	curLat, curLng := startLat, startLng

	for _, poi := range ordered {
		leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, poi.Latitude, poi.Longitude)
		if err != nil {
			return nil, err
		}
		if leg == UnreachableMinutes {
			continue
		}
		if total+leg+onewayDwellMinutes > maxMinutes {
			continue
		}
		total += leg + onewayDwellMinutes
		kept = append(kept, poi)
		curLat, curLng = poi.Latitude, poi.Longitude
	}

	return kept, nil
}

func (s *OneWayService) walkTotals(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (int, error) {
	total := 0
	curLat, curLng := startLat, startLng
	for _, poi := range points {
		leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, poi.Latitude, poi.Longitude)
		if err != nil {
			return 0, err
		}
		total += leg + onewayDwellMinutes
		curLat, curLng = poi.Latitude, poi.Longitude
	}
	return total, nil
}
