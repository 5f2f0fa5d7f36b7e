package services

import (
	"context"
	"log"

	"walkabout/internal/models/domain_models"
)

const (
	outwardDwellMinutes = 5
	returnDwellMinutes  = 10
	maxOutwardLeg       = 30
	returnSafetyMargin  = 15

	// Sentinel total for a return route that cannot make it home in time.
	// Budgets are capped well below it, so such loops never validate.
	unreachableReturnTime = 999
)

// LoopService grows a loop in two phases: push outward one POI at a time
// by value-per-minute, then greedily walk home collecting POIs that still
// leave enough time to finish. Each outward extension is only kept if a
// complete return route fits the budget; the last extension that does not
// fit is rolled back.
type LoopService struct {
	travel TravelService
}

func NewLoopService(travel TravelService) *LoopService {
	return &LoopService{travel: travel}
}

func (s *LoopService) FindLoop(
	ctx context.Context,
	startLat, startLng float64,
	minutes int,
	pois []domain_models.POI,
	preferences *domain_models.UserPreferences,
) (domain_models.Route, error) {
	pool := dedupePOIs(pois)

	used := make(map[string]bool)
	var outward []domain_models.POI
	outwardTime := 0
	curLat, curLng := startLat, startLng

	var best *domain_models.Route

	for {
		next, travel, err := s.findBestOutwardPOI(ctx, curLat, curLng, pool, used, preferences)
		if err != nil {
			return domain_models.EmptyRoute(), err
		}
		if next == nil {
			break
		}

		outward = append(outward, *next)
		used[next.Key()] = true
		newOutwardTime := outwardTime + travel + outwardDwellMinutes

		returnRoute, err := s.buildReturnRoute(ctx,
			next.Latitude, next.Longitude, startLat, startLng,
			minutes-newOutwardTime, pool, used, preferences)
		if err != nil {
			return domain_models.EmptyRoute(), err
		}

		if newOutwardTime+returnRoute.TotalTime <= minutes {
			points := make([]domain_models.POI, 0, len(outward)+len(returnRoute.Points))
			points = append(points, outward...)
			points = append(points, returnRoute.Points...)

			score := 0.0
			for _, poi := range points {
				score += poi.Score
			}

			loop := domain_models.NewRoute(points, score,
				newOutwardTime+returnRoute.TotalTime,
				s.safePolyline(ctx, startLat, startLng, points))
			best = &loop

			outwardTime = newOutwardTime
			curLat, curLng = next.Latitude, next.Longitude
			continue
		}

		// This extension broke the budget; undo it and stop growing.
		outward = outward[:len(outward)-1]
		break
	}

	if best == nil {
		return domain_models.EmptyRoute(), nil
	}
	return *best, nil
}

// findBestOutwardPOI picks the unused POI with the best weighted score per
// minute of walking, within a single-leg cap.
func (s *LoopService) findBestOutwardPOI(
	ctx context.Context,
	fromLat, fromLng float64,
	pool []domain_models.POI,
	used map[string]bool,
	preferences *domain_models.UserPreferences,
) (*domain_models.POI, int, error) {
	var best *domain_models.POI
	bestTravel := 0
	bestValue := 0.0

	for i := range pool {
		poi := pool[i]
		if used[poi.Key()] {
			continue
		}

		travel, err := s.travel.WalkingTimeMinutes(ctx, fromLat, fromLng, poi.Latitude, poi.Longitude)
		if err != nil {
			return nil, 0, err
		}
		if travel == UnreachableMinutes || travel > maxOutwardLeg {
			continue
		}

		value := poi.Score * boostWeight(poi, preferences) / float64(maxInt(1, travel))
		if best == nil || value > bestValue {
			best = &pool[i]
			bestTravel = travel
			bestValue = value
		}
	}

	return best, bestTravel, nil
}

// buildReturnRoute walks from the loop's far point back home, grabbing
// POIs that still leave time for the trip back. Candidates that pull
// toward home earn a progress bonus.
func (s *LoopService) buildReturnRoute(
	ctx context.Context,
	fromLat, fromLng, homeLat, homeLng float64,
	timeLimit int,
	pool []domain_models.POI,
	used map[string]bool,
	preferences *domain_models.UserPreferences,
) (domain_models.Route, error) {
	directHome, err := s.travel.WalkingTimeMinutes(ctx, fromLat, fromLng, homeLat, homeLng)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}
	if directHome == UnreachableMinutes || directHome > timeLimit {
		return domain_models.Route{TotalTime: unreachableReturnTime}, nil
	}

	taken := make(map[string]bool, len(used))
	for k := range used {
		taken[k] = true
	}

	var points []domain_models.POI
	curLat, curLng := fromLat, fromLng
	timeRemaining := timeLimit
	timeHome := directHome

	for timeRemaining > timeHome+returnSafetyMargin {
		var best *domain_models.POI
		bestTravel, bestHome := 0, 0
		bestValue := 0.0

		for i := range pool {
			poi := pool[i]
			if taken[poi.Key()] {
				continue
			}

			travel, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, poi.Latitude, poi.Longitude)
			if err != nil {
				return domain_models.EmptyRoute(), err
			}
			toHome, err := s.travel.WalkingTimeMinutes(ctx, poi.Latitude, poi.Longitude, homeLat, homeLng)
			if err != nil {
				return domain_models.EmptyRoute(), err
			}
			if travel == UnreachableMinutes || toHome == UnreachableMinutes {
				continue
			}
			if travel+returnDwellMinutes+toHome > timeRemaining {
				continue
			}

			progressBonus := 0.0
			if gain := float64(timeHome - toHome); gain > 0 {
				progressBonus = 2.0 * gain
			}
			value := (poi.Score*boostWeight(poi, preferences) + progressBonus) / float64(maxInt(1, travel))
			if best == nil || value > bestValue {
				best = &pool[i]
				bestTravel = travel
				bestHome = toHome
				bestValue = value
			}
		}

		if best == nil {
			break
		}

		points = append(points, *best)
		taken[best.Key()] = true
		timeRemaining -= bestTravel + returnDwellMinutes
		curLat, curLng = best.Latitude, best.Longitude
		timeHome = bestHome
	}

	totalTime, score, err := s.returnTotals(ctx, fromLat, fromLng, homeLat, homeLng, points, directHome)
	if err != nil {
		return domain_models.EmptyRoute(), err
	}
	return domain_models.NewRoute(points, score, totalTime, ""), nil
}

func (s *LoopService) returnTotals(
	ctx context.Context,
	fromLat, fromLng, homeLat, homeLng float64,
	points []domain_models.POI,
	directHome int,
) (int, float64, error) {
	if len(points) == 0 {
		return directHome, 0, nil
	}

	total := 0
	score := 0.0
	curLat, curLng := fromLat, fromLng
	for _, poi := range points {
		leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, poi.Latitude, poi.Longitude)
		if err != nil {
			return 0, 0, err
		}
		total += leg + returnDwellMinutes
		score += poi.Score
		curLat, curLng = poi.Latitude, poi.Longitude
	}

	leg, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, homeLat, homeLng)
	if err != nil {
		return 0, 0, err
	}
	return total + leg, score, nil
}

// safePolyline degrades to an empty geometry; a loop without a drawn line
// is still a valid answer.
func (s *LoopService) safePolyline(ctx context.Context, startLat, startLng float64, points []domain_models.POI) string {
	polyline, err := s.travel.PolylineForLoop(ctx, startLat, startLng, points)
	if err != nil {
		log.Printf("loop polyline failed: %v", err)
		return ""
	}
	return polyline
}

// boostWeight is the strongest preference weight across the POI's
// categories, floored at neutral: sub-neutral weights were already
// applied during rescoring and must not penalize a pick twice.
func boostWeight(poi domain_models.POI, preferences *domain_models.UserPreferences) float64 {
	weight := 1.0
	for _, category := range poi.AllCategories() {
		if w := preferences.CategoryWeight(category); w > weight {
			weight = w
		}
	}
	return weight
}

// matchedWeight is the strongest preference weight across the POI's
// categories, neutral when nothing matches.
func matchedWeight(poi domain_models.POI, preferences *domain_models.UserPreferences) float64 {
	weight := 1.0
	matched := false
	for _, category := range poi.AllCategories() {
		w := preferences.CategoryWeight(category)
		if !matched || w > weight {
			weight = w
			matched = true
		}
	}
	if !matched {
		return 1.0
	}
	return weight
}

func dedupePOIs(pois []domain_models.POI) []domain_models.POI {
	seen := make(map[string]bool, len(pois))
	var out []domain_models.POI
	for _, poi := range pois {
		if seen[poi.Key()] {
			continue
		}
		seen[poi.Key()] = true
		out = append(out, poi)
	}
	return out
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
