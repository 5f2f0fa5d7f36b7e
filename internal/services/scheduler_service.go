package services

import (
	"context"
	"sort"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

const (
	boostedWeightThreshold = 2.0
	maxGuaranteeWalk       = 30
	minStopWindow          = 20
	lunchMinutes           = 60
	lunchSuggestion        = "Restaurants nearby"
)

// SchedulerService builds a timed sightseeing day inside a clock window:
// one guaranteed pick per strongly-boosted category, then nearest-first
// filling, with an optional lunch break slotted around early afternoon.
type SchedulerService struct {
	places PlacesService
	scorer *ImportanceScorer
	travel TravelService
}

func NewSchedulerService(places PlacesService, scorer *ImportanceScorer, travel TravelService) *SchedulerService {
	return &SchedulerService{places: places, scorer: scorer, travel: travel}
}

func (s *SchedulerService) PlanDay(
	ctx context.Context,
	startLat, startLng float64,
	startClock, endClock string,
	preferences *domain_models.UserPreferences,
	includeLunch bool,
) (domain_models.Schedule, error) {
	if err := validateCoordinate(startLat, startLng); err != nil {
		return domain_models.NewSchedule(), err
	}

	dayStart, err := utils.ParseClock(startClock)
	if err != nil {
		return domain_models.NewSchedule(), utils.WrapPlanningError(utils.CodeInvalidTimeWindow,
			"Start time must be HH:MM", err)
	}
	dayEnd, err := utils.ParseClock(endClock)
	if err != nil {
		return domain_models.NewSchedule(), utils.WrapPlanningError(utils.CodeInvalidTimeWindow,
			"End time must be HH:MM", err)
	}
	if dayEnd.Sub(dayStart) <= 0 {
		return domain_models.NewSchedule(), utils.NewPlanningError(utils.CodeInvalidTimeWindow,
			"End time must be after start time")
	}

	pois, err := s.places.NearbyPOIs(ctx, startLat, startLng, true)
	if err != nil {
		return domain_models.NewSchedule(), err
	}

	// An empty candidate pool still yields a valid, empty schedule.
	var candidates []domain_models.Attraction
	for _, attr := range s.scorer.SelectTopAttractions(pois, preferences) {
		if attr.ShouldBeExcluded(preferences) {
			continue
		}
		candidates = append(candidates, attr)
	}

	var boosted, optional []domain_models.Attraction
	for _, attr := range candidates {
		weight := preferences.CategoryWeight(attr.PrimaryCategory())
		if weight >= boostedWeightThreshold {
			boosted = append(boosted, attr)
		} else if weight > 0 {
			optional = append(optional, attr)
		}
	}

	guaranteed, err := s.guaranteePass(ctx, startLat, startLng, boosted)
	if err != nil {
		return domain_models.NewSchedule(), err
	}

	toSchedule := make([]domain_models.Attraction, 0, len(candidates))
	toSchedule = append(toSchedule, guaranteed...)
	inGuaranteed := make(map[string]bool, len(guaranteed))
	for _, attr := range guaranteed {
		inGuaranteed[attr.Key()] = true
	}
	for _, attr := range boosted {
		if !inGuaranteed[attr.Key()] {
			toSchedule = append(toSchedule, attr)
		}
	}
	toSchedule = append(toSchedule, optional...)

	return s.fillDay(ctx, startLat, startLng, dayStart, dayEnd, toSchedule, includeLunch)
}

// guaranteePass keeps the best attraction of each strongly-boosted
// category, swapping in a closer alternative when the best one sits more
// than a short walk from the running position.
func (s *SchedulerService) guaranteePass(
	ctx context.Context,
	startLat, startLng float64,
	boosted []domain_models.Attraction,
) ([]domain_models.Attraction, error) {
	var order []domain_models.POICategory
	groups := make(map[domain_models.POICategory][]domain_models.Attraction)
	for _, attr := range boosted {
		category := attr.PrimaryCategory()
		if _, ok := groups[category]; !ok {
			order = append(order, category)
		}
		groups[category] = append(groups[category], attr)
	}

	var guaranteed []domain_models.Attraction
	curLat, curLng := startLat, startLng

	for _, category := range order {
		group := groups[category]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].ImportanceScore > group[j].ImportanceScore
		})

		pick := group[0]
		walk, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, pick.Latitude, pick.Longitude)
		if err != nil {
			return nil, err
		}
		if walk > maxGuaranteeWalk {
			for _, alt := range group[1:] {
				altWalk, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, alt.Latitude, alt.Longitude)
				if err != nil {
					return nil, err
				}
				if altWalk <= maxGuaranteeWalk {
					pick = alt
					break
				}
			}
		}

		guaranteed = append(guaranteed, pick)
		curLat, curLng = pick.Latitude, pick.Longitude
	}

	return guaranteed, nil
}

func (s *SchedulerService) fillDay(
	ctx context.Context,
	startLat, startLng float64,
	dayStart, dayEnd utils.ClockTime,
	candidates []domain_models.Attraction,
	includeLunch bool,
) (domain_models.Schedule, error) {
	schedule := domain_models.NewSchedule()

	used := make(map[string]bool, len(candidates))
	curLat, curLng := startLat, startLng
	current := dayStart
	hadLunch := false

	for {
		timeLeft := dayEnd.Sub(current)
		if timeLeft < minStopWindow {
			break
		}

		var chosen *domain_models.Attraction
		chosenWalk := 0
		for i := range candidates {
			attr := candidates[i]
			if used[attr.Key()] {
				continue
			}

			walk, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, attr.Latitude, attr.Longitude)
			if err != nil {
				return schedule, err
			}
			if walk == UnreachableMinutes {
				continue
			}

			// Keep room for lunch when this visit would run past 13:00.
			lunchBuffer := 0
			if includeLunch && !hadLunch && current.Add(walk+attr.VisitMinutes).Hour() >= 13 {
				lunchBuffer = lunchMinutes
			}
			if walk+attr.VisitMinutes+lunchBuffer > timeLeft {
				continue
			}
			if chosen == nil || walk < chosenWalk {
				chosen = &candidates[i]
				chosenWalk = walk
			}
		}

		if chosen == nil {
			if includeLunch && !hadLunch && current.Hour() >= 11 && timeLeft >= lunchMinutes+minStopWindow {
				schedule.Breaks = append(schedule.Breaks, lunchBreak(current))
				current = current.Add(lunchMinutes)
				hadLunch = true
				continue
			}
			break
		}

		current = current.Add(chosenWalk)
		afterVisit := current.Add(chosen.VisitMinutes)
		if includeLunch && !hadLunch && current.Hour() >= 11 && afterVisit.Hour() >= 13 {
			// Eat before setting off instead of mid-visit.
			current = current.Add(-chosenWalk)
			schedule.Breaks = append(schedule.Breaks, lunchBreak(current))
			current = current.Add(lunchMinutes)
			hadLunch = true

			walk, err := s.travel.WalkingTimeMinutes(ctx, curLat, curLng, chosen.Latitude, chosen.Longitude)
			if err != nil {
				return schedule, err
			}
			chosenWalk = walk
			current = current.Add(chosenWalk)
		}

		arrival := current
		departure := arrival.Add(chosen.VisitMinutes)
		schedule.Stops = append(schedule.Stops, domain_models.ScheduledStop{
			Attraction:    *chosen,
			ArrivalTime:   arrival.String(),
			DepartureTime: departure.String(),
			VisitMinutes:  chosen.VisitMinutes,
			TravelMinutes: chosenWalk,
		})

		used[chosen.Key()] = true
		current = departure
		curLat, curLng = chosen.Latitude, chosen.Longitude
	}

	if includeLunch && !hadLunch && current.Hour() < 15 {
		schedule.Breaks = append(schedule.Breaks, lunchBreak(current))
		current = current.Add(lunchMinutes)
	}

	schedule.TotalMinutes = current.Sub(dayStart)

	if len(schedule.Stops) > 0 {
		points := make([]domain_models.POI, 0, len(schedule.Stops))
		for _, stop := range schedule.Stops {
			points = append(points, stop.Attraction.POI)
		}
		polyline, err := s.travel.PolylineWithWaypoints(ctx, startLat, startLng, points)
		if err != nil {
			return schedule, err
		}
		schedule.Polyline = polyline
	}

	return schedule, nil
}

func lunchBreak(at utils.ClockTime) domain_models.Break {
	return domain_models.Break{
		StartTime:       at.String(),
		DurationMinutes: lunchMinutes,
		Type:            domain_models.BreakTypeLunch,
		Suggestion:      lunchSuggestion,
	}
}
