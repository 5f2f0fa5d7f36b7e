package services

import (
	"math"

	"walkabout/internal/models/domain_models"
)

// SmartVisitMinutes estimates how long a visit should take: a per-category
// base duration scaled by popularity/rating, an optional external time
// multiplier, clamped to the category's [min, max] range.
func SmartVisitMinutes(poi domain_models.POI, category domain_models.POICategory, timeMultiplier float64) int {
	if category == "" {
		return 15
	}

	base := baseVisitDuration(category)
	multiplier := durationMultiplier(category, poi.ReviewCount, poi.Rating)

	minutes := int(math.Round(float64(base) * multiplier * timeMultiplier))

	min := minVisitDuration(category)
	max := maxVisitDuration(category)
	if minutes < min {
		minutes = min
	}
	if minutes > max {
		minutes = max
	}
	return minutes
}

// IsMajorAttraction reports whether the category demands a long visit.
func IsMajorAttraction(category domain_models.POICategory) bool {
	switch category {
	case domain_models.CategoryMuseum,
		domain_models.CategoryAquarium,
		domain_models.CategoryZoo,
		domain_models.CategoryObservationDeck,
		domain_models.CategoryHistoricSite:
		return true
	}
	return false
}

func minVisitDuration(category domain_models.POICategory) int {
	switch category {
	case domain_models.CategoryMuseum, domain_models.CategoryAquarium, domain_models.CategoryZoo:
		return 60
	case domain_models.CategoryObservationDeck, domain_models.CategoryHistoricSite:
		return 30
	default:
		return 10
	}
}

func maxVisitDuration(category domain_models.POICategory) int {
	switch category {
	case domain_models.CategoryMuseum:
		return 240
	case domain_models.CategoryAquarium, domain_models.CategoryZoo:
		return 210
	case domain_models.CategoryObservationDeck, domain_models.CategoryHistoricSite:
		return 90
	default:
		return 120
	}
}

func baseVisitDuration(category domain_models.POICategory) int {
	switch category {
	case domain_models.CategoryMuseum:
		return 120
	case domain_models.CategoryAquarium:
		return 90
	case domain_models.CategoryZoo:
		return 150
	case domain_models.CategoryObservationDeck:
		return 45
	case domain_models.CategoryHistoricSite:
		return 45
	case domain_models.CategoryTheater:
		return 90
	case domain_models.CategoryChurch:
		return 25
	case domain_models.CategoryLandmark:
		return 20
	case domain_models.CategoryPark:
		return 30
	case domain_models.CategoryViewpoint:
		return 15
	case domain_models.CategorySculpture, domain_models.CategoryStreetArt, domain_models.CategoryFountain:
		return 10
	case domain_models.CategoryShopping:
		return 45
	case domain_models.CategoryRestaurant:
		return 60
	case domain_models.CategoryCafe:
		return 20
	case domain_models.CategoryTrending:
		return 25
	case domain_models.CategoryHiddenGem:
		return 20
	default:
		return 15
	}
}

func durationMultiplier(category domain_models.POICategory, reviews int, rating float64) float64 {
	multiplier := 1.0

	switch category {
	case domain_models.CategoryMuseum:
		// More popular museums mean more exhibits.
		if reviews > 50000 {
			multiplier = 1.5
		} else if reviews > 20000 {
			multiplier = 1.25
		} else if reviews < 5000 {
			multiplier = 0.75
		}
		if rating >= 4.7 {
			multiplier *= 1.1
		}

	case domain_models.CategoryZoo, domain_models.CategoryAquarium:
		if reviews > 30000 {
			multiplier = 1.3
		} else if reviews > 10000 {
			multiplier = 1.1
		} else {
			multiplier = 0.8
		}

	case domain_models.CategoryPark:
		if reviews > 50000 {
			multiplier = 2.0
		} else if reviews > 10000 {
			multiplier = 1.5
		} else if reviews < 2000 {
			multiplier = 0.7
		}

	case domain_models.CategoryLandmark:
		if reviews > 100000 {
			multiplier = 1.5
		} else if reviews > 50000 {
			multiplier = 1.25
		} else if reviews < 10000 {
			multiplier = 0.75
		}

	case domain_models.CategoryObservationDeck:
		// Queues at the big decks dominate the visit.
		if reviews > 50000 {
			multiplier = 1.5
		} else if reviews > 10000 {
			multiplier = 1.2
		}

	case domain_models.CategoryChurch:
		if reviews > 20000 {
			multiplier = 1.4
		} else if reviews > 5000 {
			multiplier = 1.1
		} else {
			multiplier = 0.8
		}

	case domain_models.CategoryHistoricSite:
		if reviews > 20000 {
			multiplier = 1.5
		} else if reviews > 5000 {
			multiplier = 1.2
		}

	case domain_models.CategoryHiddenGem:
		if rating >= 4.7 {
			multiplier = 1.3
		} else if rating >= 4.5 {
			multiplier = 1.1
		}
	}

	return multiplier
}
