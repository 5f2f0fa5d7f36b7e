package services

import (
	"sort"
	"strings"

	"walkabout/internal/models/domain_models"
)

// ImportanceScorer ranks POIs for the sightseeing scheduler using review
// volume, rating, category, raw tags, and name markers.
type ImportanceScorer struct{}

func NewImportanceScorer() *ImportanceScorer {
	return &ImportanceScorer{}
}

func (s *ImportanceScorer) CalculateImportance(poi domain_models.POI) int {
	score := 0

	reviews := poi.ReviewCount
	switch {
	case reviews > 100000:
		score += 100
	case reviews > 50000:
		score += 80
	case reviews > 20000:
		score += 60
	case reviews > 10000:
		score += 40
	case reviews > 5000:
		score += 20
	case reviews > 2000:
		score += 10
	}

	rating := poi.Rating
	switch {
	case rating >= 4.7:
		score += 20
	case rating >= 4.5:
		score += 15
	case rating >= 4.3:
		score += 10
	case rating >= 4.0:
		score += 5
	default:
		score -= 20
	}

	switch poi.PrimaryCategory() {
	case domain_models.CategoryMuseum:
		score += 30
	case domain_models.CategoryAquarium, domain_models.CategoryZoo:
		score += 25
	case domain_models.CategoryObservationDeck, domain_models.CategoryHistoricSite:
		score += 20
	}

	if poi.HasTag("tourist_attraction") {
		score += 20
	}
	if poi.HasTag("landmark") {
		score += 15
	}
	if poi.HasTag("point_of_interest") {
		score += 5
	}

	name := strings.ToLower(poi.Name)
	if strings.Contains(name, "national") {
		score += 15
	}
	if strings.Contains(name, "museum of") {
		score += 15
	}
	if strings.Contains(name, "memorial") {
		score += 10
	}
	if strings.Contains(name, "tower") || strings.Contains(name, "building") {
		score += 10
	}
	if strings.Contains(name, "palace") || strings.Contains(name, "castle") {
		score += 15
	}
	if strings.Contains(name, "cathedral") || strings.Contains(name, "basilica") {
		score += 10
	}
	if strings.Contains(name, "park") {
		score += 5
	}

	if score < 0 {
		score = 0
	}
	return score
}

const (
	minImportanceScore = 30
	maxTopAttractions  = 15
)

// SelectTopAttractions builds scored attractions, filters out the
// unimportant and the avoided, applies preference boosts, and keeps the
// top 15 by importance.
func (s *ImportanceScorer) SelectTopAttractions(
	pois []domain_models.POI,
	preferences *domain_models.UserPreferences,
) []domain_models.Attraction {
	var qualified []domain_models.Attraction
	for _, poi := range pois {
		importance := s.CalculateImportance(poi)
		if importance < minImportanceScore {
			continue
		}
		qualified = append(qualified, domain_models.Attraction{
			POI:             poi,
			ImportanceScore: importance,
			VisitMinutes:    SmartVisitMinutes(poi, poi.PrimaryCategory(), 1.0),
		})
	}

	if preferences.HasCustomPreferences() {
		for i := range qualified {
			weight := preferences.CategoryWeight(qualified[i].PrimaryCategory())
			if weight > 1.0 {
				qualified[i].ImportanceScore = int(float64(qualified[i].ImportanceScore) * weight)
			} else if weight == 0.0 {
				qualified[i].ImportanceScore = 0
			}
		}
	}

	// Zero importance marks hard-excluded attractions.
	kept := qualified[:0]
	for _, attr := range qualified {
		if attr.ImportanceScore > 0 {
			kept = append(kept, attr)
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].ImportanceScore > kept[j].ImportanceScore
	})
	if len(kept) > maxTopAttractions {
		kept = kept[:maxTopAttractions]
	}
	return kept
}
