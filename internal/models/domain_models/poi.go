package domain_models

import (
	"fmt"
	"strings"
)

// POI is an immutable point of interest. Identity is the name plus the
// coordinates rounded to six decimal digits; rescoring produces a new
// value instead of mutating.
type POI struct {
	Name        string   `json:"name"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Score       float64  `json:"score"`
	Tags        []string `json:"types"`
	ReviewCount int      `json:"reviewCount"`
	Rating      float64  `json:"rating"`
	PhotoURL    string   `json:"photoUrl,omitempty"`
}

// Key is the identity key: name plus coordinates at 1e-6 degree precision.
func (p POI) Key() string {
	return fmt.Sprintf("%s|%.6f|%.6f", p.Name, p.Latitude, p.Longitude)
}

func (p POI) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Rescored returns a copy of the POI carrying a new score.
func (p POI) Rescored(score float64) POI {
	out := p
	out.Score = score
	tags := make([]string, len(p.Tags))
	copy(tags, p.Tags)
	out.Tags = tags
	return out
}

func (p POI) isHiddenGem() bool {
	return p.ReviewCount >= 100 && p.ReviewCount <= 2000 && p.Rating >= 4.5
}

func (p POI) isTrending() bool {
	return p.ReviewCount > 10000
}

// PrimaryCategory resolves the single best-fit category. The rules are
// ordered: name overrides, the observation_deck tag, museum/zoo/aquarium
// tags, the first specific tag in table order, generic landmark tags,
// popularity fallbacks, and finally LANDMARK.
func (p POI) PrimaryCategory() POICategory {
	lowerName := strings.ToLower(p.Name)
	for _, marker := range observationDeckNames {
		if strings.Contains(lowerName, marker) {
			return CategoryObservationDeck
		}
	}

	if p.HasTag("observation_deck") {
		return CategoryObservationDeck
	}

	for _, tag := range p.Tags {
		switch tag {
		case "museum":
			return CategoryMuseum
		case "zoo":
			return CategoryZoo
		case "aquarium":
			return CategoryAquarium
		}
	}

	for _, tag := range p.Tags {
		if genericTags[tag] {
			continue
		}
		for _, entry := range categoryTagTable {
			if preResolvedCategories[entry.Category] {
				continue
			}
			if entry.Category.matchesTag(tag) {
				return entry.Category
			}
		}
	}

	if p.HasTag("landmark") || p.HasTag("tourist_attraction") {
		return CategoryLandmark
	}

	if p.isHiddenGem() {
		return CategoryHiddenGem
	}
	if p.isTrending() {
		return CategoryTrending
	}

	return CategoryLandmark
}

// AllCategories returns every category the POI belongs to, in order of
// first match: popularity categories first, then one pass over the tags
// against the table.
func (p POI) AllCategories() []POICategory {
	var categories []POICategory
	seen := make(map[POICategory]bool)

	add := func(c POICategory) {
		if !seen[c] {
			seen[c] = true
			categories = append(categories, c)
		}
	}

	if p.isHiddenGem() {
		add(CategoryHiddenGem)
	}
	if p.isTrending() {
		add(CategoryTrending)
	}

	for _, tag := range p.Tags {
		for _, entry := range categoryTagTable {
			if entry.Category.matchesTag(tag) {
				add(entry.Category)
			}
		}
	}

	return categories
}

// ShouldBeExcluded reports whether any of the POI's categories carries a
// zero preference weight.
func (p POI) ShouldBeExcluded(preferences *UserPreferences) bool {
	for _, category := range p.AllCategories() {
		if preferences.CategoryWeight(category) == 0.0 {
			return true
		}
	}
	return false
}
