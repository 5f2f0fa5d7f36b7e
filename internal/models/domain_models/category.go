package domain_models

// POICategory is the fixed classification set used for preferences,
// importance scoring, and visit durations.
type POICategory string

const (
	// Visual & photo spots
	CategoryLandmark  POICategory = "LANDMARK"
	CategoryPark      POICategory = "PARK"
	CategoryStreetArt POICategory = "STREET_ART"
	CategoryViewpoint POICategory = "VIEWPOINT"
	CategoryFountain  POICategory = "FOUNTAIN"
	CategorySculpture POICategory = "SCULPTURE"

	// Cultural
	CategoryHistoricSite POICategory = "HISTORIC_SITE"
	CategoryChurch       POICategory = "CHURCH"
	CategoryTheater      POICategory = "THEATER"

	// Urban
	CategoryShopping   POICategory = "SHOPPING"
	CategoryCitySquare POICategory = "CITY_SQUARE"

	// Food & drink
	CategoryCafe       POICategory = "CAFE"
	CategoryRestaurant POICategory = "RESTAURANT"

	// Sightseeing
	CategoryMuseum          POICategory = "MUSEUM"
	CategoryAquarium        POICategory = "AQUARIUM"
	CategoryZoo             POICategory = "ZOO"
	CategoryObservationDeck POICategory = "OBSERVATION_DECK"

	// Popularity-based
	CategoryHiddenGem POICategory = "HIDDEN_GEM"
	CategoryTrending  POICategory = "TRENDING"
)

// CategoryTags maps each category to the raw provider tags it matches.
// The slice order is significant: category resolution walks it top to
// bottom, so earlier entries win when a tag appears under several
// categories (e.g. "observation_deck" under both VIEWPOINT and
// OBSERVATION_DECK).
type CategoryTags struct {
	Category POICategory
	Tags     []string
}

var categoryTagTable = []CategoryTags{
	{CategoryLandmark, []string{"landmark", "tourist_attraction", "point_of_interest"}},
	{CategoryPark, []string{"park"}},
	{CategoryStreetArt, []string{"public_art", "art_gallery"}},
	{CategoryViewpoint, []string{"viewpoint", "observation_deck"}},
	{CategoryFountain, []string{"fountain"}},
	{CategorySculpture, []string{"monument", "statue"}},
	{CategoryHistoricSite, []string{"historic_site", "heritage_site"}},
	{CategoryChurch, []string{"church", "place_of_worship", "synagogue", "mosque", "temple"}},
	{CategoryTheater, []string{"theater", "performing_arts_theater"}},
	{CategoryShopping, []string{"shopping_mall", "store", "clothing_store"}},
	{CategoryCitySquare, []string{"plaza", "town_square"}},
	{CategoryCafe, []string{"cafe", "coffee_shop"}},
	{CategoryRestaurant, []string{"restaurant"}},
	{CategoryMuseum, []string{"museum"}},
	{CategoryAquarium, []string{"aquarium"}},
	{CategoryZoo, []string{"zoo"}},
	{CategoryObservationDeck, []string{"observation_deck"}},
	{CategoryHiddenGem, []string{"hidden_gem"}},
	{CategoryTrending, []string{"trending"}},
}

// AllCategoryTags returns the ordered category-to-tag table.
func AllCategoryTags() []CategoryTags {
	out := make([]CategoryTags, len(categoryTagTable))
	copy(out, categoryTagTable)
	return out
}

// AllCategories lists every category in table order.
func AllCategories() []POICategory {
	out := make([]POICategory, 0, len(categoryTagTable))
	for _, entry := range categoryTagTable {
		out = append(out, entry.Category)
	}
	return out
}

// ParseCategory resolves a category name, case-sensitively matching the
// canonical upper-snake form.
func ParseCategory(name string) (POICategory, bool) {
	for _, entry := range categoryTagTable {
		if string(entry.Category) == name {
			return entry.Category, true
		}
	}
	return "", false
}

func (c POICategory) matchesTag(tag string) bool {
	for _, entry := range categoryTagTable {
		if entry.Category != c {
			continue
		}
		for _, t := range entry.Tags {
			if t == tag {
				return true
			}
		}
	}
	return false
}

// Generic tags are checked last during primary-category resolution.
var genericTags = map[string]bool{
	"landmark":           true,
	"tourist_attraction": true,
	"point_of_interest":  true,
	"establishment":      true,
}

// Categories resolved by dedicated rules before the tag-table walk.
var preResolvedCategories = map[POICategory]bool{
	CategoryMuseum:          true,
	CategoryZoo:             true,
	CategoryAquarium:        true,
	CategoryObservationDeck: true,
	CategoryLandmark:        true,
	CategoryHiddenGem:       true,
	CategoryTrending:        true,
}

// Names the places provider tags inconsistently; these are always
// observation decks regardless of raw tags.
var observationDeckNames = []string{
	"empire state building",
	"top of the rock",
	"one world observatory",
	"observation",
}
