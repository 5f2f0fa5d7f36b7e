package domain_models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrimaryCategoryResolution(t *testing.T) {
	tests := []struct {
		name string
		poi  POI
		want POICategory
	}{
		{
			name: "name override beats tags",
			poi:  POI{Name: "Empire State Building", Tags: []string{"tourist_attraction"}},
			want: CategoryObservationDeck,
		},
		{
			name: "observation deck tag",
			poi:  POI{Name: "Sky Terrace", Tags: []string{"observation_deck", "viewpoint"}},
			want: CategoryObservationDeck,
		},
		{
			name: "museum tag wins over later tags",
			poi:  POI{Name: "Maritime Hall", Tags: []string{"tourist_attraction", "museum"}},
			want: CategoryMuseum,
		},
		{
			name: "first specific tag in table order",
			poi:  POI{Name: "Central Green", Tags: []string{"point_of_interest", "park"}},
			want: CategoryPark,
		},
		{
			name: "generic tags fall back to landmark",
			poi:  POI{Name: "Old Gate", Tags: []string{"tourist_attraction"}},
			want: CategoryLandmark,
		},
		{
			name: "hidden gem by popularity",
			poi:  POI{Name: "Tiny Court", ReviewCount: 500, Rating: 4.6},
			want: CategoryHiddenGem,
		},
		{
			name: "trending by volume",
			poi:  POI{Name: "Viral Wall", ReviewCount: 50000, Rating: 4.0},
			want: CategoryTrending,
		},
		{
			name: "default landmark",
			poi:  POI{Name: "Plain Spot", ReviewCount: 10, Rating: 4.0},
			want: CategoryLandmark,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.poi.PrimaryCategory())
		})
	}
}

func TestAllCategoriesDedupesInOrder(t *testing.T) {
	poi := POI{
		Name:        "River Cafe",
		Tags:        []string{"cafe", "coffee_shop", "restaurant"},
		ReviewCount: 500,
		Rating:      4.7,
	}

	categories := poi.AllCategories()
	assert.Equal(t, []POICategory{CategoryHiddenGem, CategoryCafe, CategoryRestaurant}, categories)
}

func TestShouldBeExcluded(t *testing.T) {
	preferences := NewUserPreferences()
	preferences.SetCategoryWeight(CategoryCafe, 0)

	cafe := POI{Name: "Corner Cafe", Tags: []string{"cafe", "restaurant"}}
	assert.True(t, cafe.ShouldBeExcluded(preferences))

	park := POI{Name: "Green Park", Tags: []string{"park"}}
	assert.False(t, park.ShouldBeExcluded(preferences))
}

func TestRescoredCopies(t *testing.T) {
	poi := POI{Name: "Arch", Score: 10, Rating: 4.4, Tags: []string{"landmark"}}
	scored := poi.Rescored(25)

	assert.Equal(t, 25.0, scored.Score)
	assert.Equal(t, 4.4, scored.Rating)
	assert.Equal(t, 10.0, poi.Score)

	scored.Tags[0] = "changed"
	assert.Equal(t, "landmark", poi.Tags[0], "tags must be deep-copied")
}

func TestPOIKeyPrecision(t *testing.T) {
	a := POI{Name: "Spot", Latitude: 40.1234561, Longitude: -74.0}
	b := POI{Name: "Spot", Latitude: 40.1234564, Longitude: -74.0}
	c := POI{Name: "Spot", Latitude: 40.1235, Longitude: -74.0}

	assert.Equal(t, a.Key(), b.Key(), "sub-1e-6 differences collapse")
	assert.NotEqual(t, a.Key(), c.Key())
}
