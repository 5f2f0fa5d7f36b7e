package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"walkabout/internal/models/db_models"
	"walkabout/internal/models/domain_models"
	"walkabout/internal/repositories"
	"walkabout/pkg/utils"
)

// PlacesService discovers provider-scored POIs around a coordinate.
// Results are untrusted, unordered input; museums are filtered out of
// short walking routes unless includeMuseums is set.
type PlacesService interface {
	NearbyPOIs(ctx context.Context, lat, lng float64, includeMuseums bool) ([]domain_models.POI, error)
	SearchByType(ctx context.Context, lat, lng float64, poiType string) ([]domain_models.POI, error)
}

// -------------- Google Places client ---------------

type GooglePlacesClient struct {
	HTTP    *http.Client
	APIKey  string
	BaseURL string

	// Delay between paginated requests; the places API needs ~2s before
	// a next_page_token becomes valid.
	PageDelay time.Duration
}

const placesMaxPages = 3

func NewGooglePlacesClient() *GooglePlacesClient {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		panic("GOOGLE_MAPS_API_KEY is empty")
	}
	return &GooglePlacesClient{
		HTTP:      &http.Client{Timeout: 15 * time.Second},
		APIKey:    key,
		BaseURL:   "https://maps.googleapis.com/maps/api/place/nearbysearch/json",
		PageDelay: 2 * time.Second,
	}
}

type placesResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Rating           *float64 `json:"rating"`
		UserRatingsTotal int      `json:"user_ratings_total"`
		Types            []string `json:"types"`
		Photos           []struct {
			PhotoReference string `json:"photo_reference"`
		} `json:"photos"`
	} `json:"results"`
	NextPageToken string `json:"next_page_token"`
}

func (c *GooglePlacesClient) NearbyPOIs(ctx context.Context, lat, lng float64, includeMuseums bool) ([]domain_models.POI, error) {
	var all []domain_models.POI

	pageToken := ""
	for page := 0; page < placesMaxPages; page++ {
		resp, err := c.fetchPage(ctx, lat, lng, 3000,
			"tourist_attraction|point_of_interest|landmark|park|museum|art_gallery|cafe|restaurant", pageToken)
		if err != nil {
			return nil, err
		}

		all = append(all, c.processResults(resp, includeMuseums)...)

		pageToken = resp.NextPageToken
		if pageToken == "" {
			break
		}
		select {
		case <-time.After(c.PageDelay):
		case <-ctx.Done():
			return all, nil
		}
	}

	return all, nil
}

// SearchByType returns the top 20 scored POIs of a single raw type within
// reasonable walking distance.
func (c *GooglePlacesClient) SearchByType(ctx context.Context, lat, lng float64, poiType string) ([]domain_models.POI, error) {
	resp, err := c.fetchPage(ctx, lat, lng, 1500, poiType, "")
	if err != nil {
		return nil, err
	}

	points := c.processResults(resp, true)
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Score > points[j].Score
	})
	if len(points) > 20 {
		points = points[:20]
	}
	return points, nil
}

func (c *GooglePlacesClient) fetchPage(ctx context.Context, lat, lng float64, radius int, types, pageToken string) (*placesResponse, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%v,%v", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radius))
	q.Set("type", types)
	q.Set("key", c.APIKey)
	if pageToken != "" {
		q.Set("pagetoken", pageToken)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Places provider request failed", err)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Places provider unavailable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, utils.WrapPlanningError(utils.CodeExternalService,
			"Places provider unavailable", fmt.Errorf("places api status: %s", resp.Status))
	}

	var out placesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Places provider response invalid", err)
	}
	return &out, nil
}

func (c *GooglePlacesClient) processResults(resp *placesResponse, includeMuseums bool) []domain_models.POI {
	var points []domain_models.POI

	for _, place := range resp.Results {
		rating := 3.0
		if place.Rating != nil {
			rating = *place.Rating
		}

		tags := append([]string(nil), place.Types...)
		if !includeMuseums && contains(tags, "museum") {
			continue
		}

		photoURL := ""
		if len(place.Photos) > 0 {
			photoURL = fmt.Sprintf(
				"https://maps.googleapis.com/maps/api/place/photo?maxwidth=400&photoreference=%s&key=%s",
				place.Photos[0].PhotoReference, c.APIKey)
		}

		points = append(points, domain_models.POI{
			Name:        place.Name,
			Latitude:    place.Geometry.Location.Lat,
			Longitude:   place.Geometry.Location.Lng,
			Score:       improvedScore(rating, place.UserRatingsTotal, tags),
			Tags:        tags,
			ReviewCount: place.UserRatingsTotal,
			Rating:      rating,
			PhotoURL:    photoURL,
		})
	}

	return points
}

// improvedScore blends rating and review volume with type and popularity
// multipliers. Reviews are capped at 50k so the biggest attractions do
// not dominate every route.
func improvedScore(rating float64, numReviews int, tags []string) float64 {
	cappedReviews := numReviews
	if cappedReviews > 50000 {
		cappedReviews = 50000
	}
	baseScore := rating * math.Sqrt(float64(cappedReviews+1))

	typeMultiplier := 1.0
	if contains(tags, "tourist_attraction") {
		typeMultiplier = 1.5
	}
	if contains(tags, "park") && numReviews > 10000 {
		typeMultiplier = math.Max(typeMultiplier, 1.4)
	}
	if contains(tags, "point_of_interest") {
		typeMultiplier = math.Max(typeMultiplier, 1.2)
	}
	if contains(tags, "landmark") {
		typeMultiplier = math.Max(typeMultiplier, 1.4)
	}
	if contains(tags, "museum") {
		typeMultiplier = math.Max(typeMultiplier, 1.5)
	}

	popularityBonus := 1.0
	switch {
	case numReviews > 50000:
		popularityBonus = 1.5
	case numReviews > 20000:
		popularityBonus = 1.3
	case numReviews > 5000:
		popularityBonus = 1.15
	}

	hiddenGemBoost := 1.0
	if numReviews >= 100 && numReviews <= 2000 && rating >= 4.5 {
		hiddenGemBoost = 3.0
	}

	return baseScore * typeMultiplier * popularityBonus * hiddenGemBoost
}

func contains(tags []string, tag string) bool {
	for _, t := range tags {
		if t == tag {
			return true
		}
	}
	return false
}

// -------------- Curated directory source ---------------

// CuratedPOIService serves the curated Postgres directory through the
// same contract as the external provider (POI_SOURCE=db).
type CuratedPOIService struct {
	repo repositories.POIRepository
}

func NewCuratedPOIService(repo repositories.POIRepository) *CuratedPOIService {
	return &CuratedPOIService{repo: repo}
}

func (s *CuratedPOIService) NearbyPOIs(ctx context.Context, lat, lng float64, includeMuseums bool) ([]domain_models.POI, error) {
	rows, err := s.repo.FindNearby(ctx, lat, lng, 3000)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "POI directory unavailable", err)
	}

	var points []domain_models.POI
	for _, row := range rows {
		poi := rowToPOI(row)
		if !includeMuseums && poi.HasTag("museum") {
			continue
		}
		points = append(points, poi)
	}
	return points, nil
}

func (s *CuratedPOIService) SearchByType(ctx context.Context, lat, lng float64, poiType string) ([]domain_models.POI, error) {
	rows, err := s.repo.FindByTag(ctx, lat, lng, poiType)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "POI directory unavailable", err)
	}

	var points []domain_models.POI
	for _, row := range rows {
		points = append(points, rowToPOI(row))
	}
	if len(points) > 20 {
		points = points[:20]
	}
	return points, nil
}

func rowToPOI(row db_models.CuratedPOI) domain_models.POI {
	var tags []string
	for _, tag := range strings.Split(row.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return domain_models.POI{
		Name:        row.Name,
		Latitude:    row.Latitude,
		Longitude:   row.Longitude,
		Score:       row.Score,
		Tags:        tags,
		ReviewCount: row.ReviewCount,
		Rating:      row.Rating,
		PhotoURL:    row.PhotoURL,
	}
}
