package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

// UnreachableMinutes marks a leg the provider could not route. Planners
// treat it as infinite but it still sums safely with dwell times.
const UnreachableMinutes = math.MaxInt32

// TravelService supplies walking times and route geometries. The three
// polyline variants key differently in the cache layer, so they stay
// separate operations.
type TravelService interface {
	WalkingTimeMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error)
	PolylineWithWaypoints(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error)
	PolylineForLoop(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error)
	PolylinePointToPoint(ctx context.Context, startLat, startLng, endLat, endLng float64, points []domain_models.POI) (string, error)
}

// -------------- Google Routes client ---------------

type GoogleRoutesClient struct {
	HTTP   *http.Client
	APIKey string
	URL    string
}

func NewGoogleRoutesClient() *GoogleRoutesClient {
	key := os.Getenv("GOOGLE_MAPS_API_KEY")
	if key == "" {
		panic("GOOGLE_MAPS_API_KEY is empty")
	}
	return &GoogleRoutesClient{
		HTTP:   &http.Client{Timeout: 15 * time.Second},
		APIKey: key,
		URL:    "https://routes.googleapis.com/directions/v2:computeRoutes",
	}
}

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type routeWaypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

func waypointAt(lat, lng float64) routeWaypoint {
	var w routeWaypoint
	w.Location.LatLng = latLng{Latitude: lat, Longitude: lng}
	return w
}

type computeRoutesRequest struct {
	TravelMode    string          `json:"travelMode"`
	Origin        routeWaypoint   `json:"origin"`
	Destination   routeWaypoint   `json:"destination"`
	Intermediates []routeWaypoint `json:"intermediates,omitempty"`
}

type computeRoutesResponse struct {
	Routes []struct {
		Duration string `json:"duration"`
		Polyline struct {
			EncodedPolyline string `json:"encodedPolyline"`
		} `json:"polyline"`
	} `json:"routes"`
}

func (c *GoogleRoutesClient) compute(ctx context.Context, body computeRoutesRequest, fieldMask string) (*computeRoutesResponse, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Travel provider request failed", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Travel provider request failed", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Goog-Api-Key", c.APIKey)
	req.Header.Set("X-Goog-FieldMask", fieldMask)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Travel provider unavailable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, utils.WrapPlanningError(utils.CodeExternalService,
			"Travel provider unavailable", fmt.Errorf("routes api status: %s", resp.Status))
	}

	var out computeRoutesResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, utils.WrapPlanningError(utils.CodeExternalService, "Travel provider response invalid", err)
	}
	return &out, nil
}

func (c *GoogleRoutesClient) WalkingTimeMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error) {
	body := computeRoutesRequest{
		TravelMode:  "WALK",
		Origin:      waypointAt(fromLat, fromLng),
		Destination: waypointAt(toLat, toLng),
	}

	out, err := c.compute(ctx, body, "routes.duration")
	if err != nil {
		return 0, err
	}
	if len(out.Routes) == 0 {
		return UnreachableMinutes, nil
	}

	seconds, err := strconv.Atoi(strings.TrimSuffix(out.Routes[0].Duration, "s"))
	if err != nil {
		return 0, utils.WrapPlanningError(utils.CodeExternalService, "Travel provider response invalid", err)
	}
	return seconds / 60, nil
}

func (c *GoogleRoutesClient) PolylineWithWaypoints(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	if len(points) == 0 {
		return "", nil
	}

	// Last point becomes the destination, the rest are intermediates.
	var intermediates []routeWaypoint
	for _, p := range points[:len(points)-1] {
		intermediates = append(intermediates, waypointAt(p.Latitude, p.Longitude))
	}
	last := points[len(points)-1]

	body := computeRoutesRequest{
		TravelMode:    "WALK",
		Origin:        waypointAt(startLat, startLng),
		Destination:   waypointAt(last.Latitude, last.Longitude),
		Intermediates: intermediates,
	}
	return c.polyline(ctx, body)
}

func (c *GoogleRoutesClient) PolylineForLoop(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	var intermediates []routeWaypoint
	for _, p := range points {
		intermediates = append(intermediates, waypointAt(p.Latitude, p.Longitude))
	}

	body := computeRoutesRequest{
		TravelMode:    "WALK",
		Origin:        waypointAt(startLat, startLng),
		Destination:   waypointAt(startLat, startLng),
		Intermediates: intermediates,
	}
	return c.polyline(ctx, body)
}

func (c *GoogleRoutesClient) PolylinePointToPoint(ctx context.Context, startLat, startLng, endLat, endLng float64, points []domain_models.POI) (string, error) {
	var intermediates []routeWaypoint
	for _, p := range points {
		intermediates = append(intermediates, waypointAt(p.Latitude, p.Longitude))
	}

	body := computeRoutesRequest{
		TravelMode:    "WALK",
		Origin:        waypointAt(startLat, startLng),
		Destination:   waypointAt(endLat, endLng),
		Intermediates: intermediates,
	}
	return c.polyline(ctx, body)
}

func (c *GoogleRoutesClient) polyline(ctx context.Context, body computeRoutesRequest) (string, error) {
	out, err := c.compute(ctx, body, "routes.polyline.encodedPolyline")
	if err != nil {
		return "", err
	}
	if len(out.Routes) == 0 {
		return "", nil
	}
	return out.Routes[0].Polyline.EncodedPolyline, nil
}
