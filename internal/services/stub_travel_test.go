package services

import (
	"context"
	"math"
	"sync"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

// stubTravel derives walking minutes from straight-line distance at
// walking pace, so tests control timing purely through coordinates.
type stubTravel struct {
	mu        sync.Mutex
	timeCalls int
	polyCalls int

	polyline string
	polyErr  error
}

func newStubTravel() *stubTravel {
	return &stubTravel{polyline: "stub_polyline"}
}

func (s *stubTravel) WalkingTimeMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error) {
	s.mu.Lock()
	s.timeCalls++
	s.mu.Unlock()

	meters := utils.HaversineMeters(fromLat, fromLng, toLat, toLng)
	minutes := int(math.Round(meters / walkMetersPerMinute))
	if minutes == 0 && meters > 1 {
		minutes = 1
	}
	return minutes, nil
}

func (s *stubTravel) PolylineWithWaypoints(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	return s.polylineCall()
}

func (s *stubTravel) PolylineForLoop(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	return s.polylineCall()
}

func (s *stubTravel) PolylinePointToPoint(ctx context.Context, startLat, startLng, endLat, endLng float64, points []domain_models.POI) (string, error) {
	return s.polylineCall()
}

func (s *stubTravel) polylineCall() (string, error) {
	s.mu.Lock()
	s.polyCalls++
	s.mu.Unlock()
	if s.polyErr != nil {
		return "", s.polyErr
	}
	return s.polyline, nil
}
