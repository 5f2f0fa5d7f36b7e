package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"

	"walkabout/internal/models/domain_models"
)

// TravelCache memoizes walking times and polylines in front of a
// TravelService. Keys round coordinates to six decimal digits; polyline
// keys include the ordered waypoint list plus the route-shape tag, so
// reordered waypoints are cache-distinct. Concurrent misses for the same
// key each call the provider; the last write wins.
type TravelCache struct {
	provider TravelService

	walkingTimes sync.Map // string -> int
	polylines    sync.Map // string -> string

	totalRequests atomic.Int64
	hits          atomic.Int64
	misses        atomic.Int64
	timeEntries   atomic.Int64
	polyEntries   atomic.Int64
}

// CacheStats is a point-in-time snapshot of cache effectiveness.
type CacheStats struct {
	TotalRequests        int64   `json:"totalRequests"`
	Hits                 int64   `json:"hits"`
	Misses               int64   `json:"misses"`
	WalkingTimeCacheSize int64   `json:"walkingTimeCacheSize"`
	PolylineCacheSize    int64   `json:"polylineCacheSize"`
	HitRate              float64 `json:"hitRate"`
}

func NewTravelCache(provider TravelService) *TravelCache {
	return &TravelCache{provider: provider}
}

func (c *TravelCache) WalkingTimeMinutes(ctx context.Context, fromLat, fromLng, toLat, toLng float64) (int, error) {
	c.totalRequests.Add(1)
	key := locationKey(fromLat, fromLng, toLat, toLng)

	if cached, ok := c.walkingTimes.Load(key); ok {
		c.hits.Add(1)
		return cached.(int), nil
	}

	c.misses.Add(1)
	minutes, err := c.provider.WalkingTimeMinutes(ctx, fromLat, fromLng, toLat, toLng)
	if err != nil {
		return 0, err
	}
	if _, loaded := c.walkingTimes.Swap(key, minutes); !loaded {
		c.timeEntries.Add(1)
	}
	return minutes, nil
}

func (c *TravelCache) PolylineWithWaypoints(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	key := polylineKey(startLat, startLng, points, "WAYPOINTS")
	return c.cachedPolyline(key, func() (string, error) {
		return c.provider.PolylineWithWaypoints(ctx, startLat, startLng, points)
	})
}

func (c *TravelCache) PolylineForLoop(ctx context.Context, startLat, startLng float64, points []domain_models.POI) (string, error) {
	key := polylineKey(startLat, startLng, points, "LOOP")
	return c.cachedPolyline(key, func() (string, error) {
		return c.provider.PolylineForLoop(ctx, startLat, startLng, points)
	})
}

func (c *TravelCache) PolylinePointToPoint(ctx context.Context, startLat, startLng, endLat, endLng float64, points []domain_models.POI) (string, error) {
	var key strings.Builder
	fmt.Fprintf(&key, "%.6f,%.6f->%.6f,%.6f|P2P|", startLat, startLng, endLat, endLng)
	for _, p := range points {
		fmt.Fprintf(&key, "%.6f,%.6f;", p.Latitude, p.Longitude)
	}
	return c.cachedPolyline(key.String(), func() (string, error) {
		return c.provider.PolylinePointToPoint(ctx, startLat, startLng, endLat, endLng, points)
	})
}

func (c *TravelCache) cachedPolyline(key string, fetch func() (string, error)) (string, error) {
	c.totalRequests.Add(1)

	if cached, ok := c.polylines.Load(key); ok {
		c.hits.Add(1)
		return cached.(string), nil
	}

	c.misses.Add(1)
	polyline, err := fetch()
	if err != nil {
		return "", err
	}
	if _, loaded := c.polylines.Swap(key, polyline); !loaded {
		c.polyEntries.Add(1)
	}
	return polyline, nil
}

func (c *TravelCache) Stats() CacheStats {
	total := c.totalRequests.Load()
	hits := c.hits.Load()

	hitRate := 0.0
	if total > 0 {
		hitRate = float64(hits) * 100.0 / float64(total)
	}

	return CacheStats{
		TotalRequests:        total,
		Hits:                 hits,
		Misses:               c.misses.Load(),
		WalkingTimeCacheSize: c.timeEntries.Load(),
		PolylineCacheSize:    c.polyEntries.Load(),
		HitRate:              hitRate,
	}
}

func (c *TravelCache) Clear() {
	c.walkingTimes.Range(func(k, _ any) bool {
		c.walkingTimes.Delete(k)
		return true
	})
	c.polylines.Range(func(k, _ any) bool {
		c.polylines.Delete(k)
		return true
	})
	c.totalRequests.Store(0)
	c.hits.Store(0)
	c.misses.Store(0)
	c.timeEntries.Store(0)
	c.polyEntries.Store(0)
}

func locationKey(lat1, lng1, lat2, lng2 float64) string {
	return fmt.Sprintf("%.6f,%.6f->%.6f,%.6f", lat1, lng1, lat2, lng2)
}

func polylineKey(startLat, startLng float64, points []domain_models.POI, shape string) string {
	var key strings.Builder
	fmt.Fprintf(&key, "%.6f,%.6f|%s|", startLat, startLng, shape)
	for _, p := range points {
		fmt.Fprintf(&key, "%.6f,%.6f;", p.Latitude, p.Longitude)
	}
	return key.String()
}
