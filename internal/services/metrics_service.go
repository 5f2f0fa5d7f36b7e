package services

import (
	"math"
	"sort"
	"sync"
	"sync/atomic"

	"walkabout/internal/models/domain_models"
)

const recentTimesWindow = 100

// MetricsService counts planning traffic in-process: totals via atomics,
// per-key breakdowns and the recent-latency window behind a mutex. All
// numbers reset together.
type MetricsService struct {
	totalRequests        atomic.Int64
	successfulRequests   atomic.Int64
	failedRequests       atomic.Int64
	totalGenerationTime  atomic.Int64
	totalPOIsReturned    atomic.Int64
	totalRoutesGenerated atomic.Int64

	mu             sync.Mutex
	routeShapes    map[string]int64
	categoryBoosts map[string]int64
	algorithmUsage map[string]int64
	algorithmTime  map[string]int64
	errorCounts    map[string]int64
	recentTimes    []int64
}

func NewMetricsService() *MetricsService {
	m := &MetricsService{}
	m.reset()
	return m
}

func (m *MetricsService) reset() {
	m.totalRequests.Store(0)
	m.successfulRequests.Store(0)
	m.failedRequests.Store(0)
	m.totalGenerationTime.Store(0)
	m.totalPOIsReturned.Store(0)
	m.totalRoutesGenerated.Store(0)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.routeShapes = map[string]int64{
		string(domain_models.ShapeLoop):         0,
		string(domain_models.ShapeOneWay):       0,
		string(domain_models.ShapePointToPoint): 0,
	}
	m.categoryBoosts = map[string]int64{}
	m.algorithmUsage = map[string]int64{
		AlgorithmTwoPointLoop: 0,
		AlgorithmGreedyOneWay: 0,
		AlgorithmAStarP2P:     0,
	}
	m.algorithmTime = map[string]int64{
		AlgorithmTwoPointLoop: 0,
		AlgorithmGreedyOneWay: 0,
		AlgorithmAStarP2P:     0,
	}
	m.errorCounts = map[string]int64{}
	m.recentTimes = nil
}

func (m *MetricsService) Reset() { m.reset() }

func (m *MetricsService) RecordRequest(shape domain_models.RouteShape) {
	m.totalRequests.Add(1)
	m.mu.Lock()
	m.routeShapes[string(shape)]++
	m.mu.Unlock()
}

func (m *MetricsService) RecordBoostedCategory(category domain_models.POICategory) {
	m.mu.Lock()
	m.categoryBoosts[string(category)]++
	m.mu.Unlock()
}

func (m *MetricsService) RecordSuccess() {
	m.successfulRequests.Add(1)
}

func (m *MetricsService) RecordFailure(errorCode string) {
	m.failedRequests.Add(1)
	m.mu.Lock()
	m.errorCounts[errorCode]++
	m.mu.Unlock()
}

func (m *MetricsService) RecordRouteGeneration(shape domain_models.RouteShape, algorithm string, durationMs int64, poiCount int) {
	m.totalRoutesGenerated.Add(1)
	m.totalGenerationTime.Add(durationMs)
	m.totalPOIsReturned.Add(int64(poiCount))

	m.mu.Lock()
	defer m.mu.Unlock()
	m.algorithmUsage[algorithm]++
	m.algorithmTime[algorithm] += durationMs
	m.recentTimes = append(m.recentTimes, durationMs)
	if len(m.recentTimes) > recentTimesWindow {
		m.recentTimes = m.recentTimes[len(m.recentTimes)-recentTimesWindow:]
	}
}

// Summary is a flat snapshot suitable for a JSON dashboard.
func (m *MetricsService) Summary() map[string]any {
	total := m.totalRequests.Load()
	successful := m.successfulRequests.Load()
	routes := m.totalRoutesGenerated.Load()

	successRate := 0.0
	if total > 0 {
		successRate = float64(successful) * 100.0 / float64(total)
	}
	avgPOIs := 0.0
	avgGeneration := 0.0
	if routes > 0 {
		avgPOIs = float64(m.totalPOIsReturned.Load()) / float64(routes)
		avgGeneration = float64(m.totalGenerationTime.Load()) / float64(routes)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	recentAvg := 0.0
	if n := len(m.recentTimes); n > 0 {
		var sum int64
		for _, t := range m.recentTimes {
			sum += t
		}
		recentAvg = float64(sum) / float64(n)
	}

	return map[string]any{
		"totalRequests":       total,
		"successfulRequests":  successful,
		"failedRequests":      m.failedRequests.Load(),
		"successRate":         successRate,
		"totalRoutes":         routes,
		"avgPOIsPerRoute":     avgPOIs,
		"avgGenerationTimeMs": avgGeneration,
		"recentAvgTimeMs":     recentAvg,
		"p95GenerationTimeMs": percentile(m.recentTimes, 95),
		"p99GenerationTimeMs": percentile(m.recentTimes, 99),
		"routeShapes":         copyCounts(m.routeShapes),
		"categoryBoosts":      copyCounts(m.categoryBoosts),
		"algorithmUsage":      copyCounts(m.algorithmUsage),
		"algorithmTotalMs":    copyCounts(m.algorithmTime),
		"errorCounts":         copyCounts(m.errorCounts),
	}
}

func percentile(times []int64, p int) int64 {
	if len(times) == 0 {
		return 0
	}
	sorted := make([]int64, len(times))
	copy(sorted, times)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(math.Ceil(float64(p)/100.0*float64(len(sorted)))) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func copyCounts(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}
