package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"walkabout/internal/models/domain_models"
	"walkabout/pkg/utils"
)

func TestMetricsSummaryAggregates(t *testing.T) {
	m := NewMetricsService()

	m.RecordRequest(domain_models.ShapeLoop)
	m.RecordRequest(domain_models.ShapeLoop)
	m.RecordRequest(domain_models.ShapeOneWay)
	m.RecordSuccess()
	m.RecordSuccess()
	m.RecordFailure(utils.CodeNoSuitablePOIs)
	m.RecordRouteGeneration(domain_models.ShapeLoop, AlgorithmTwoPointLoop, 100, 4)
	m.RecordRouteGeneration(domain_models.ShapeOneWay, AlgorithmGreedyOneWay, 300, 6)
	m.RecordBoostedCategory(domain_models.CategoryPark)

	summary := m.Summary()
	assert.Equal(t, int64(3), summary["totalRequests"])
	assert.Equal(t, int64(2), summary["successfulRequests"])
	assert.Equal(t, int64(1), summary["failedRequests"])
	assert.InDelta(t, 66.66, summary["successRate"].(float64), 0.1)
	assert.Equal(t, int64(2), summary["totalRoutes"])
	assert.InDelta(t, 5.0, summary["avgPOIsPerRoute"].(float64), 0.001)
	assert.InDelta(t, 200.0, summary["avgGenerationTimeMs"].(float64), 0.001)
	assert.InDelta(t, 200.0, summary["recentAvgTimeMs"].(float64), 0.001)

	shapes := summary["routeShapes"].(map[string]int64)
	assert.Equal(t, int64(2), shapes[string(domain_models.ShapeLoop)])
	assert.Equal(t, int64(1), shapes[string(domain_models.ShapeOneWay)])

	boosts := summary["categoryBoosts"].(map[string]int64)
	assert.Equal(t, int64(1), boosts[string(domain_models.CategoryPark)])

	errs := summary["errorCounts"].(map[string]int64)
	assert.Equal(t, int64(1), errs[utils.CodeNoSuitablePOIs])
}

func TestMetricsReset(t *testing.T) {
	m := NewMetricsService()
	m.RecordRequest(domain_models.ShapeLoop)
	m.RecordFailure(utils.CodeUnexpectedError)
	m.Reset()

	summary := m.Summary()
	assert.Equal(t, int64(0), summary["totalRequests"])
	assert.Equal(t, int64(0), summary["failedRequests"])
	assert.Empty(t, summary["errorCounts"].(map[string]int64))
}

func TestMetricsRecentWindowCapped(t *testing.T) {
	m := NewMetricsService()
	for i := 0; i < recentTimesWindow+50; i++ {
		m.RecordRouteGeneration(domain_models.ShapeLoop, AlgorithmTwoPointLoop, int64(i), 1)
	}

	m.mu.Lock()
	window := len(m.recentTimes)
	m.mu.Unlock()
	assert.Equal(t, recentTimesWindow, window)
}

func TestPercentile(t *testing.T) {
	var times []int64
	for i := int64(1); i <= 100; i++ {
		times = append(times, i)
	}

	assert.Equal(t, int64(95), percentile(times, 95))
	assert.Equal(t, int64(99), percentile(times, 99))
	assert.Equal(t, int64(0), percentile(nil, 95))
	assert.Equal(t, int64(7), percentile([]int64{7}, 99))
}
