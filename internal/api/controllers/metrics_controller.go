package controllers

import (
	"github.com/gin-gonic/gin"
	"walkabout/internal/services"
	"walkabout/pkg/utils"
)

type MetricsController struct {
	metrics *services.MetricsService
	cache   *services.TravelCache
}

func NewMetricsController(metrics *services.MetricsService, cache *services.TravelCache) *MetricsController {
	return &MetricsController{
		metrics: metrics,
		cache:   cache,
	}
}

func (m *MetricsController) GetMetrics(c *gin.Context) {
	utils.RespondSuccess(c, m.metrics.Summary(), "Metrics fetched successfully")
}

func (m *MetricsController) GetCacheStats(c *gin.Context) {
	utils.RespondSuccess(c, m.cache.Stats(), "Cache stats fetched successfully")
}

func (m *MetricsController) GetDashboard(c *gin.Context) {
	dashboard := gin.H{
		"metrics": m.metrics.Summary(),
		"cache":   m.cache.Stats(),
	}
	utils.RespondSuccess(c, dashboard, "Dashboard fetched successfully")
}

func (m *MetricsController) ResetMetrics(c *gin.Context) {
	m.metrics.Reset()
	utils.RespondSuccess(c, nil, "Metrics reset successfully")
}
