package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"walkabout/internal/models/domain_models"
	"walkabout/internal/models/request_models"
	"walkabout/internal/services"
	"walkabout/pkg/utils"
)

type RoutesController struct {
	routeService *services.RouteService
	scheduler    *services.SchedulerService
}

func NewRoutesController(routeService *services.RouteService, scheduler *services.SchedulerService) *RoutesController {
	return &RoutesController{
		routeService: routeService,
		scheduler:    scheduler,
	}
}

func (r *RoutesController) PlanOptimizedRoute(c *gin.Context) {
	var req request_models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	preferences := buildPreferences(req.Preferences)
	preferences.RouteShape = domain_models.ParseRouteShape(strings.ToUpper(req.RouteShape))
	preferences.EndLat = req.EndLat
	preferences.EndLng = req.EndLng

	route, err := r.routeService.PlanRoute(c.Request.Context(), req.StartLat, req.StartLng, req.Minutes, preferences)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, route, "Route planned successfully")
}

func (r *RoutesController) PlanSightseeingDay(c *gin.Context) {
	var req request_models.SightseeingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	preferences := buildPreferences(req.Preferences)

	schedule, err := r.scheduler.PlanDay(c.Request.Context(),
		req.StartLat, req.StartLng, req.StartTime, req.EndTime,
		preferences, req.IncludeLunchBreak)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, schedule, "Sightseeing day planned successfully")
}

// buildPreferences applies the requested category weights; unknown
// category names are ignored.
func buildPreferences(weights map[string]float64) *domain_models.UserPreferences {
	preferences := domain_models.NewUserPreferences()
	for name, weight := range weights {
		if category, ok := domain_models.ParseCategory(strings.ToUpper(name)); ok {
			preferences.SetCategoryWeight(category, weight)
		}
	}
	return preferences
}
