package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"walkabout/internal/models/domain_models"
	"walkabout/internal/services"
	"walkabout/pkg/utils"
)

type POIsController struct {
	places services.PlacesService
}

func NewPOIsController(places services.PlacesService) *POIsController {
	return &POIsController{
		places: places,
	}
}

func (p *POIsController) SearchByType(c *gin.Context) {
	poiType := c.Query("type")
	if poiType == "" {
		utils.RespondError(c, http.StatusBadRequest, "POI type is required")
		return
	}

	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid latitude")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid longitude")
		return
	}

	pois, err := p.places.SearchByType(c.Request.Context(), lat, lng, poiType)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, pois, "POIs fetched successfully")
}

func (p *POIsController) ListCategories(c *gin.Context) {
	type categoryEntry struct {
		Category domain_models.POICategory `json:"category"`
		Tags     []string                  `json:"tags"`
	}

	entries := make([]categoryEntry, 0)
	for _, entry := range domain_models.AllCategoryTags() {
		entries = append(entries, categoryEntry{Category: entry.Category, Tags: entry.Tags})
	}

	utils.RespondSuccess(c, entries, "Categories fetched successfully")
}
