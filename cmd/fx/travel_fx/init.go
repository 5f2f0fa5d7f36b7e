package travelfx

import (
	"go.uber.org/fx"

	"walkabout/internal/services"
)

var Module = fx.Provide(provideTravelCache)

func provideTravelCache() *services.TravelCache {
	return services.NewTravelCache(services.NewGoogleRoutesClient())
}
