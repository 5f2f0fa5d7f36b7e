package plannerfx

import (
	"go.uber.org/fx"

	"walkabout/internal/services"
)

var Module = fx.Provide(
	provideAStarService,
	provideLoopService,
	provideOneWayService,
	provideRouteService)

func provideAStarService(cache *services.TravelCache) *services.AStarService {
	return services.NewAStarService(cache)
}

func provideLoopService(cache *services.TravelCache) *services.LoopService {
	return services.NewLoopService(cache)
}

func provideOneWayService(cache *services.TravelCache) *services.OneWayService {
	return services.NewOneWayService(cache)
}

func provideRouteService(
	places services.PlacesService,
	astar *services.AStarService,
	loop *services.LoopService,
	oneway *services.OneWayService,
	metrics *services.MetricsService,
) *services.RouteService {
	return services.NewRouteService(places, astar, loop, oneway, metrics)
}
