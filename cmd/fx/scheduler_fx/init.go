package schedulerfx

import (
	"go.uber.org/fx"

	"walkabout/internal/services"
)

var Module = fx.Provide(
	provideImportanceScorer,
	provideSchedulerService)

func provideImportanceScorer() *services.ImportanceScorer {
	return services.NewImportanceScorer()
}

func provideSchedulerService(
	places services.PlacesService,
	scorer *services.ImportanceScorer,
	cache *services.TravelCache,
) *services.SchedulerService {
	return services.NewSchedulerService(places, scorer, cache)
}
