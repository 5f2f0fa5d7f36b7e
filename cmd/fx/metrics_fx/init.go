package metricsfx

import (
	"go.uber.org/fx"

	"walkabout/internal/services"
)

var Module = fx.Provide(provideMetricsService)

func provideMetricsService() *services.MetricsService {
	return services.NewMetricsService()
}
