package placesfx

import (
	"context"
	"os"

	"go.uber.org/fx"

	"walkabout/internal/infra"
	"walkabout/internal/repositories"
	"walkabout/internal/services"
)

var Module = fx.Provide(providePlacesService)

// providePlacesService selects the POI source: the curated Postgres
// directory when POI_SOURCE=db, the external places provider otherwise.
func providePlacesService(lc fx.Lifecycle) services.PlacesService {
	if os.Getenv("POI_SOURCE") == "db" {
		db := infra.InitPostgresql()
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				infra.ClosePostgresql(db)
				return nil
			},
		})
		return services.NewCuratedPOIService(repositories.NewPOIRepository(db))
	}
	return services.NewGooglePlacesClient()
}
