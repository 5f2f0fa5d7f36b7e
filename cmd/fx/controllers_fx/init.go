package controllers_fx

import (
	"go.uber.org/fx"

	"walkabout/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewRoutesController),
	fx.Provide(controllers.NewMetricsController),
	fx.Provide(controllers.NewPOIsController))
