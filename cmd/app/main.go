package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"walkabout/cmd/fx/controllers_fx"
	"walkabout/cmd/fx/metrics_fx"
	"walkabout/cmd/fx/places_fx"
	"walkabout/cmd/fx/planner_fx"
	"walkabout/cmd/fx/scheduler_fx"
	"walkabout/cmd/fx/travel_fx"
	"walkabout/internal/api/controllers"
	"walkabout/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	app := fx.New(
		metricsfx.Module,
		placesfx.Module,
		travelfx.Module,
		plannerfx.Module,
		schedulerfx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	routesController *controllers.RoutesController,
	metricsController *controllers.MetricsController,
	poisController *controllers.POIsController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, routesController, metricsController, poisController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	routesController *controllers.RoutesController,
	metricsController *controllers.MetricsController,
	poisController *controllers.POIsController) {

	api := r.Group("/api")

	routesGroup := api.Group("/routes")
	routesGroup.POST("/optimized", routesController.PlanOptimizedRoute)
	routesGroup.POST("/sightseeing", routesController.PlanSightseeingDay)

	api.GET("/cache/stats", metricsController.GetCacheStats)

	metricsGroup := api.Group("/metrics")
	metricsGroup.GET("", metricsController.GetMetrics)
	metricsGroup.GET("/cache", metricsController.GetCacheStats)
	metricsGroup.GET("/dashboard", metricsController.GetDashboard)
	metricsGroup.POST("/reset", middleware.AdminAuthMiddleware(), metricsController.ResetMetrics)

	api.GET("/pois/search", poisController.SearchByType)
	api.GET("/categories", poisController.ListCategories)
}
