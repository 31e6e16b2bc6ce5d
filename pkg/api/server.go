package api

import (
	"github.com/busmitra/busmitra/pkg/api/routes"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

func SetupServer(listen string, instance *database.Instance, redisClient *redis.Client) error {
	webApp := fiber.New()
	webApp.Use(http_server.NewLogger())

	webApp.Get("version", routes.APIVersion)
	webApp.Get("metrics", adaptor.HTTPHandler(promhttp.Handler()))

	group := webApp.Group("/api", http_server.Authenticate())

	routes.TrackingRouter(group.Group("/tracking"), instance, redisClient)

	routes.BusesRouter(group.Group("/buses"), instance)
	routes.OperatorsRouter(group.Group("/operators"), instance)
	routes.RoutesRouter(group.Group("/routes"), instance)
	routes.StopsRouter(group.Group("/stops"), instance)
	routes.TripsRouter(group.Group("/trips"), instance)
	routes.ProvincesRouter(group.Group("/provinces"), instance)

	routes.SearchRouter(group.Group("/search"), instance)
	routes.AnalyticsRouter(group.Group("/analytics"), instance)

	return webApp.Listen(listen)
}
