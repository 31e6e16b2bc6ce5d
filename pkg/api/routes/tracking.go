package routes

import (
	"strconv"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/busmitra/busmitra/pkg/tracking"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sourcegraph/conc/pool"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slices"
)

type trackingRoutes struct {
	store     *tracking.PositionStore
	ingestor  *tracking.Ingestor
	proximity *tracking.ProximitySearch
	estimator *tracking.EtaEstimator

	busesCollection *mongo.Collection
}

func TrackingRouter(router fiber.Router, instance *database.Instance, redisClient *redis.Client) {
	store := tracking.NewPositionStore(instance)

	tr := &trackingRoutes{
		store:     store,
		ingestor:  tracking.NewIngestor(store),
		proximity: tracking.NewProximitySearch(store),
		estimator: tracking.NewEtaEstimator(
			tracking.NewTripRepository(instance),
			tracking.NewRouteRepository(instance),
			store,
			redisClient,
		),
		busesCollection: instance.Collection("buses"),
	}

	router.Post("/", http_server.RequireRole(http_server.UserRoleOperator), tr.ingest)
	router.Get("/nearest", tr.nearest)
	router.Get("/bus/:busid", tr.busReports)
	router.Get("/bus/:busid/history", tr.busHistory)
	router.Get("/route/:routeid", tr.routeReports)
	router.Get("/route/:routeid/active", tr.activeBuses)
	router.Get("/eta/:tripid/stop/:stopid", tr.eta)
}

func (tr *trackingRoutes) ingest(c *fiber.Ctx) error {
	var input tracking.IngestInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Request body must be valid JSON",
		})
	}

	trackingID, err := tr.ingestor.Ingest(c.Context(), input)
	if err != nil {
		return renderError(c, "Error updating location", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message":    "Location updated successfully!",
		"trackingId": trackingID,
	})
}

func (tr *trackingRoutes) busReports(c *fiber.Ctx) error {
	busID := c.Params("busid")

	reports, err := tr.store.QueryByBus(c.Context(), busID, nil)
	if err != nil {
		return renderError(c, "Error fetching bus location", err)
	}

	if len(reports) == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "No tracking data found",
		})
	}

	tracking.SortByRecencyDescending(reports)

	reduced, err := marshalForRole(c, reports)
	if err != nil {
		return renderError(c, "Error fetching bus location", err)
	}

	return c.JSON(reduced)
}

func (tr *trackingRoutes) busHistory(c *fiber.Ctx) error {
	busID := c.Params("busid")
	hours := c.QueryInt("hours", 24)
	if hours <= 0 {
		hours = 24
	}

	since := time.Now().Add(-time.Duration(hours) * time.Hour)

	reports, err := tr.store.QueryByBus(c.Context(), busID, &since)
	if err != nil {
		return renderError(c, "Error fetching bus history", err)
	}

	// Oldest first for history playback
	tracking.SortByRecencyDescending(reports)
	slices.Reverse(reports)

	reduced, err := marshalForRole(c, reports)
	if err != nil {
		return renderError(c, "Error fetching bus history", err)
	}

	return c.JSON(reduced)
}

func (tr *trackingRoutes) routeReports(c *fiber.Ctx) error {
	routeID := c.Params("routeid")
	limit := c.QueryInt("limit", 50)
	if limit <= 0 {
		limit = 50
	}

	reports, err := tr.store.QueryByRoute(c.Context(), routeID)
	if err != nil {
		return renderError(c, "Error fetching route tracking", err)
	}

	tracking.SortByRecencyDescending(reports)

	if len(reports) > limit {
		reports = reports[:limit]
	}

	reduced, err := marshalForRole(c, reports)
	if err != nil {
		return renderError(c, "Error fetching route tracking", err)
	}

	return c.JSON(reduced)
}

type activeBusRecord struct {
	Bus      busdf.Bus            `json:"bus" groups:"basic"`
	Tracking busdf.PositionReport `json:"tracking" groups:"basic"`
}

func (tr *trackingRoutes) activeBuses(c *fiber.Ctx) error {
	routeID := c.Params("routeid")

	cursor, err := tr.busesCollection.Find(c.Context(), bson.M{
		"routeid":  routeID,
		"isactive": true,
	})
	if err != nil {
		return renderError(c, "Error fetching active buses", err)
	}

	buses := []busdf.Bus{}
	if err := cursor.All(c.Context(), &buses); err != nil {
		return renderError(c, "Error fetching active buses", err)
	}

	p := pool.NewWithResults[*activeBusRecord]()
	p.WithMaxGoroutines(8)

	for _, bus := range buses {
		p.Go(func() *activeBusRecord {
			reports, err := tr.store.QueryByBus(c.Context(), bus.PrimaryIdentifier, nil)
			if err != nil {
				return nil
			}

			latest, err := tracking.Latest(reports)
			if err != nil {
				return nil
			}

			if latest.Status == busdf.PositionReportStatusCompleted {
				return nil
			}

			return &activeBusRecord{Bus: bus, Tracking: latest}
		})
	}

	activeBuses := []activeBusRecord{}
	for _, record := range p.Wait() {
		if record != nil {
			activeBuses = append(activeBuses, *record)
		}
	}

	reduced, err := marshalForRole(c, activeBuses)
	if err != nil {
		return renderError(c, "Error fetching active buses", err)
	}

	return c.JSON(reduced)
}

func (tr *trackingRoutes) nearest(c *fiber.Ctx) error {
	latQuery := c.Query("lat")
	lonQuery := c.Query("lon")

	if latQuery == "" || lonQuery == "" {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Latitude and longitude are required",
		})
	}

	lat, latErr := strconv.ParseFloat(latQuery, 64)
	lon, lonErr := strconv.ParseFloat(lonQuery, 64)
	if latErr != nil || lonErr != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Latitude and longitude are required",
		})
	}

	radius := c.QueryFloat("radius", tracking.DefaultSearchRadiusKm)
	limit := c.QueryInt("limit", tracking.DefaultSearchMaxResults)

	nearby, err := tr.proximity.FindNearest(c.Context(), lat, lon, radius, limit)
	if err != nil {
		return renderError(c, "Error finding nearest buses", err)
	}

	reduced, err := marshalForRole(c, nearby)
	if err != nil {
		return renderError(c, "Error finding nearest buses", err)
	}

	return c.JSON(reduced)
}

func (tr *trackingRoutes) eta(c *fiber.Ctx) error {
	result, err := tr.estimator.Estimate(c.Context(), c.Params("tripid"), c.Params("stopid"))
	if err != nil {
		return renderError(c, "Error calculating ETA", err)
	}

	return c.JSON(result)
}
