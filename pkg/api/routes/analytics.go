package routes

import (
	"math"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const onTimeThresholdMinutes = 5

func roundTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

type analyticsRoutes struct {
	busesCollection    *mongo.Collection
	tripsCollection    *mongo.Collection
	trackingCollection *mongo.Collection
}

func AnalyticsRouter(router fiber.Router, instance *database.Instance) {
	ar := &analyticsRoutes{
		busesCollection:    instance.Collection("buses"),
		tripsCollection:    instance.Collection("trips"),
		trackingCollection: instance.Collection("tracking"),
	}

	router.Get("/route/:routeid/performance", ar.routePerformance)
	router.Get("/operator/:operatorid/performance", ar.operatorPerformance)
	router.Get("/reports/delays", http_server.RequireRole(http_server.UserRoleAdmin), ar.delayReport)
}

type tripMetrics struct {
	TotalTrips     int `json:"totalTrips"`
	CompletedTrips int `json:"completedTrips"`
	CancelledTrips int `json:"cancelledTrips"`
	DelayedTrips   int `json:"delayedTrips"`
	OnTimeTrips    int `json:"onTimeTrips"`

	AverageDelayMinutes float64 `json:"averageDelay"`
	OnTimePercentage    float64 `json:"onTimePercentage"`
	CompletionRate      float64 `json:"completionRate"`
}

func calculateTripMetrics(trips []busdf.Trip) tripMetrics {
	metrics := tripMetrics{TotalTrips: len(trips)}

	totalDelay := 0
	for _, trip := range trips {
		switch trip.Status {
		case busdf.TripStatusCompleted:
			metrics.CompletedTrips += 1
		case busdf.TripStatusCancelled:
			metrics.CancelledTrips += 1
		}

		if trip.DelayMinutes > onTimeThresholdMinutes {
			metrics.DelayedTrips += 1
		} else {
			metrics.OnTimeTrips += 1
		}

		totalDelay += trip.DelayMinutes
	}

	if metrics.TotalTrips > 0 {
		metrics.AverageDelayMinutes = roundTwoDecimals(float64(totalDelay) / float64(metrics.TotalTrips))
		metrics.OnTimePercentage = roundTwoDecimals(float64(metrics.OnTimeTrips) / float64(metrics.TotalTrips) * 100)
		metrics.CompletionRate = roundTwoDecimals(float64(metrics.CompletedTrips) / float64(metrics.TotalTrips) * 100)
	}

	return metrics
}

func (ar *analyticsRoutes) tripsSince(c *fiber.Ctx, filter bson.M, days int) ([]busdf.Trip, error) {
	cutoff := busdf.At(time.Now().AddDate(0, 0, -days))
	filter["scheduledstart"] = bson.M{"$gte": cutoff.DateString()}

	cursor, err := ar.tripsCollection.Find(c.Context(), filter)
	if err != nil {
		return nil, err
	}

	trips := []busdf.Trip{}
	if err := cursor.All(c.Context(), &trips); err != nil {
		return nil, err
	}

	return trips, nil
}

func (ar *analyticsRoutes) routePerformance(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	trips, err := ar.tripsSince(c, bson.M{"routeid": c.Params("routeid")}, days)
	if err != nil {
		return renderError(c, "Error calculating route performance", err)
	}

	return c.JSON(fiber.Map{
		"routeId":    c.Params("routeid"),
		"periodDays": days,
		"metrics":    calculateTripMetrics(trips),
	})
}

func (ar *analyticsRoutes) operatorPerformance(c *fiber.Ctx) error {
	days := c.QueryInt("days", 7)
	if days <= 0 {
		days = 7
	}

	cursor, err := ar.busesCollection.Find(c.Context(),
		bson.M{"operatorid": c.Params("operatorid")},
		options.Find().SetProjection(bson.M{"primaryidentifier": 1, "isactive": 1}),
	)
	if err != nil {
		return renderError(c, "Error calculating operator performance", err)
	}

	var buses []struct {
		PrimaryIdentifier string `bson:"primaryidentifier"`
		IsActive          bool   `bson:"isactive"`
	}
	if err := cursor.All(c.Context(), &buses); err != nil {
		return renderError(c, "Error calculating operator performance", err)
	}

	busIDs := []string{}
	activeBuses := 0
	for _, bus := range buses {
		busIDs = append(busIDs, bus.PrimaryIdentifier)
		if bus.IsActive {
			activeBuses += 1
		}
	}

	trips := []busdf.Trip{}
	if len(busIDs) > 0 {
		trips, err = ar.tripsSince(c, bson.M{"busid": bson.M{"$in": busIDs}}, days)
		if err != nil {
			return renderError(c, "Error calculating operator performance", err)
		}
	}

	return c.JSON(fiber.Map{
		"operatorId":  c.Params("operatorid"),
		"periodDays":  days,
		"fleetSize":   len(buses),
		"activeBuses": activeBuses,
		"metrics":     calculateTripMetrics(trips),
	})
}

func (ar *analyticsRoutes) delayReport(c *fiber.Ctx) error {
	hours := c.QueryInt("hours", 24)
	if hours <= 0 {
		hours = 24
	}
	minDelay := c.QueryInt("minDelay", 10)

	since := busdf.At(time.Now().Add(-time.Duration(hours) * time.Hour))

	cursor, err := ar.trackingCollection.Find(c.Context(), bson.M{
		"createddate": bson.M{"$gte": since.DateString()},
		"delay":       bson.M{"$gte": minDelay},
	})
	if err != nil {
		return renderError(c, "Error generating delay report", err)
	}

	reports := []busdf.PositionReport{}
	if err := cursor.All(c.Context(), &reports); err != nil {
		return renderError(c, "Error generating delay report", err)
	}

	// The date filter is day-granular so trim the window in process.
	delayed := []busdf.PositionReport{}
	affectedBuses := map[string]bool{}
	affectedRoutes := map[string]bool{}
	maxDelay := 0
	totalDelay := 0

	for _, report := range reports {
		recordedAt, err := report.RecordedAt()
		if err != nil || recordedAt.Before(since) {
			continue
		}

		delayed = append(delayed, report)
		affectedBuses[report.BusID] = true
		affectedRoutes[report.RouteID] = true
		totalDelay += report.DelayMinutes

		if report.DelayMinutes > maxDelay {
			maxDelay = report.DelayMinutes
		}
	}

	averageDelay := 0.0
	if len(delayed) > 0 {
		averageDelay = roundTwoDecimals(float64(totalDelay) / float64(len(delayed)))
	}

	generatedAt := busdf.Now()

	return c.JSON(fiber.Map{
		"periodHours":    hours,
		"minDelay":       minDelay,
		"totalReports":   len(delayed),
		"affectedBuses":  len(affectedBuses),
		"affectedRoutes": len(affectedRoutes),
		"averageDelay":   averageDelay,
		"maxDelay":       maxDelay,
		"reports":        delayed,
		"generatedAt":    generatedAt.DateString() + " " + generatedAt.TimeString(),
	})
}
