package routes

import (
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type tripsRoutes struct {
	collection *mongo.Collection
}

func TripsRouter(router fiber.Router, instance *database.Instance) {
	tr := &tripsRoutes{collection: instance.Collection("trips")}

	router.Get("/", tr.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleOperator, http_server.UserRoleAdmin), tr.create)
	router.Get("/active", tr.active)
	router.Get("/bus/:busid", tr.byBus)
	router.Get("/route/:routeid", tr.byRoute)
	router.Get("/:id", tr.get)
	router.Get("/:id/status", tr.status)
	router.Put("/:id/status", http_server.RequireRole(http_server.UserRoleOperator, http_server.UserRoleAdmin), tr.updateStatus)
}

func (tr *tripsRoutes) list(c *fiber.Ctx) error {
	filter := bson.M{}
	if status := c.Query("status"); status != "" {
		filter["status"] = status
	}
	if date := c.Query("date"); date != "" {
		// Scheduled starts are ISO strings so a date prefix range matches the
		// whole day.
		dayStart, err := time.Parse("2006-01-02", date)
		if err != nil {
			c.SendStatus(fiber.StatusUnprocessableEntity)
			return c.JSON(fiber.Map{
				"message": "Invalid date",
			})
		}

		filter["scheduledstart"] = bson.M{
			"$gte": dayStart.Format("2006-01-02"),
			"$lt":  dayStart.AddDate(0, 0, 1).Format("2006-01-02"),
		}
	}

	cursor, err := tr.collection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error fetching trips", err)
	}

	trips := []busdf.Trip{}
	if err := cursor.All(c.Context(), &trips); err != nil {
		return renderError(c, "Error fetching trips", err)
	}

	reduced, err := marshalForRole(c, trips)
	if err != nil {
		return renderError(c, "Error fetching trips", err)
	}

	return c.JSON(reduced)
}

type createTripInput struct {
	BusID   string `json:"busId"`
	RouteID string `json:"routeId"`

	DriverID   string `json:"driverId"`
	DriverName string `json:"driverName"`

	ScheduledStart string `json:"scheduledStart"`
	ScheduledEnd   string `json:"scheduledEnd"`

	MaxPassengers int     `json:"maxPassengers"`
	Fare          float64 `json:"fare"`
	Notes         string  `json:"notes"`
}

func (tr *tripsRoutes) create(c *fiber.Ctx) error {
	var input createTripInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.BusID == "" || input.RouteID == "" || input.ScheduledStart == "" || input.ScheduledEnd == "" {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()

	trip := busdf.Trip{
		PrimaryIdentifier: primitive.NewObjectID().Hex(),
		BusID:             input.BusID,
		RouteID:           input.RouteID,
		DriverID:          input.DriverID,
		DriverName:        input.DriverName,
		ScheduledStart:    input.ScheduledStart,
		ScheduledEnd:      input.ScheduledEnd,
		Status:            busdf.TripStatusScheduled,
		MaxPassengers:     input.MaxPassengers,
		Fare:              input.Fare,
		Notes:             input.Notes,
		IsActive:          true,
		CreatedDate:       now.DateString(),
		CreatedTime:       now.TimeString(),
	}

	if _, err := tr.collection.InsertOne(c.Context(), trip); err != nil {
		return renderError(c, "Error creating trip", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message": "Trip created!",
		"tripId":  trip.PrimaryIdentifier,
	})
}

func (tr *tripsRoutes) active(c *fiber.Ctx) error {
	cursor, err := tr.collection.Find(c.Context(), bson.M{
		"status": bson.M{"$in": busdf.ActiveTripStatuses},
	})
	if err != nil {
		return renderError(c, "Error fetching active trips", err)
	}

	trips := []busdf.Trip{}
	if err := cursor.All(c.Context(), &trips); err != nil {
		return renderError(c, "Error fetching active trips", err)
	}

	reduced, err := marshalForRole(c, trips)
	if err != nil {
		return renderError(c, "Error fetching active trips", err)
	}

	return c.JSON(reduced)
}

func (tr *tripsRoutes) byBus(c *fiber.Ctx) error {
	return tr.listWhere(c, bson.M{"busid": c.Params("busid")}, "Error fetching bus trips")
}

func (tr *tripsRoutes) byRoute(c *fiber.Ctx) error {
	return tr.listWhere(c, bson.M{"routeid": c.Params("routeid")}, "Error fetching route trips")
}

func (tr *tripsRoutes) listWhere(c *fiber.Ctx, filter bson.M, fallbackMessage string) error {
	cursor, err := tr.collection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, fallbackMessage, err)
	}

	trips := []busdf.Trip{}
	if err := cursor.All(c.Context(), &trips); err != nil {
		return renderError(c, fallbackMessage, err)
	}

	reduced, err := marshalForRole(c, trips)
	if err != nil {
		return renderError(c, fallbackMessage, err)
	}

	return c.JSON(reduced)
}

func (tr *tripsRoutes) get(c *fiber.Ctx) error {
	var trip *busdf.Trip
	tr.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&trip)

	if trip == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Trip not found",
		})
	}

	reduced, err := marshalForRole(c, trip)
	if err != nil {
		return renderError(c, "Error fetching trip", err)
	}

	return c.JSON(reduced)
}

func (tr *tripsRoutes) status(c *fiber.Ctx) error {
	var trip *busdf.Trip
	tr.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&trip)

	if trip == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Trip not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":          trip.PrimaryIdentifier,
		"status":      trip.Status,
		"delay":       trip.DelayMinutes,
		"actualStart": trip.ActualStart,
		"actualEnd":   trip.ActualEnd,
		"updatedDate": trip.UpdatedDate,
	})
}

type updateTripStatusInput struct {
	Status            *string `json:"status"`
	DelayMinutes      *int    `json:"delay"`
	CurrentPassengers *int    `json:"currentPassengers"`
	Notes             *string `json:"notes"`
}

func (tr *tripsRoutes) updateStatus(c *fiber.Ctx) error {
	var input updateTripStatusInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.Status == nil || !busdf.TripStatus(*input.Status).Valid() {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	now := busdf.Now()
	status := busdf.TripStatus(*input.Status)

	fields := bson.M{
		"status":      status,
		"updateddate": now.DateString(),
		"updatedtime": now.TimeString(),
	}
	if input.DelayMinutes != nil {
		fields["delay"] = *input.DelayMinutes
	}
	if input.CurrentPassengers != nil {
		fields["currentpassengers"] = *input.CurrentPassengers
	}
	if input.Notes != nil {
		fields["notes"] = *input.Notes
	}

	// Actual start and end are stamped on the transitions that mark them.
	switch status {
	case busdf.TripStatusStarted:
		fields["actualstart"] = now.Time().Format(time.RFC3339)
	case busdf.TripStatusCompleted:
		fields["actualend"] = now.Time().Format(time.RFC3339)
		fields["isactive"] = false
	case busdf.TripStatusCancelled:
		fields["isactive"] = false
	}

	result, err := tr.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating trip status", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Trip not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Trip status updated successfully!",
	})
}
