package routes

import (
	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type busesRoutes struct {
	collection *mongo.Collection
}

func BusesRouter(router fiber.Router, instance *database.Instance) {
	br := &busesRoutes{collection: instance.Collection("buses")}

	router.Get("/", br.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleOperator, http_server.UserRoleAdmin), br.create)
	router.Get("/operator/:operatorid", br.byOperator)
	router.Get("/:id", br.get)
	router.Put("/:id", http_server.RequireRole(http_server.UserRoleOperator), br.update)
	router.Delete("/:id", http_server.RequireRole(http_server.UserRoleOperator), br.remove)
	router.Get("/:id/status", br.status)
	router.Put("/:id/status", http_server.RequireRole(http_server.UserRoleAdmin, http_server.UserRoleOperator), br.updateStatus)
}

func (br *busesRoutes) list(c *fiber.Ctx) error {
	filter := bson.M{}
	if routeID := c.Query("route"); routeID != "" {
		filter["routeid"] = routeID
	}

	cursor, err := br.collection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error fetching buses", err)
	}

	buses := []busdf.Bus{}
	if err := cursor.All(c.Context(), &buses); err != nil {
		return renderError(c, "Error fetching buses", err)
	}

	reduced, err := marshalForRole(c, buses)
	if err != nil {
		return renderError(c, "Error fetching buses", err)
	}

	return c.JSON(reduced)
}

type createBusInput struct {
	LicensePlate string   `json:"licensePlate"`
	BusNumber    string   `json:"busNumber"`
	OperatorID   string   `json:"operatorId"`
	OperatorName string   `json:"operatorName"`
	RouteID      string   `json:"routeId"`
	Capacity     int      `json:"capacity"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Colour       string   `json:"color"`
	Facilities   []string `json:"facilities"`

	IsActive        *bool  `json:"isActive"`
	CurrentStatus   string `json:"currentStatus"`
	LastMaintenance string `json:"lastMaintenance"`
	NextMaintenance string `json:"nextMaintenance"`
}

func (br *busesRoutes) create(c *fiber.Ctx) error {
	var input createBusInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.LicensePlate == "" || input.BusNumber == "" || input.Capacity == 0 ||
		input.Model == "" || input.Year == 0 || input.Colour == "" || len(input.Facilities) == 0 {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()

	bus := busdf.Bus{
		PrimaryIdentifier: primitive.NewObjectID().Hex(),
		LicensePlate:      input.LicensePlate,
		BusNumber:         input.BusNumber,
		OperatorID:        input.OperatorID,
		OperatorName:      input.OperatorName,
		RouteID:           input.RouteID,
		Capacity:          input.Capacity,
		Model:             input.Model,
		Year:              input.Year,
		Colour:            input.Colour,
		Facilities:        input.Facilities,
		IsActive:          true,
		CurrentStatus:     busdf.BusStatusActive,
		LastMaintenance:   input.LastMaintenance,
		NextMaintenance:   input.NextMaintenance,
		CreatedDate:       now.DateString(),
		CreatedTime:       now.TimeString(),
	}

	if input.IsActive != nil {
		bus.IsActive = *input.IsActive
	}
	if input.CurrentStatus != "" {
		bus.CurrentStatus = busdf.BusStatus(input.CurrentStatus)
	}

	if _, err := br.collection.InsertOne(c.Context(), bus); err != nil {
		return renderError(c, "Error creating bus", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message": "Bus created!",
		"busId":   bus.PrimaryIdentifier,
	})
}

func (br *busesRoutes) get(c *fiber.Ctx) error {
	var bus *busdf.Bus
	br.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&bus)

	if bus == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Bus not found",
		})
	}

	reduced, err := marshalForRole(c, bus)
	if err != nil {
		return renderError(c, "Error fetching bus", err)
	}

	return c.JSON(reduced)
}

func (br *busesRoutes) byOperator(c *fiber.Ctx) error {
	cursor, err := br.collection.Find(c.Context(), bson.M{"operatorid": c.Params("operatorid")})
	if err != nil {
		return renderError(c, "Error fetching operator buses", err)
	}

	buses := []busdf.Bus{}
	if err := cursor.All(c.Context(), &buses); err != nil {
		return renderError(c, "Error fetching operator buses", err)
	}

	reduced, err := marshalForRole(c, buses)
	if err != nil {
		return renderError(c, "Error fetching operator buses", err)
	}

	return c.JSON(reduced)
}

type updateBusInput struct {
	LicensePlate *string   `json:"licensePlate"`
	BusNumber    *string   `json:"busNumber"`
	OperatorID   *string   `json:"operatorId"`
	OperatorName *string   `json:"operatorName"`
	RouteID      *string   `json:"routeId"`
	Capacity     *int      `json:"capacity"`
	Model        *string   `json:"model"`
	Year         *int      `json:"year"`
	Colour       *string   `json:"color"`
	Facilities   *[]string `json:"facilities"`

	IsActive        *bool   `json:"isActive"`
	CurrentStatus   *string `json:"currentStatus"`
	LastMaintenance *string `json:"lastMaintenance"`
	NextMaintenance *string `json:"nextMaintenance"`
}

func (input *updateBusInput) fields() bson.M {
	fields := bson.M{}

	if input.LicensePlate != nil {
		fields["licenseplate"] = *input.LicensePlate
	}
	if input.BusNumber != nil {
		fields["busnumber"] = *input.BusNumber
	}
	if input.OperatorID != nil {
		fields["operatorid"] = *input.OperatorID
	}
	if input.OperatorName != nil {
		fields["operatorname"] = *input.OperatorName
	}
	if input.RouteID != nil {
		fields["routeid"] = *input.RouteID
	}
	if input.Capacity != nil {
		fields["capacity"] = *input.Capacity
	}
	if input.Model != nil {
		fields["model"] = *input.Model
	}
	if input.Year != nil {
		fields["year"] = *input.Year
	}
	if input.Colour != nil {
		fields["color"] = *input.Colour
	}
	if input.Facilities != nil {
		fields["facilities"] = *input.Facilities
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}
	if input.CurrentStatus != nil {
		fields["currentstatus"] = *input.CurrentStatus
	}
	if input.LastMaintenance != nil {
		fields["lastmaintenance"] = *input.LastMaintenance
	}
	if input.NextMaintenance != nil {
		fields["nextmaintenance"] = *input.NextMaintenance
	}

	return fields
}

func (br *busesRoutes) update(c *fiber.Ctx) error {
	var input updateBusInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()
	fields := input.fields()
	fields["updateddate"] = now.DateString()
	fields["updatedtime"] = now.TimeString()

	result, err := br.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating bus", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Bus not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Bus updated successfully!",
	})
}

func (br *busesRoutes) remove(c *fiber.Ctx) error {
	result, err := br.collection.DeleteOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")})
	if err != nil {
		return renderError(c, "Error deleting bus", err)
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Bus not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Bus deleted successfully!",
	})
}

func (br *busesRoutes) status(c *fiber.Ctx) error {
	var bus *busdf.Bus
	br.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&bus)

	if bus == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Bus not found",
		})
	}

	return c.JSON(fiber.Map{
		"id":              bus.PrimaryIdentifier,
		"currentStatus":   bus.CurrentStatus,
		"isActive":        bus.IsActive,
		"lastMaintenance": bus.LastMaintenance,
		"nextMaintenance": bus.NextMaintenance,
		"updatedDate":     bus.UpdatedDate,
	})
}

type updateBusStatusInput struct {
	CurrentStatus *string `json:"currentStatus"`
	IsActive      *bool   `json:"isActive"`
}

func (br *busesRoutes) updateStatus(c *fiber.Ctx) error {
	var input updateBusStatusInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.CurrentStatus != nil && !busdf.BusStatus(*input.CurrentStatus).Valid() {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid status",
		})
	}

	now := busdf.Now()
	fields := bson.M{
		"updateddate": now.DateString(),
		"updatedtime": now.TimeString(),
	}
	if input.CurrentStatus != nil {
		fields["currentstatus"] = *input.CurrentStatus
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}

	result, err := br.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating bus status", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Bus not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Bus status updated successfully!",
	})
}
