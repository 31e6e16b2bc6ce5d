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

type stopsRoutes struct {
	collection *mongo.Collection
}

func StopsRouter(router fiber.Router, instance *database.Instance) {
	sr := &stopsRoutes{collection: instance.Collection("stops")}

	router.Get("/", sr.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleAdmin), sr.create)
	router.Get("/:id", sr.get)
	router.Put("/:id", http_server.RequireRole(http_server.UserRoleAdmin), sr.update)
	router.Delete("/:id", http_server.RequireRole(http_server.UserRoleAdmin), sr.remove)
}

func (sr *stopsRoutes) list(c *fiber.Ctx) error {
	filter := bson.M{}
	if province := c.Query("province"); province != "" {
		filter["province"] = province
	}
	if stopType := c.Query("type"); stopType != "" {
		filter["type"] = stopType
	}

	cursor, err := sr.collection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error fetching stops", err)
	}

	stops := []busdf.Stop{}
	if err := cursor.All(c.Context(), &stops); err != nil {
		return renderError(c, "Error fetching stops", err)
	}

	return c.JSON(stops)
}

type createStopInput struct {
	StopID     string              `json:"stopId"`
	Name       string              `json:"name"`
	Location   *busdf.StopLocation `json:"location"`
	Province   string              `json:"province"`
	Type       string              `json:"type"`
	Facilities []string            `json:"facilities"`
	IsActive   *bool               `json:"isActive"`
}

func (sr *stopsRoutes) create(c *fiber.Ctx) error {
	var input createStopInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.Name == "" || input.Location == nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()

	stop := busdf.Stop{
		PrimaryIdentifier: primitive.NewObjectID().Hex(),
		StopID:            input.StopID,
		Name:              input.Name,
		Location:          *input.Location,
		Province:          input.Province,
		Type:              input.Type,
		Facilities:        input.Facilities,
		IsActive:          true,
		CreatedDate:       now.DateString(),
		CreatedTime:       now.TimeString(),
	}

	if stop.StopID == "" {
		stop.StopID = stop.PrimaryIdentifier
	}
	if stop.Type == "" {
		stop.Type = "INTERMEDIATE"
	}
	if input.IsActive != nil {
		stop.IsActive = *input.IsActive
	}

	if _, err := sr.collection.InsertOne(c.Context(), stop); err != nil {
		return renderError(c, "Error creating stop", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message": "Stop created!",
		"stopId":  stop.PrimaryIdentifier,
	})
}

func (sr *stopsRoutes) get(c *fiber.Ctx) error {
	identifier := c.Params("id")

	var stop *busdf.Stop
	sr.collection.FindOne(c.Context(), bson.M{
		"$or": bson.A{
			bson.M{"primaryidentifier": identifier},
			bson.M{"stopid": identifier},
		},
	}).Decode(&stop)

	if stop == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Stop not found",
		})
	}

	return c.JSON(stop)
}

type updateStopInput struct {
	Name       *string             `json:"name"`
	Location   *busdf.StopLocation `json:"location"`
	Province   *string             `json:"province"`
	Type       *string             `json:"type"`
	Facilities *[]string           `json:"facilities"`
	IsActive   *bool               `json:"isActive"`
}

func (sr *stopsRoutes) update(c *fiber.Ctx) error {
	var input updateStopInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	fields := bson.M{}
	if input.Name != nil {
		fields["name"] = *input.Name
	}
	if input.Location != nil {
		fields["location"] = input.Location
	}
	if input.Province != nil {
		fields["province"] = *input.Province
	}
	if input.Type != nil {
		fields["type"] = *input.Type
	}
	if input.Facilities != nil {
		fields["facilities"] = *input.Facilities
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}

	result, err := sr.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating stop", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Stop not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Stop updated successfully!",
	})
}

func (sr *stopsRoutes) remove(c *fiber.Ctx) error {
	result, err := sr.collection.DeleteOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")})
	if err != nil {
		return renderError(c, "Error deleting stop", err)
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Stop not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Stop deleted successfully!",
	})
}
