package routes

import (
	"strings"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type provincesRoutes struct {
	collection *mongo.Collection
}

func ProvincesRouter(router fiber.Router, instance *database.Instance) {
	pr := &provincesRoutes{collection: instance.Collection("provinces")}

	router.Get("/", pr.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleAdmin), pr.create)
	router.Get("/:provinceid", pr.get)
	router.Put("/:provinceid", http_server.RequireRole(http_server.UserRoleAdmin), pr.update)
	router.Delete("/:provinceid", http_server.RequireRole(http_server.UserRoleAdmin), pr.remove)
}

func (pr *provincesRoutes) list(c *fiber.Ctx) error {
	cursor, err := pr.collection.Find(c.Context(), bson.M{"isactive": true})
	if err != nil {
		return renderError(c, "Error fetching provinces", err)
	}

	provinces := []busdf.Province{}
	if err := cursor.All(c.Context(), &provinces); err != nil {
		return renderError(c, "Error fetching provinces", err)
	}

	return c.JSON(provinces)
}

type createProvinceInput struct {
	ProvinceID  string   `json:"provinceId"`
	Name        string   `json:"name"`
	Capital     string   `json:"capital"`
	MajorCities []string `json:"majorCities"`
	BusStations []string `json:"busStations"`
}

func (pr *provincesRoutes) create(c *fiber.Ctx) error {
	var input createProvinceInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.Name == "" || input.Capital == "" {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	provinceID := input.ProvinceID
	if provinceID == "" {
		provinceID = strings.ToLower(strings.ReplaceAll(input.Name, " ", "-"))
	}

	now := busdf.Now()

	province := busdf.Province{
		PrimaryIdentifier: primitive.NewObjectID().Hex(),
		ProvinceID:        provinceID,
		Name:              input.Name,
		Capital:           input.Capital,
		MajorCities:       input.MajorCities,
		BusStations:       input.BusStations,
		IsActive:          true,
		CreatedDate:       now.DateString(),
		CreatedTime:       now.TimeString(),
	}

	if _, err := pr.collection.InsertOne(c.Context(), province); err != nil {
		return renderError(c, "Error creating province", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message":    "Province created!",
		"provinceId": province.ProvinceID,
	})
}

func (pr *provincesRoutes) get(c *fiber.Ctx) error {
	provinceID := strings.ToLower(c.Params("provinceid"))

	var province *busdf.Province
	pr.collection.FindOne(c.Context(), bson.M{"provinceid": provinceID}).Decode(&province)

	if province == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Province not found",
		})
	}

	return c.JSON(province)
}

type updateProvinceInput struct {
	Name        *string   `json:"name"`
	Capital     *string   `json:"capital"`
	MajorCities *[]string `json:"majorCities"`
	BusStations *[]string `json:"busStations"`
	IsActive    *bool     `json:"isActive"`
}

func (pr *provincesRoutes) update(c *fiber.Ctx) error {
	var input updateProvinceInput
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
	if input.Capital != nil {
		fields["capital"] = *input.Capital
	}
	if input.MajorCities != nil {
		fields["majorcities"] = *input.MajorCities
	}
	if input.BusStations != nil {
		fields["busstations"] = *input.BusStations
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}

	now := busdf.Now()
	fields["updateddate"] = now.DateString()
	fields["updatedtime"] = now.TimeString()

	result, err := pr.collection.UpdateOne(c.Context(),
		bson.M{"provinceid": strings.ToLower(c.Params("provinceid"))},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating province", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Province not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Province updated successfully!",
	})
}

func (pr *provincesRoutes) remove(c *fiber.Ctx) error {
	result, err := pr.collection.DeleteOne(c.Context(), bson.M{"provinceid": strings.ToLower(c.Params("provinceid"))})
	if err != nil {
		return renderError(c, "Error deleting province", err)
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Province not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Province deleted successfully!",
	})
}
