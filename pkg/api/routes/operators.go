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

type operatorsRoutes struct {
	collection *mongo.Collection
}

func OperatorsRouter(router fiber.Router, instance *database.Instance) {
	or := &operatorsRoutes{collection: instance.Collection("operators")}

	router.Get("/", or.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleAdmin), or.create)
	router.Get("/:id", or.get)
	router.Put("/:id", http_server.RequireRole(http_server.UserRoleAdmin), or.update)
	router.Delete("/:id", http_server.RequireRole(http_server.UserRoleAdmin), or.remove)
}

func (or *operatorsRoutes) list(c *fiber.Ctx) error {
	filter := bson.M{}
	if province := c.Query("province"); province != "" {
		filter["operatingprovinces"] = province
	}

	cursor, err := or.collection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error fetching operators", err)
	}

	operators := []busdf.Operator{}
	if err := cursor.All(c.Context(), &operators); err != nil {
		return renderError(c, "Error fetching operators", err)
	}

	reduced, err := marshalForRole(c, operators)
	if err != nil {
		return renderError(c, "Error fetching operators", err)
	}

	return c.JSON(reduced)
}

type createOperatorInput struct {
	CompanyName        string   `json:"companyName"`
	RegistrationNumber string   `json:"registrationNumber"`
	Contact            string   `json:"contact"`
	FleetSize          int      `json:"fleetSize"`
	OperatingProvinces []string `json:"operatingProvinces"`
	LicenseExpiry      string   `json:"licenseExpiry"`
	Rating             float64  `json:"rating"`
	JoinedDate         string   `json:"joinedDate"`
	IsActive           *bool    `json:"isActive"`
}

func (or *operatorsRoutes) create(c *fiber.Ctx) error {
	var input createOperatorInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.CompanyName == "" || input.RegistrationNumber == "" || input.Contact == "" {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()

	operator := busdf.Operator{
		PrimaryIdentifier:  primitive.NewObjectID().Hex(),
		CompanyName:        input.CompanyName,
		RegistrationNumber: input.RegistrationNumber,
		Contact:            input.Contact,
		FleetSize:          input.FleetSize,
		OperatingProvinces: input.OperatingProvinces,
		LicenseExpiry:      input.LicenseExpiry,
		Rating:             input.Rating,
		JoinedDate:         input.JoinedDate,
		IsActive:           true,
		CreatedDate:        now.DateString(),
		CreatedTime:        now.TimeString(),
	}

	if input.IsActive != nil {
		operator.IsActive = *input.IsActive
	}
	if operator.JoinedDate == "" {
		operator.JoinedDate = now.DateString()
	}

	if _, err := or.collection.InsertOne(c.Context(), operator); err != nil {
		return renderError(c, "Error creating operator", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message":    "Operator created!",
		"operatorId": operator.PrimaryIdentifier,
	})
}

func (or *operatorsRoutes) get(c *fiber.Ctx) error {
	var operator *busdf.Operator
	or.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&operator)

	if operator == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Operator not found",
		})
	}

	reduced, err := marshalForRole(c, operator)
	if err != nil {
		return renderError(c, "Error fetching operator", err)
	}

	return c.JSON(reduced)
}

type updateOperatorInput struct {
	CompanyName        *string   `json:"companyName"`
	RegistrationNumber *string   `json:"registrationNumber"`
	Contact            *string   `json:"contact"`
	FleetSize          *int      `json:"fleetSize"`
	ActiveBuses        *int      `json:"activeBuses"`
	OperatingProvinces *[]string `json:"operatingProvinces"`
	LicenseExpiry      *string   `json:"licenseExpiry"`
	Rating             *float64  `json:"rating"`
	TotalTrips         *int      `json:"totalTrips"`
	IsActive           *bool     `json:"isActive"`
}

func (input *updateOperatorInput) fields() bson.M {
	fields := bson.M{}

	if input.CompanyName != nil {
		fields["companyname"] = *input.CompanyName
	}
	if input.RegistrationNumber != nil {
		fields["registrationnumber"] = *input.RegistrationNumber
	}
	if input.Contact != nil {
		fields["contact"] = *input.Contact
	}
	if input.FleetSize != nil {
		fields["fleetsize"] = *input.FleetSize
	}
	if input.ActiveBuses != nil {
		fields["activebuses"] = *input.ActiveBuses
	}
	if input.OperatingProvinces != nil {
		fields["operatingprovinces"] = *input.OperatingProvinces
	}
	if input.LicenseExpiry != nil {
		fields["licenseexpiry"] = *input.LicenseExpiry
	}
	if input.Rating != nil {
		fields["rating"] = *input.Rating
	}
	if input.TotalTrips != nil {
		fields["totaltrips"] = *input.TotalTrips
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}

	return fields
}

func (or *operatorsRoutes) update(c *fiber.Ctx) error {
	var input updateOperatorInput
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

	result, err := or.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating operator", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Operator not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Operator updated successfully!",
	})
}

func (or *operatorsRoutes) remove(c *fiber.Ctx) error {
	result, err := or.collection.DeleteOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")})
	if err != nil {
		return renderError(c, "Error deleting operator", err)
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Operator not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Operator deleted successfully!",
	})
}
