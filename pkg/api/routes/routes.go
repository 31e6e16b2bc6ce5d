package routes

import (
	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/busmitra/busmitra/pkg/http_server"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/exp/slices"
)

type routesRoutes struct {
	collection *mongo.Collection
}

func RoutesRouter(router fiber.Router, instance *database.Instance) {
	rr := &routesRoutes{collection: instance.Collection("routes")}

	router.Get("/", rr.list)
	router.Post("/", http_server.RequireRole(http_server.UserRoleAdmin), rr.create)
	router.Get("/province/:province", rr.byProvince)
	router.Get("/:id", rr.get)
	router.Put("/:id", http_server.RequireRole(http_server.UserRoleAdmin), rr.update)
	router.Delete("/:id", http_server.RequireRole(http_server.UserRoleAdmin), rr.remove)
	router.Get("/:id/stops", rr.stops)
	router.Post("/:id/stops", http_server.RequireRole(http_server.UserRoleAdmin), rr.addStop)
}

func (rr *routesRoutes) list(c *fiber.Ctx) error {
	cursor, err := rr.collection.Find(c.Context(), bson.M{})
	if err != nil {
		return renderError(c, "Error fetching routes", err)
	}

	routes := []busdf.Route{}
	if err := cursor.All(c.Context(), &routes); err != nil {
		return renderError(c, "Error fetching routes", err)
	}

	reduced, err := marshalForRole(c, routes)
	if err != nil {
		return renderError(c, "Error fetching routes", err)
	}

	return c.JSON(reduced)
}

type createRouteInput struct {
	RouteNumber string `json:"routeNumber"`
	RouteName   string `json:"routeName"`

	StartProvince string               `json:"startProvince"`
	EndProvince   string               `json:"endProvince"`
	StartLocation *busdf.NamedLocation `json:"startLocation"`
	EndLocation   *busdf.NamedLocation `json:"endLocation"`

	Waypoints []busdf.Waypoint `json:"waypoints"`

	Distance          float64 `json:"distance"`
	EstimatedDuration string  `json:"estimatedDuration"`
	OperatingHours    string  `json:"operatingHours"`
	Frequency         string  `json:"frequency"`
	IsActive          *bool   `json:"isActive"`
}

func (rr *routesRoutes) create(c *fiber.Ctx) error {
	var input createRouteInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.RouteNumber == "" || input.RouteName == "" || input.StartProvince == "" ||
		input.EndProvince == "" || input.StartLocation == nil || input.EndLocation == nil ||
		input.Distance == 0 {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	now := busdf.Now()

	route := busdf.Route{
		PrimaryIdentifier: primitive.NewObjectID().Hex(),
		RouteNumber:       input.RouteNumber,
		RouteName:         input.RouteName,
		StartProvince:     input.StartProvince,
		EndProvince:       input.EndProvince,
		StartLocation:     input.StartLocation,
		EndLocation:       input.EndLocation,
		Waypoints:         input.Waypoints,
		DistanceKm:        input.Distance,
		EstimatedDuration: input.EstimatedDuration,
		OperatingHours:    input.OperatingHours,
		Frequency:         input.Frequency,
		IsActive:          true,
		CreatedDate:       now.DateString(),
		CreatedTime:       now.TimeString(),
	}

	if input.IsActive != nil {
		route.IsActive = *input.IsActive
	}

	slices.SortFunc(route.Waypoints, func(a, b busdf.Waypoint) int {
		return a.Sequence - b.Sequence
	})

	if _, err := rr.collection.InsertOne(c.Context(), route); err != nil {
		return renderError(c, "Error creating route", err)
	}

	c.SendStatus(fiber.StatusCreated)
	return c.JSON(fiber.Map{
		"message": "Route created!",
		"routeId": route.PrimaryIdentifier,
	})
}

func (rr *routesRoutes) byProvince(c *fiber.Ctx) error {
	province := c.Params("province")

	cursor, err := rr.collection.Find(c.Context(), bson.M{
		"$or": bson.A{
			bson.M{"startprovince": province},
			bson.M{"endprovince": province},
		},
	})
	if err != nil {
		return renderError(c, "Error fetching province routes", err)
	}

	routes := []busdf.Route{}
	if err := cursor.All(c.Context(), &routes); err != nil {
		return renderError(c, "Error fetching province routes", err)
	}

	reduced, err := marshalForRole(c, routes)
	if err != nil {
		return renderError(c, "Error fetching province routes", err)
	}

	return c.JSON(reduced)
}

func (rr *routesRoutes) get(c *fiber.Ctx) error {
	var route *busdf.Route
	rr.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&route)

	if route == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Route not found",
		})
	}

	reduced, err := marshalForRole(c, route)
	if err != nil {
		return renderError(c, "Error fetching route", err)
	}

	return c.JSON(reduced)
}

type updateRouteInput struct {
	RouteNumber *string `json:"routeNumber"`
	RouteName   *string `json:"routeName"`

	StartProvince *string              `json:"startProvince"`
	EndProvince   *string              `json:"endProvince"`
	StartLocation *busdf.NamedLocation `json:"startLocation"`
	EndLocation   *busdf.NamedLocation `json:"endLocation"`

	Waypoints *[]busdf.Waypoint `json:"waypoints"`

	Distance          *float64 `json:"distance"`
	EstimatedDuration *string  `json:"estimatedDuration"`
	OperatingHours    *string  `json:"operatingHours"`
	Frequency         *string  `json:"frequency"`
	IsActive          *bool    `json:"isActive"`
}

func (input *updateRouteInput) fields() bson.M {
	fields := bson.M{}

	if input.RouteNumber != nil {
		fields["routenumber"] = *input.RouteNumber
	}
	if input.RouteName != nil {
		fields["routename"] = *input.RouteName
	}
	if input.StartProvince != nil {
		fields["startprovince"] = *input.StartProvince
	}
	if input.EndProvince != nil {
		fields["endprovince"] = *input.EndProvince
	}
	if input.StartLocation != nil {
		fields["startlocation"] = input.StartLocation
	}
	if input.EndLocation != nil {
		fields["endlocation"] = input.EndLocation
	}
	if input.Waypoints != nil {
		waypoints := *input.Waypoints
		slices.SortFunc(waypoints, func(a, b busdf.Waypoint) int {
			return a.Sequence - b.Sequence
		})
		fields["waypoints"] = waypoints
	}
	if input.Distance != nil {
		fields["distance"] = *input.Distance
	}
	if input.EstimatedDuration != nil {
		fields["estimatedduration"] = *input.EstimatedDuration
	}
	if input.OperatingHours != nil {
		fields["operatinghours"] = *input.OperatingHours
	}
	if input.Frequency != nil {
		fields["frequency"] = *input.Frequency
	}
	if input.IsActive != nil {
		fields["isactive"] = *input.IsActive
	}

	return fields
}

func (rr *routesRoutes) update(c *fiber.Ctx) error {
	var input updateRouteInput
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

	result, err := rr.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{"$set": fields},
	)
	if err != nil {
		return renderError(c, "Error updating route", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Route not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Route updated successfully!",
	})
}

func (rr *routesRoutes) remove(c *fiber.Ctx) error {
	result, err := rr.collection.DeleteOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")})
	if err != nil {
		return renderError(c, "Error deleting route", err)
	}

	if result.DeletedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Route not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Route deleted successfully!",
	})
}

func (rr *routesRoutes) stops(c *fiber.Ctx) error {
	var route *busdf.Route
	rr.collection.FindOne(c.Context(), bson.M{"primaryidentifier": c.Params("id")}).Decode(&route)

	if route == nil {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Route not found",
		})
	}

	waypoints := route.Waypoints
	if waypoints == nil {
		waypoints = []busdf.Waypoint{}
	}

	return c.JSON(fiber.Map{
		"routeId":     route.PrimaryIdentifier,
		"routeNumber": route.RouteNumber,
		"routeName":   route.RouteName,
		"stops":       waypoints,
	})
}

type addStopInput struct {
	Sequence  int     `json:"sequence"`
	StopID    string  `json:"stopId"`
	Name      string  `json:"name"`
	Type      string  `json:"type"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	EstimatedTimeFromStart int    `json:"estimatedTimeFromStart"`
	Province               string `json:"province"`
}

func (rr *routesRoutes) addStop(c *fiber.Ctx) error {
	var input addStopInput
	if err := c.BodyParser(&input); err != nil {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	if input.Sequence == 0 || input.Name == "" || input.Latitude == 0 || input.Longitude == 0 {
		c.SendStatus(fiber.StatusUnprocessableEntity)
		return c.JSON(fiber.Map{
			"message": "Invalid input.",
		})
	}

	waypoint := busdf.Waypoint{
		Sequence:               input.Sequence,
		StopID:                 input.StopID,
		Name:                   input.Name,
		Type:                   input.Type,
		Latitude:               input.Latitude,
		Longitude:              input.Longitude,
		EstimatedTimeFromStart: input.EstimatedTimeFromStart,
		Province:               input.Province,
	}
	if waypoint.Type == "" {
		waypoint.Type = "INTERMEDIATE"
	}

	now := busdf.Now()

	result, err := rr.collection.UpdateOne(c.Context(),
		bson.M{"primaryidentifier": c.Params("id")},
		bson.M{
			"$push": bson.M{"waypoints": waypoint},
			"$set": bson.M{
				"updateddate": now.DateString(),
				"updatedtime": now.TimeString(),
			},
		},
	)
	if err != nil {
		return renderError(c, "Error adding stop", err)
	}

	if result.MatchedCount == 0 {
		c.SendStatus(fiber.StatusNotFound)
		return c.JSON(fiber.Map{
			"message": "Route not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Stop added to route successfully!",
	})
}
