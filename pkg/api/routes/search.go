package routes

import (
	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type searchRoutes struct {
	busesCollection  *mongo.Collection
	routesCollection *mongo.Collection
}

func SearchRouter(router fiber.Router, instance *database.Instance) {
	sr := &searchRoutes{
		busesCollection:  instance.Collection("buses"),
		routesCollection: instance.Collection("routes"),
	}

	router.Get("/buses", sr.buses)
	router.Get("/routes", sr.routes)
}

func (sr *searchRoutes) buses(c *fiber.Ctx) error {
	filter := bson.M{}

	if routeID := c.Query("route"); routeID != "" {
		filter["routeid"] = routeID
	}
	if operatorID := c.Query("operator"); operatorID != "" {
		filter["operatorid"] = operatorID
	}
	if status := c.Query("status"); status != "" {
		filter["currentstatus"] = status
	}

	// Buses carry no province of their own. A province query matches buses
	// assigned to any route touching that province.
	if province := c.Query("province"); province != "" {
		routeIDs, err := sr.provinceRouteIDs(c, province)
		if err != nil {
			return renderError(c, "Error searching buses", err)
		}

		if len(routeIDs) == 0 {
			return c.JSON([]busdf.Bus{})
		}

		filter["routeid"] = bson.M{"$in": routeIDs}
	}

	cursor, err := sr.busesCollection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error searching buses", err)
	}

	buses := []busdf.Bus{}
	if err := cursor.All(c.Context(), &buses); err != nil {
		return renderError(c, "Error searching buses", err)
	}

	reduced, err := marshalForRole(c, buses)
	if err != nil {
		return renderError(c, "Error searching buses", err)
	}

	return c.JSON(reduced)
}

func (sr *searchRoutes) provinceRouteIDs(c *fiber.Ctx, province string) ([]string, error) {
	cursor, err := sr.routesCollection.Find(c.Context(),
		bson.M{
			"$or": bson.A{
				bson.M{"startprovince": province},
				bson.M{"endprovince": province},
			},
		},
		options.Find().SetProjection(bson.M{"primaryidentifier": 1}),
	)
	if err != nil {
		return nil, err
	}

	var matches []struct {
		PrimaryIdentifier string `bson:"primaryidentifier"`
	}
	if err := cursor.All(c.Context(), &matches); err != nil {
		return nil, err
	}

	routeIDs := []string{}
	for _, match := range matches {
		routeIDs = append(routeIDs, match.PrimaryIdentifier)
	}

	return routeIDs, nil
}

func (sr *searchRoutes) routes(c *fiber.Ctx) error {
	conditions := bson.A{}

	if origin := c.Query("origin"); origin != "" {
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"startlocation.name": caseInsensitivePrefix(origin)},
			bson.M{"startprovince": caseInsensitivePrefix(origin)},
		}})
	}
	if destination := c.Query("destination"); destination != "" {
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"endlocation.name": caseInsensitivePrefix(destination)},
			bson.M{"endprovince": caseInsensitivePrefix(destination)},
		}})
	}
	if province := c.Query("province"); province != "" {
		conditions = append(conditions, bson.M{"$or": bson.A{
			bson.M{"startprovince": province},
			bson.M{"endprovince": province},
		}})
	}

	filter := bson.M{}
	if len(conditions) > 0 {
		filter["$and"] = conditions
	}

	cursor, err := sr.routesCollection.Find(c.Context(), filter)
	if err != nil {
		return renderError(c, "Error searching routes", err)
	}

	routes := []busdf.Route{}
	if err := cursor.All(c.Context(), &routes); err != nil {
		return renderError(c, "Error searching routes", err)
	}

	reduced, err := marshalForRole(c, routes)
	if err != nil {
		return renderError(c, "Error searching routes", err)
	}

	return c.JSON(reduced)
}

func caseInsensitivePrefix(value string) primitive.Regex {
	return primitive.Regex{Pattern: "^" + regexEscape(value), Options: "i"}
}

func regexEscape(value string) string {
	escaped := ""
	for _, character := range value {
		switch character {
		case '.', '+', '*', '?', '(', ')', '[', ']', '{', '}', '^', '$', '|', '\\':
			escaped += "\\"
		}
		escaped += string(character)
	}

	return escaped
}
