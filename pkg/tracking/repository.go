package tracking

import (
	"context"
	"errors"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// TripRepository and RouteRepository are read-only views over the CRUD
// collections. The tracking core never writes to them.
type TripRepository interface {
	Trip(ctx context.Context, tripID string) (*busdf.Trip, error)
}

type RouteRepository interface {
	Route(ctx context.Context, routeID string) (*busdf.Route, error)
}

type mongoTripRepository struct {
	collection *mongo.Collection
}

func NewTripRepository(instance *database.Instance) TripRepository {
	return &mongoTripRepository{collection: instance.Collection("trips")}
}

func (repository *mongoTripRepository) Trip(ctx context.Context, tripID string) (*busdf.Trip, error) {
	var trip busdf.Trip
	err := repository.collection.FindOne(ctx, bson.M{"primaryidentifier": tripID}).Decode(&trip)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFoundError{Subject: "trip", Message: "Trip not found"}
	}
	if err != nil {
		return nil, StoreError{Operation: "lookup trip", Err: err}
	}

	return &trip, nil
}

type mongoRouteRepository struct {
	collection *mongo.Collection
}

func NewRouteRepository(instance *database.Instance) RouteRepository {
	return &mongoRouteRepository{collection: instance.Collection("routes")}
}

func (repository *mongoRouteRepository) Route(ctx context.Context, routeID string) (*busdf.Route, error) {
	var route busdf.Route
	err := repository.collection.FindOne(ctx, bson.M{"primaryidentifier": routeID}).Decode(&route)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, NotFoundError{Subject: "route", Message: "Route not found"}
	}
	if err != nil {
		return nil, StoreError{Operation: "lookup route", Err: err}
	}

	return &route, nil
}
