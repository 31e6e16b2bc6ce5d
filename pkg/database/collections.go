package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (instance *Instance) createIndexes(ctx context.Context) {
	instance.createTrackingIndexes(ctx)
	instance.createFleetIndexes(ctx)
	instance.createTripsIndexes(ctx)
}

func (instance *Instance) createTrackingIndexes(ctx context.Context) {
	// Tracking log. The date field only resolves to calendar-day precision so
	// range queries over it are coarse; precise filtering happens in-process.
	trackingCollection := instance.Collection("tracking")
	trackingIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "busid", Value: 1}, {Key: "createddate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "routeid", Value: 1}, {Key: "createddate", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "createddate", Value: -1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := trackingCollection.Indexes().CreateMany(ctx, trackingIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createFleetIndexes(ctx context.Context) {
	busesCollection := instance.Collection("buses")
	busesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeid", Value: 1}, {Key: "isactive", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "operatorid", Value: 1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := busesCollection.Indexes().CreateMany(ctx, busesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	operatorsCollection := instance.Collection("operators")
	operatorsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "operatingprovinces", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = operatorsCollection.Indexes().CreateMany(ctx, operatorsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	routesCollection := instance.Collection("routes")
	routesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "startprovince", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "endprovince", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = routesCollection.Indexes().CreateMany(ctx, routesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	stopsCollection := instance.Collection("stops")
	stopsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "stopid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "province", Value: 1}, {Key: "type", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = stopsCollection.Indexes().CreateMany(ctx, stopsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	provincesCollection := instance.Collection("provinces")
	provincesIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "provinceid", Value: 1}},
		},
	}

	opts = options.CreateIndexes()
	_, err = provincesCollection.Indexes().CreateMany(ctx, provincesIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}

func (instance *Instance) createTripsIndexes(ctx context.Context) {
	tripsCollection := instance.Collection("trips")
	tripsIndex := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "primaryidentifier", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "busid", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "routeid", Value: 1}, {Key: "scheduledstart", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "delay", Value: -1}},
		},
	}

	opts := options.CreateIndexes()
	_, err := tripsCollection.Indexes().CreateMany(ctx, tripsIndex, opts)
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
