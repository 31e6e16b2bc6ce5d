package database

import (
	"context"
	"time"

	"github.com/busmitra/busmitra/pkg/util"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultMongoConnectionString = "mongodb://localhost:27017/"
const defaultMongoDatabase = "busmitra"

// Instance is the handle to the backing document store. It is created once at
// process startup and passed explicitly into every component that needs it.
type Instance struct {
	Client   *mongo.Client
	Database *mongo.Database
}

func Connect(ctx context.Context) (*Instance, error) {
	connectionString := util.GetEnvironmentVariable("BUSMITRA_MONGODB_CONNECTION", defaultMongoConnectionString)
	dbName := util.GetEnvironmentVariable("BUSMITRA_MONGODB_DATABASE", defaultMongoDatabase)

	connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(connectionString))
	if err != nil {
		return nil, err
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}

	instance := &Instance{
		Client:   client,
		Database: client.Database(dbName),
	}

	instance.createIndexes(ctx)

	return instance, nil
}

func (instance *Instance) Collection(collectionName string) *mongo.Collection {
	return instance.Database.Collection(collectionName)
}
