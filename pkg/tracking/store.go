package tracking

import (
	"context"
	"time"

	"github.com/busmitra/busmitra/pkg/busdf"
	"github.com/busmitra/busmitra/pkg/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// PositionLog is the append-only log of position reports. Reports are
// immutable once written; there are no update or delete operations.
type PositionLog interface {
	Append(ctx context.Context, report *busdf.PositionReport) (string, error)
	QueryByBus(ctx context.Context, busID string, since *time.Time) ([]busdf.PositionReport, error)
	QueryByRoute(ctx context.Context, routeID string) ([]busdf.PositionReport, error)
	QueryAll(ctx context.Context) ([]busdf.PositionReport, error)
}

// PositionStore implements PositionLog on the tracking collection.
type PositionStore struct {
	collection *mongo.Collection
}

func NewPositionStore(instance *database.Instance) *PositionStore {
	return &PositionStore{
		collection: instance.Collection("tracking"),
	}
}

func (store *PositionStore) Append(ctx context.Context, report *busdf.PositionReport) (string, error) {
	if report.BusID == "" || report.RouteID == "" {
		return "", ValidationError{Message: "Missing required fields: busId, routeId"}
	}

	if report.PrimaryIdentifier == "" {
		report.PrimaryIdentifier = primitive.NewObjectID().Hex()
	}

	_, err := store.collection.InsertOne(ctx, report)
	if err != nil {
		return "", StoreError{Operation: "append position report", Err: err}
	}

	return report.PrimaryIdentifier, nil
}

// QueryByBus returns every report for a bus. When since is given, the store
// side filters on the coarse date component (the only granularity its range
// index resolves) and the precise instant is enforced in-process afterwards.
func (store *PositionStore) QueryByBus(ctx context.Context, busID string, since *time.Time) ([]busdf.PositionReport, error) {
	filter := bson.M{"busid": busID}
	if since != nil {
		filter["createddate"] = bson.M{"$gte": busdf.At(*since).DateString()}
	}

	reports, err := store.find(ctx, "query reports by bus", filter)
	if err != nil {
		return nil, err
	}

	if since == nil {
		return reports, nil
	}

	return refineSince(reports, *since), nil
}

// refineSince is the second stage of the since filter: the store query only
// narrowed by calendar day, so the precise instant is enforced here. The
// boundary is inclusive and reports with unparsable stamps are dropped.
func refineSince(reports []busdf.PositionReport, since time.Time) []busdf.PositionReport {
	refined := []busdf.PositionReport{}
	for _, report := range reports {
		recordedAt, err := report.RecordedAt()
		if err != nil {
			continue
		}

		if !recordedAt.Time().Before(since) {
			refined = append(refined, report)
		}
	}

	return refined
}

func (store *PositionStore) QueryByRoute(ctx context.Context, routeID string) ([]busdf.PositionReport, error) {
	return store.find(ctx, "query reports by route", bson.M{"routeid": routeID})
}

func (store *PositionStore) QueryAll(ctx context.Context) ([]busdf.PositionReport, error) {
	return store.find(ctx, "query all reports", bson.M{})
}

// LatestPerBus reads the full log and resolves the most recent report per
// bus. Store iteration order is never trusted; recency is recomputed here.
func (store *PositionStore) LatestPerBus(ctx context.Context) (map[string]busdf.PositionReport, error) {
	reports, err := store.QueryAll(ctx)
	if err != nil {
		return nil, err
	}

	return LatestPerBus(reports), nil
}

func (store *PositionStore) find(ctx context.Context, operation string, filter bson.M) ([]busdf.PositionReport, error) {
	cursor, err := store.collection.Find(ctx, filter)
	if err != nil {
		return nil, StoreError{Operation: operation, Err: err}
	}

	reports := []busdf.PositionReport{}
	if err := cursor.All(ctx, &reports); err != nil {
		return nil, StoreError{Operation: operation, Err: err}
	}

	return reports, nil
}
