package gateway

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/olu-davies/noticehub/internal/listing"
)

var collectionFor = map[listing.Category]string{
	listing.CategoryJob:             "jobs",
	listing.CategoryRoom:            "rooms",
	listing.CategoryMarket:          "market",
	listing.CategoryEvent:           "events",
	listing.CategoryTravelCompanion: "travel_companions",
}

// Mongo is the document-store Gateway implementation, one collection
// per category.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
	log    *slog.Logger
}

// NewMongo connects and pings the cluster.
func NewMongo(ctx context.Context, uri, dbName string, log *slog.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("gateway: connect mongo: %w", err)
	}
	if err := client.Ping(connectCtx, nil); err != nil {
		_ = client.Disconnect(connectCtx)
		return nil, fmt.Errorf("gateway: ping mongo: %w", err)
	}
	log.Info("connected to mongo store", "db", dbName)
	return &Mongo{client: client, db: client.Database(dbName), log: log}, nil
}

// Close disconnects the underlying client.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) ListByCategory(ctx context.Context, cat listing.Category, approvedOnly bool) ([]Document, error) {
	coll, ok := collectionFor[cat]
	if !ok {
		return nil, &TransportError{Op: "list", Err: fmt.Errorf("unknown category %q", cat)}
	}

	filter := bson.M{}
	if approvedOnly {
		filter["approved"] = true
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := m.db.Collection(coll).Find(ctx, filter, opts)
	if err != nil {
		return nil, &TransportError{Op: "list " + string(cat), Err: err}
	}
	defer cursor.Close(ctx)

	var docs []Document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, &TransportError{Op: "decode " + string(cat), Err: err}
	}
	return docs, nil
}

func (m *Mongo) SetApproval(ctx context.Context, cat listing.Category, id string, approved bool) error {
	coll, ok := collectionFor[cat]
	if !ok {
		return &TransportError{Op: "set approval", Err: fmt.Errorf("unknown category %q", cat)}
	}
	res, err := m.db.Collection(coll).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"approved": approved, "updated_at": time.Now().UTC()}})
	if err != nil {
		return &TransportError{Op: "set approval " + string(cat), Err: err}
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *Mongo) Remove(ctx context.Context, cat listing.Category, id string) error {
	coll, ok := collectionFor[cat]
	if !ok {
		return &TransportError{Op: "remove", Err: fmt.Errorf("unknown category %q", cat)}
	}
	res, err := m.db.Collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return &TransportError{Op: "remove " + string(cat), Err: err}
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
