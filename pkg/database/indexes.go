package database

import (
	"context"
	"time"

	"marketplace-listings/pkg/logger"
	"marketplace-listings/pkg/metrics"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// SnapshotCollection holds the last good copy of the upstream listings.
const SnapshotCollection = "property_snapshots"

// SnapshotIndexes lists the secondary indexes of the snapshot collection.
// _id is indexed by MongoDB itself.
func SnapshotIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{Keys: bson.D{{Key: "position", Value: 1}}},
		{Keys: bson.D{{Key: "fetchedAt", Value: 1}}},
	}
}

// create indexes for the snapshot collection.
func CreateSnapshotIndexes(ctx context.Context, db *mongo.Database) error {
	collection := db.Collection(SnapshotCollection)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	start := time.Now()
	_, err := collection.Indexes().CreateMany(ctx, SnapshotIndexes())
	metrics.MongoOperationDuration.WithLabelValues("create_indexes", SnapshotCollection).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MongoErrorsTotal.WithLabelValues("create_indexes", SnapshotCollection).Inc()
		logger.Get().Errorf("Failed to create indexes: %v", err)
		return err
	}

	logger.Get().Println("MongoDB indexes created successfully.")
	return nil
}
