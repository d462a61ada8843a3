package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"marketplace-listings/internal/models"
	"marketplace-listings/internal/utils"
	"marketplace-listings/pkg/database"
	"marketplace-listings/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// snapshotDocument stores the raw record as JSON text so that arbitrary
// upstream shapes round-trip without BSON type drift.
type snapshotDocument struct {
	ID        string    `bson:"_id"`
	Payload   string    `bson:"payload"`
	Position  int       `bson:"position"`
	FetchedAt time.Time `bson:"fetchedAt"`
}

type snapshotCollection interface {
	BulkWrite(ctx context.Context, writes []mongo.WriteModel, opts ...*options.BulkWriteOptions) (*mongo.BulkWriteResult, error)
	DeleteMany(ctx context.Context, filter interface{}, opts ...*options.DeleteOptions) (*mongo.DeleteResult, error)
	Find(ctx context.Context, filter interface{}, opts ...*options.FindOptions) (*mongo.Cursor, error)
	FindOne(ctx context.Context, filter interface{}, opts ...*options.FindOneOptions) *mongo.SingleResult
}

type propertyRepository struct {
	collection snapshotCollection
	now        func() time.Time
}

func NewPropertyRepository(db *mongo.Database) PropertyRepository {
	return &propertyRepository{
		collection: db.Collection(database.SnapshotCollection),
		now:        time.Now,
	}
}

// SaveSnapshot upserts every keyed record and removes records missing from
// this batch. Records without an identifier cannot be addressed and are skipped.
// A non-empty batch with no usable record leaves the previous snapshot alone.
func (r *propertyRepository) SaveSnapshot(ctx context.Context, properties []models.RawProperty) error {
	fetchedAt := r.now().UTC().Truncate(time.Millisecond)

	writes := make([]mongo.WriteModel, 0, len(properties))
	skipped := 0
	for i, raw := range properties {
		id := raw.Key()
		if id == "" {
			skipped++
			continue
		}
		payload, err := json.Marshal(raw)
		if err != nil {
			skipped++
			continue
		}
		doc := snapshotDocument{ID: id, Payload: string(payload), Position: i, FetchedAt: fetchedAt}
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"_id": id}).
			SetReplacement(doc).
			SetUpsert(true))
	}
	if skipped > 0 {
		logger.Get().Warnf("snapshot skipped %d records without a usable id", skipped)
	}
	if len(writes) == 0 && len(properties) > 0 {
		logger.Get().Errorf("snapshot batch of %d records had no usable ids, keeping previous snapshot", len(properties))
		return nil
	}

	if len(writes) > 0 {
		start := time.Now()
		_, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
		utils.RecordMongoOperationDuration("bulk_write", database.SnapshotCollection, start)
		if err != nil {
			utils.RecordMongoError("bulk_write", database.SnapshotCollection)
			return err
		}
	}

	start := time.Now()
	_, err := r.collection.DeleteMany(ctx, bson.M{"fetchedAt": bson.M{"$lt": fetchedAt}})
	utils.RecordMongoOperationDuration("delete_many", database.SnapshotCollection, start)
	if err != nil {
		utils.RecordMongoError("delete_many", database.SnapshotCollection)
		return err
	}
	return nil
}

func (r *propertyRepository) FindAll(ctx context.Context) ([]models.RawProperty, error) {
	start := time.Now()
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "position", Value: 1}}))
	utils.RecordMongoOperationDuration("find", database.SnapshotCollection, start)
	if err != nil {
		utils.RecordMongoError("find", database.SnapshotCollection)
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []snapshotDocument
	start = time.Now()
	err = cursor.All(ctx, &docs)
	utils.RecordMongoOperationDuration("cursor_all", database.SnapshotCollection, start)
	if err != nil {
		utils.RecordMongoError("cursor_all", database.SnapshotCollection)
		return nil, err
	}

	properties := make([]models.RawProperty, 0, len(docs))
	for _, doc := range docs {
		raw, err := models.DecodeRawProperty([]byte(doc.Payload))
		if err != nil {
			logger.Get().Warnf("snapshot %s has an unreadable payload: %v", doc.ID, err)
			continue
		}
		properties = append(properties, raw)
	}
	return properties, nil
}

// FindByID returns nil without an error when no snapshot has the id.
func (r *propertyRepository) FindByID(ctx context.Context, id string) (models.RawProperty, error) {
	start := time.Now()
	var doc snapshotDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	utils.RecordMongoOperationDuration("find_one", database.SnapshotCollection, start)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		utils.RecordMongoError("find_one", database.SnapshotCollection)
		return nil, err
	}
	return models.DecodeRawProperty([]byte(doc.Payload))
}
