package database

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// interface for MongoDB operations.
type Database interface {
	GetCollection(name string) *mongo.Collection
	CreateSnapshotIndexes(ctx context.Context) error
	Ping(ctx context.Context) error
}

// Database interface using a MongoDB database.
type MongoDatabase struct {
	db *mongo.Database
}

// create a new MongoDatabase instance.
func NewMongoDatabase(db *mongo.Database) *MongoDatabase {
	return &MongoDatabase{db: db}
}

// return a MongoDB collection by name.
func (m *MongoDatabase) GetCollection(name string) *mongo.Collection {
	return m.db.Collection(name)
}

// create indexes for the snapshot collection.
func (m *MongoDatabase) CreateSnapshotIndexes(ctx context.Context) error {
	return CreateSnapshotIndexes(ctx, m.db)
}

func (m *MongoDatabase) Ping(ctx context.Context) error {
	return m.db.Client().Ping(ctx, nil)
}

// Database returns the wrapped handle.
func (m *MongoDatabase) Database() *mongo.Database {
	return m.db
}
