package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// connectTimeout bounds the initial connection and index setup.
const connectTimeout = 10 * time.Second

// InitMongo connects to MongoDB, verifies the connection and ensures the
// indexes the repositories rely on. The caller owns the returned client
// and must Disconnect it.
func InitMongo(ctx context.Context, uri, database string) (*mongo.Client, *mongo.Database, error) {
	if uri == "" || database == "" {
		return nil, nil, errors.New("connect mongo: uri and database are required")
	}

	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(database)
	if err := ensureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, err
	}
	return client, db, nil
}

// indexes lists the indexes created per collection.
func indexes() map[string][]mongo.IndexModel {
	owned := []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "dateAdded", Value: 1}}},
	}
	return map[string][]mongo.IndexModel{
		"users": {
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		TasksTable:      owned,
		ActivitiesTable: owned,
		MealsTable:      owned,
		"ingredients": {
			{Keys: bson.D{{Key: "name", Value: 1}}},
		},
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	for coll, models := range indexes() {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create %s indexes: %w", coll, err)
		}
	}
	return nil
}
