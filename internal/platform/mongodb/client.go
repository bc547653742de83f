package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mhoudret/taskdeck-api/internal/config"
)

// Collection names.
const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

const connectTimeout = 10 * time.Second

// Connect establishes and pings a MongoDB connection.
// The caller owns the returned client and must Disconnect it on shutdown.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		// Best effort: the client holds no useful state after a failed ping.
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}

// EnsureIndexes creates the indexes the queries in this package rely on:
// the unique email index guarding registration, and the owner-scoped task
// indexes backing listings, due-date filters, and tag containment.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	users := db.Collection(usersCollection)
	_, err := users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("failed to create users email index: %w", err)
	}

	tasks := db.Collection(tasksCollection)
	_, err = tasks.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "dueDate", Value: 1}}},
		{Keys: bson.D{{Key: "user", Value: 1}, {Key: "isImportant", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("failed to create task indexes: %w", err)
	}

	return nil
}
