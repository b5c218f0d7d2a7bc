package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client               *mongo.Client
	UserCollection       *mongo.Collection
	PostsCollection      *mongo.Collection
	ActivitiesCollection *mongo.Collection
)

// Init connects to MongoDB, verifies the connection and binds the
// collection handles. Called exactly once at process startup; there is
// no lazy initialization anywhere else.
func Init(ctx context.Context, uri, dbName string) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("db: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("db: ping: %w", err)
	}

	Client = client
	database := client.Database(dbName)
	UserCollection = database.Collection("users")
	PostsCollection = database.Collection("posts")
	ActivitiesCollection = database.Collection("activities")

	if err := createIndexes(ctx); err != nil {
		return fmt.Errorf("db: indexes: %w", err)
	}
	return nil
}

// Close tears down the MongoDB connection during shutdown.
func Close(ctx context.Context) error {
	if Client == nil {
		return nil
	}
	return Client.Disconnect(ctx)
}

func createIndexes(ctx context.Context) error {
	_, err := UserCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "googleid", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	})
	if err != nil {
		return err
	}

	_, err = PostsCollection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "postid", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "userid", Value: 1}, {Key: "created_at", Value: -1}},
		},
	})
	return err
}
