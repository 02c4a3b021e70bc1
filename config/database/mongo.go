package database

import (
	"TravelMate/config/environment"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

var MongoClient *mongo.Client
var MongoDatabase *mongo.Database

// InitMongo connects to MongoDB and makes sure the unique place index exists
func InitMongo(ctx context.Context, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(environment.GetMongoURI()))
	if err != nil {
		return fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return fmt.Errorf("ping mongo: %w", err)
	}

	db := client.Database(environment.GetMongoDatabase())
	if err := ensureIndexes(ctx, db); err != nil {
		client.Disconnect(context.Background())
		return err
	}

	MongoClient = client
	MongoDatabase = db
	logger.Info("MongoDB initialized", zap.String("database", db.Name()))
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("places").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "location_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create places index: %w", err)
	}
	_, err = db.Collection("vacation_places").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "vacation_id", Value: 1}, {Key: "order_index", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("create vacation_places index: %w", err)
	}
	return nil
}

func GetMongoDatabase() *mongo.Database {
	return MongoDatabase
}

func CloseMongo(ctx context.Context) error {
	if MongoClient == nil {
		return nil
	}
	return MongoClient.Disconnect(ctx)
}
