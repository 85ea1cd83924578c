package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"harvestlog/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	PlantsCollection   = "plants"
	HarvestsCollection = "harvests"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrInvalidID = errors.New("invalid object id")
)

var (
	pingAttempts = 5
	pingBackoff  = 2 * time.Second
)

// Connect opens a client for uri and waits until the deployment answers a ping.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1)
	opts := options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	for i := 0; i < pingAttempts; i++ {
		if err = client.Database("admin").RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err(); err == nil {
			logger.Sugar.Info("Pinged MongoDB deployment, connection established")
			return client, nil
		}
		logger.Sugar.Infof("MongoDB ping failed, retrying in %s... (%v)", pingBackoff, err)
		select {
		case <-ctx.Done():
			_ = client.Disconnect(context.Background())
			return nil, ctx.Err()
		case <-time.After(pingBackoff):
		}
	}

	_ = client.Disconnect(context.Background())
	return nil, fmt.Errorf("ping after %d attempts: %w", pingAttempts, err)
}

// Store gives access to the plants and harvests collections of one database.
type Store struct {
	db       *mongo.Database
	plants   *mongo.Collection
	harvests *mongo.Collection
}

func NewStore(database *mongo.Database) *Store {
	return &Store{
		db:       database,
		plants:   database.Collection(PlantsCollection),
		harvests: database.Collection(HarvestsCollection),
	}
}

// EnsureIndexes creates the plant_id index used for harvest lookups and deletes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.harvests.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "plant_id", Value: 1}},
		Options: options.Index().SetName("plant_id_1"),
	})
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

// ParseID converts a hex string into an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}

func optionsOldestFirst() *options.FindOptions {
	return options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
}
