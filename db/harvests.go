package db

import (
	"context"

	"harvestlog/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func (s *Store) AddHarvest(ctx context.Context, harvest models.Harvest) (primitive.ObjectID, error) {
	harvest.ID = primitive.NewObjectID()
	if _, err := s.harvests.InsertOne(ctx, harvest); err != nil {
		return primitive.NilObjectID, err
	}
	return harvest.ID, nil
}

func (s *Store) ListHarvests(ctx context.Context, plantID string) ([]models.Harvest, error) {
	cursor, err := s.harvests.Find(ctx, bson.M{"plant_id": plantID}, optionsOldestFirst())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	harvests := []models.Harvest{}
	if err := cursor.All(ctx, &harvests); err != nil {
		return nil, err
	}
	return harvests, nil
}

// DeleteHarvests removes every harvest recorded for plantID and reports how many went.
func (s *Store) DeleteHarvests(ctx context.Context, plantID string) (int64, error) {
	res, err := s.harvests.DeleteMany(ctx, bson.M{"plant_id": plantID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}
