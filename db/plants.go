package db

import (
	"context"
	"errors"

	"harvestlog/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) ListPlants(ctx context.Context) ([]models.Plant, error) {
	cursor, err := s.plants.Find(ctx, bson.M{}, optionsOldestFirst())
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	plants := []models.Plant{}
	if err := cursor.All(ctx, &plants); err != nil {
		return nil, err
	}
	return plants, nil
}

// CreatePlant inserts a new plant and returns the id generated for it.
func (s *Store) CreatePlant(ctx context.Context, fields models.PlantFields) (primitive.ObjectID, error) {
	plant := fields.Plant()
	plant.ID = primitive.NewObjectID()

	if _, err := s.plants.InsertOne(ctx, plant); err != nil {
		return primitive.NilObjectID, err
	}
	return plant.ID, nil
}

func (s *Store) GetPlant(ctx context.Context, id string) (*models.Plant, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	var plant models.Plant
	err = s.plants.FindOne(ctx, bson.M{"_id": oid}).Decode(&plant)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &plant, nil
}

// UpdatePlant overwrites all editable fields of the plant. Unknown ids are a no-op.
func (s *Store) UpdatePlant(ctx context.Context, id string, fields models.PlantFields) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	_, err = s.plants.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	return err
}

// DeletePlant removes the plant document only; harvests are left to DeleteHarvests.
func (s *Store) DeletePlant(ctx context.Context, id string) error {
	oid, err := ParseID(id)
	if err != nil {
		return err
	}

	_, err = s.plants.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}
