// Package plantstest provides an in-memory plants.Store for handler tests.
package plantstest

import (
	"context"
	"sort"
	"sync"

	"harvestlog/db"
	"harvestlog/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MemStore struct {
	mu       sync.Mutex
	plants   map[primitive.ObjectID]models.Plant
	harvests map[primitive.ObjectID]models.Harvest

	// Err, when set, is returned by every operation.
	Err error
	// HarvestDeleteErr is returned by DeleteHarvests only.
	HarvestDeleteErr error
}

func NewMemStore() *MemStore {
	return &MemStore{
		plants:   make(map[primitive.ObjectID]models.Plant),
		harvests: make(map[primitive.ObjectID]models.Harvest),
	}
}

func (m *MemStore) ListPlants(context.Context) ([]models.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	plants := make([]models.Plant, 0, len(m.plants))
	for _, p := range m.plants {
		plants = append(plants, p)
	}
	sort.Slice(plants, func(i, j int) bool { return plants[i].ID.Hex() < plants[j].ID.Hex() })
	return plants, nil
}

func (m *MemStore) CreatePlant(_ context.Context, fields models.PlantFields) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return primitive.NilObjectID, m.Err
	}

	plant := fields.Plant()
	plant.ID = primitive.NewObjectID()
	m.plants[plant.ID] = plant
	return plant.ID, nil
}

func (m *MemStore) GetPlant(_ context.Context, id string) (*models.Plant, error) {
	oid, err := db.ParseID(id)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	plant, ok := m.plants[oid]
	if !ok {
		return nil, db.ErrNotFound
	}
	return &plant, nil
}

func (m *MemStore) UpdatePlant(_ context.Context, id string, fields models.PlantFields) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	if _, ok := m.plants[oid]; ok {
		plant := fields.Plant()
		plant.ID = oid
		m.plants[oid] = plant
	}
	return nil
}

func (m *MemStore) DeletePlant(_ context.Context, id string) error {
	oid, err := db.ParseID(id)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}

	delete(m.plants, oid)
	return nil
}

func (m *MemStore) AddHarvest(_ context.Context, harvest models.Harvest) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return primitive.NilObjectID, m.Err
	}

	harvest.ID = primitive.NewObjectID()
	m.harvests[harvest.ID] = harvest
	return harvest.ID, nil
}

func (m *MemStore) ListHarvests(_ context.Context, plantID string) ([]models.Harvest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}

	harvests := []models.Harvest{}
	for _, h := range m.harvests {
		if h.PlantID == plantID {
			harvests = append(harvests, h)
		}
	}
	sort.Slice(harvests, func(i, j int) bool { return harvests[i].ID.Hex() < harvests[j].ID.Hex() })
	return harvests, nil
}

func (m *MemStore) DeleteHarvests(_ context.Context, plantID string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return 0, m.Err
	}
	if m.HarvestDeleteErr != nil {
		return 0, m.HarvestDeleteErr
	}

	var n int64
	for id, h := range m.harvests {
		if h.PlantID == plantID {
			delete(m.harvests, id)
			n++
		}
	}
	return n, nil
}

// Harvests returns every stored harvest regardless of plant.
func (m *MemStore) Harvests() []models.Harvest {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]models.Harvest, 0, len(m.harvests))
	for _, h := range m.harvests {
		out = append(out, h)
	}
	return out
}
