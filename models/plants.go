package models

import "go.mongodb.org/mongo-driver/bson/primitive"

type Plant struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"  json:"id"`
	Name        string             `bson:"name"           json:"name"`
	Variety     string             `bson:"variety"        json:"variety"`
	PhotoURL    string             `bson:"photo_url"      json:"photo_url,omitempty"`
	DatePlanted string             `bson:"date_planted"   json:"date_planted,omitempty"`
}

// PlantFields are the user-editable fields of a Plant. They are always
// written together.
type PlantFields struct {
	Name        string `bson:"name"`
	Variety     string `bson:"variety"`
	PhotoURL    string `bson:"photo_url"`
	DatePlanted string `bson:"date_planted"`
}

func (p PlantFields) Plant() Plant {
	return Plant{
		Name:        p.Name,
		Variety:     p.Variety,
		PhotoURL:    p.PhotoURL,
		DatePlanted: p.DatePlanted,
	}
}

// Harvest is one harvest event. PlantID holds the hex id of the plant and is
// not enforced by the store.
type Harvest struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Quantity string             `bson:"quantity"      json:"quantity"`
	Date     string             `bson:"date"          json:"date"`
	PlantID  string             `bson:"plant_id"      json:"plant_id"`
}
