package mq

import (
	"harvestlog/logger"

	"go.uber.org/zap"
)

const (
	EntityPlant   = "plant"
	EntityHarvest = "harvest"

	MethodCreate = "POST"
	MethodUpdate = "PUT"
	MethodDelete = "DELETE"
)

type Index struct {
	EntityType string `json:"entity_type"`
	Method     string `json:"method"`
	EntityId   string `json:"entity_id"`
	ItemId     string `json:"item_id,omitempty"`
	ItemType   string `json:"item_type,omitempty"`
}

// Emit records an activity event as a structured log entry.
func Emit(eventName string, content Index) {
	logger.Log.Info("activity",
		zap.String("event", eventName),
		zap.String("entity_type", content.EntityType),
		zap.String("method", content.Method),
		zap.String("entity_id", content.EntityId),
		zap.String("item_id", content.ItemId),
		zap.String("item_type", content.ItemType),
	)
}
