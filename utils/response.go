package utils

import (
	"encoding/json"
	"net/http"

	"harvestlog/logger"

	"go.uber.org/zap"
)

type M map[string]interface{}

func RespondWithError(w http.ResponseWriter, code int, msg string) {
	RespondWithJSON(w, code, M{"error": msg})
}

// RespondWithJSON writes payload as JSON. The status is already sent when
// encoding fails, so the failure is only logged.
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Log.Error("encode json response failed", zap.Error(err), zap.Int("status", code))
	}
}
