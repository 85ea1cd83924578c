package home

import (
	"context"
	"net/http"
	"time"

	"harvestlog/logger"
	"harvestlog/utils"
	"harvestlog/views"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

func About(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := views.Render(w, http.StatusOK, views.About, nil); err != nil {
		logger.Log.Error("render about failed", zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

type Pinger interface {
	Ping(ctx context.Context) error
}

// Health reports whether the document store answers a ping within timeout.
// A non-positive timeout leaves only the request's own deadline.
func Health(store Pinger, timeout time.Duration) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var (
			ctx    context.Context
			cancel context.CancelFunc
		)
		if timeout > 0 {
			ctx, cancel = context.WithTimeout(r.Context(), timeout)
		} else {
			ctx, cancel = context.WithCancel(r.Context())
		}
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			logger.Log.Warn("health check failed", zap.Error(err))
			utils.RespondWithError(w, http.StatusServiceUnavailable, "store unreachable")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, utils.M{"status": "ok"})
	}
}
