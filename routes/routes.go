package routes

import (
	"time"

	"harvestlog/home"
	"harvestlog/plants"
	"harvestlog/ratelim"
	"harvestlog/views"

	"github.com/julienschmidt/httprouter"
)

// NewRouter registers every page, form action and support route.
func NewRouter(h *plants.Handler, pinger home.Pinger, rateLimiter *ratelim.RateLimiter) *httprouter.Router {
	router := httprouter.New()

	AddHomeRoutes(router, pinger, h.Timeout)
	AddPlantRoutes(router, h, rateLimiter)
	AddStaticRoutes(router)

	return router
}

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/*filepath", views.Static())
}

func AddHomeRoutes(router *httprouter.Router, pinger home.Pinger, timeout time.Duration) {
	router.GET("/about", home.About)
	router.GET("/health", home.Health(pinger, timeout))
}

func AddPlantRoutes(router *httprouter.Router, h *plants.Handler, rateLimiter *ratelim.RateLimiter) {
	router.GET("/", h.List)
	router.GET("/create", h.CreateForm)
	router.POST("/create", rateLimiter.Limit(h.Create))
	router.GET("/plant/:id", h.Detail)
	router.POST("/harvest/:id", rateLimiter.Limit(h.Harvest))
	router.GET("/edit/:id", h.EditForm)
	router.POST("/edit/:id", rateLimiter.Limit(h.Edit))
	router.POST("/delete/:id", rateLimiter.Limit(h.Delete))
}
