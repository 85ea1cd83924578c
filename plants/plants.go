package plants

import (
	"context"
	"errors"
	"net/http"
	"time"

	"harvestlog/db"
	"harvestlog/logger"
	"harvestlog/middleware"
	"harvestlog/models"
	"harvestlog/mq"
	"harvestlog/views"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Store is the slice of the document store the plant pages need.
type Store interface {
	ListPlants(ctx context.Context) ([]models.Plant, error)
	CreatePlant(ctx context.Context, fields models.PlantFields) (primitive.ObjectID, error)
	GetPlant(ctx context.Context, id string) (*models.Plant, error)
	UpdatePlant(ctx context.Context, id string, fields models.PlantFields) error
	DeletePlant(ctx context.Context, id string) error
	AddHarvest(ctx context.Context, harvest models.Harvest) (primitive.ObjectID, error)
	ListHarvests(ctx context.Context, plantID string) ([]models.Harvest, error)
	DeleteHarvests(ctx context.Context, plantID string) (int64, error)
}

type Handler struct {
	Store   Store
	Timeout time.Duration
}

func NewHandler(store Store, timeout time.Duration) *Handler {
	return &Handler{Store: store, Timeout: timeout}
}

func (h *Handler) context(r *http.Request) (context.Context, context.CancelFunc) {
	if h.Timeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.Timeout)
}

func parsePlantForm(r *http.Request) models.PlantFields {
	return models.PlantFields{
		Name:        r.FormValue("plant_name"),
		Variety:     r.FormValue("variety"),
		PhotoURL:    r.FormValue("photo"),
		DatePlanted: r.FormValue("date_planted"),
	}
}

// plantID returns the :id parameter in canonical lowercase hex so every
// spelling of an ObjectID stores and matches the same plant_id.
func plantID(ps httprouter.Params) (string, error) {
	oid, err := db.ParseID(ps.ByName("id"))
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func plantPath(id string) string {
	return "/plant/" + id
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	if errors.Is(err, db.ErrInvalidID) || errors.Is(err, db.ErrNotFound) {
		http.Error(w, "Plant not found", http.StatusNotFound)
		return
	}
	logger.Log.Error(op+" failed",
		zap.Error(err),
		zap.String("path", r.URL.Path),
		zap.String("request_id", middleware.RequestIDFromContext(r.Context())),
	)
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page string, data any) {
	if err := views.Render(w, http.StatusOK, page, data); err != nil {
		h.fail(w, r, "render "+page, err)
	}
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := h.context(r)
	defer cancel()

	plants, err := h.Store.ListPlants(ctx)
	if err != nil {
		h.fail(w, r, "list plants", err)
		return
	}

	h.render(w, r, views.PlantsList, map[string]any{"Plants": plants})
}

func (h *Handler) CreateForm(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	h.render(w, r, views.Create, nil)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ctx, cancel := h.context(r)
	defer cancel()

	id, err := h.Store.CreatePlant(ctx, parsePlantForm(r))
	if err != nil {
		h.fail(w, r, "create plant", err)
		return
	}

	mq.Emit("plant-created", mq.Index{EntityType: mq.EntityPlant, Method: mq.MethodCreate, EntityId: id.Hex()})
	http.Redirect(w, r, plantPath(id.Hex()), http.StatusSeeOther)
}

func (h *Handler) Detail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := plantID(ps)
	if err != nil {
		h.fail(w, r, "get plant", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	plant, err := h.Store.GetPlant(ctx, id)
	if err != nil {
		h.fail(w, r, "get plant", err)
		return
	}

	harvests, err := h.Store.ListHarvests(ctx, id)
	if err != nil {
		h.fail(w, r, "list harvests", err)
		return
	}

	h.render(w, r, views.Detail, map[string]any{
		"Plant":    plant,
		"Harvests": harvests,
	})
}

func (h *Handler) Harvest(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	// plant_id is a soft reference, but it must at least look like a plant id.
	id, err := plantID(ps)
	if err != nil {
		h.fail(w, r, "add harvest", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	harvestID, err := h.Store.AddHarvest(ctx, models.Harvest{
		Quantity: r.FormValue("harvested_amount"),
		Date:     r.FormValue("date_planted"),
		PlantID:  id,
	})
	if err != nil {
		h.fail(w, r, "add harvest", err)
		return
	}

	mq.Emit("harvest-recorded", mq.Index{
		EntityType: mq.EntityPlant,
		Method:     mq.MethodCreate,
		EntityId:   id,
		ItemId:     harvestID.Hex(),
		ItemType:   mq.EntityHarvest,
	})
	http.Redirect(w, r, plantPath(id), http.StatusSeeOther)
}

func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := plantID(ps)
	if err != nil {
		h.fail(w, r, "get plant", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	plant, err := h.Store.GetPlant(ctx, id)
	if err != nil {
		h.fail(w, r, "get plant", err)
		return
	}

	h.render(w, r, views.Edit, map[string]any{"Plant": plant})
}

func (h *Handler) Edit(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := plantID(ps)
	if err != nil {
		h.fail(w, r, "update plant", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	if err := h.Store.UpdatePlant(ctx, id, parsePlantForm(r)); err != nil {
		h.fail(w, r, "update plant", err)
		return
	}

	mq.Emit("plant-updated", mq.Index{EntityType: mq.EntityPlant, Method: mq.MethodUpdate, EntityId: id})
	http.Redirect(w, r, plantPath(id), http.StatusSeeOther)
}

// Delete removes the plant and then its harvests. The two deletes are
// independent; a failure in the second leaves the plant already gone.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, err := plantID(ps)
	if err != nil {
		h.fail(w, r, "delete plant", err)
		return
	}

	ctx, cancel := h.context(r)
	defer cancel()

	if err := h.Store.DeletePlant(ctx, id); err != nil {
		h.fail(w, r, "delete plant", err)
		return
	}

	removed, err := h.Store.DeleteHarvests(ctx, id)
	if err != nil {
		h.fail(w, r, "delete harvests", err)
		return
	}

	logger.Log.Debug("plant deleted", zap.String("plant_id", id), zap.Int64("harvests_removed", removed))
	mq.Emit("plant-deleted", mq.Index{EntityType: mq.EntityPlant, Method: mq.MethodDelete, EntityId: id})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
