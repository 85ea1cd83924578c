package routes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"harvestlog/plants"
	"harvestlog/plants/plantstest"
	"harvestlog/ratelim"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type app struct {
	store  *plantstest.MemStore
	router http.Handler
}

func newApp(t *testing.T) *app {
	t.Helper()
	store := plantstest.NewMemStore()
	router := NewRouter(plants.NewHandler(store, 0), okPinger{}, ratelim.NewRateLimiter(1000, 1000))
	return &app{store: store, router: router}
}

func (a *app) get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func (a *app) post(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func plantForm(name, variety, photo, planted string) url.Values {
	return url.Values{
		"plant_name":   {name},
		"variety":      {variety},
		"photo":        {photo},
		"date_planted": {planted},
	}
}

// createPlant posts the create form and returns the new plant's id.
func (a *app) createPlant(t *testing.T, form url.Values) string {
	t.Helper()
	rec := a.post(t, "/create", form)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/plant/"), loc)
	return strings.TrimPrefix(loc, "/plant/")
}

func TestCreateThenView(t *testing.T) {
	a := newApp(t)

	id := a.createPlant(t, plantForm("Tomato", "Roma", "http://x/1.jpg", "2024-05-01"))

	plant, err := a.store.GetPlant(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Tomato", plant.Name)
	assert.Equal(t, "Roma", plant.Variety)
	assert.Equal(t, "http://x/1.jpg", plant.PhotoURL)
	assert.Equal(t, "2024-05-01", plant.DatePlanted)

	rec := a.get(t, "/plant/"+id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tomato")
	assert.Contains(t, rec.Body.String(), "Roma")
}

func TestCreateAcceptsMissingFields(t *testing.T) {
	a := newApp(t)

	id := a.createPlant(t, url.Values{"plant_name": {"Mint"}})

	plant, err := a.store.GetPlant(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Mint", plant.Name)
	assert.Empty(t, plant.Variety)
	assert.Empty(t, plant.PhotoURL)
	assert.Empty(t, plant.DatePlanted)
}

func TestListShowsAllPlants(t *testing.T) {
	a := newApp(t)
	a.createPlant(t, plantForm("Tomato", "Roma", "", ""))
	a.createPlant(t, plantForm("Basil", "Genovese", "", ""))

	rec := a.get(t, "/")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tomato")
	assert.Contains(t, rec.Body.String(), "Basil")
}

func TestEditOverwritesAllFields(t *testing.T) {
	a := newApp(t)
	id := a.createPlant(t, plantForm("Tomato", "Roma", "http://x/1.jpg", "2024-05-01"))

	rec := a.get(t, "/edit/"+id)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Roma"`)

	rec = a.post(t, "/edit/"+id, plantForm("Pepper", "Bell", "", "2024-06-02"))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plant/"+id, rec.Header().Get("Location"))

	plant, err := a.store.GetPlant(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Pepper", plant.Name)
	assert.Equal(t, "Bell", plant.Variety)
	assert.Empty(t, plant.PhotoURL)
	assert.Equal(t, "2024-06-02", plant.DatePlanted)
}

func TestHarvestIsLinkedToPlant(t *testing.T) {
	a := newApp(t)
	id := a.createPlant(t, plantForm("Tomato", "Roma", "", ""))
	other := a.createPlant(t, plantForm("Basil", "Genovese", "", ""))

	rec := a.post(t, "/harvest/"+id, url.Values{
		"harvested_amount": {"3 kg"},
		"date_planted":     {"2024-08-10"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plant/"+id, rec.Header().Get("Location"))

	harvests := a.store.Harvests()
	require.Len(t, harvests, 1)
	assert.Equal(t, id, harvests[0].PlantID)
	assert.Equal(t, "3 kg", harvests[0].Quantity)
	assert.Equal(t, "2024-08-10", harvests[0].Date)

	assert.Contains(t, a.get(t, "/plant/"+id).Body.String(), "2024-08-10: 3 kg")
	assert.NotContains(t, a.get(t, "/plant/"+other).Body.String(), "3 kg")
}

func TestDeleteRemovesPlantAndHarvests(t *testing.T) {
	a := newApp(t)
	id := a.createPlant(t, plantForm("Tomato", "Roma", "", ""))
	keep := a.createPlant(t, plantForm("Basil", "Genovese", "", ""))
	a.post(t, "/harvest/"+id, url.Values{"harvested_amount": {"1"}, "date_planted": {"2024-07-01"}})
	a.post(t, "/harvest/"+id, url.Values{"harvested_amount": {"2"}, "date_planted": {"2024-07-08"}})
	a.post(t, "/harvest/"+keep, url.Values{"harvested_amount": {"5"}, "date_planted": {"2024-07-09"}})

	rec := a.post(t, "/delete/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	assert.Equal(t, http.StatusNotFound, a.get(t, "/plant/"+id).Code)
	list := a.get(t, "/").Body.String()
	assert.NotContains(t, list, "Tomato")
	assert.Contains(t, list, "Basil")

	harvests := a.store.Harvests()
	require.Len(t, harvests, 1)
	assert.Equal(t, keep, harvests[0].PlantID)
}

func TestUnknownAndMalformedIDs(t *testing.T) {
	a := newApp(t)
	missing := "65f0c0ffee0000000000beef"

	assert.Equal(t, http.StatusNotFound, a.get(t, "/plant/not-an-id").Code)
	assert.Equal(t, http.StatusNotFound, a.get(t, "/plant/"+missing).Code)
	assert.Equal(t, http.StatusNotFound, a.get(t, "/edit/not-an-id").Code)
	assert.Equal(t, http.StatusNotFound, a.post(t, "/harvest/not-an-id", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.post(t, "/edit/not-an-id", nil).Code)
	assert.Equal(t, http.StatusNotFound, a.post(t, "/delete/not-an-id", nil).Code)

	// update and delete of a well-formed but unknown id are no-ops
	assert.Equal(t, http.StatusSeeOther, a.post(t, "/edit/"+missing, plantForm("x", "y", "", "")).Code)
	assert.Equal(t, http.StatusSeeOther, a.post(t, "/delete/"+missing, nil).Code)
}

func TestStaticPages(t *testing.T) {
	a := newApp(t)

	rec := a.get(t, "/about")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.get(t, "/create")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `name="plant_name"`)

	rec = a.get(t, "/static/style.css")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = a.get(t, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	a := newApp(t)

	rec := a.get(t, "/delete/65f0c0ffee0000000000beef")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormPostsAreRateLimited(t *testing.T) {
	store := plantstest.NewMemStore()
	router := NewRouter(plants.NewHandler(store, 0), okPinger{}, ratelim.NewRateLimiter(0.001, 1))
	a := &app{store: store, router: router}

	assert.Equal(t, http.StatusSeeOther, a.post(t, "/create", plantForm("a", "", "", "")).Code)
	assert.Equal(t, http.StatusTooManyRequests, a.post(t, "/create", plantForm("b", "", "", "")).Code)
	assert.Equal(t, http.StatusOK, a.get(t, "/").Code)
}

func TestUppercaseIDsShareHarvests(t *testing.T) {
	a := newApp(t)
	id := a.createPlant(t, plantForm("Tomato", "Roma", "", ""))
	upper := strings.ToUpper(id)
	require.NotEqual(t, id, upper)

	rec := a.post(t, "/harvest/"+upper, url.Values{
		"harvested_amount": {"3 kg"},
		"date_planted":     {"2024-08-10"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plant/"+id, rec.Header().Get("Location"))

	harvests := a.store.Harvests()
	require.Len(t, harvests, 1)
	assert.Equal(t, id, harvests[0].PlantID)

	assert.Contains(t, a.get(t, "/plant/"+id).Body.String(), "2024-08-10: 3 kg")
	assert.Contains(t, a.get(t, "/plant/"+upper).Body.String(), "2024-08-10: 3 kg")

	rec = a.post(t, "/edit/"+upper, plantForm("Pepper", "Bell", "", ""))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/plant/"+id, rec.Header().Get("Location"))

	rec = a.post(t, "/delete/"+id, nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Empty(t, a.store.Harvests())
}
