package wire

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-booking/internal/data/memstore"
	"hotel-booking/pkg/events"
	"hotel-booking/pkg/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newApp(t *testing.T, rdb *redis.Client, capacity int) *App {
	t.Helper()
	config := &utils.Config{
		RateLimit: utils.RateLimitConfig{
			Enabled:        true,
			Capacity:       capacity,
			RefillInterval: time.Minute,
			Prefix:         "test",
		},
	}
	log := zap.NewNop()
	app, err := Wiring(memstore.New(log), events.NewNoopPublisher(), rdb, config, log)
	require.NoError(t, err)
	return app
}

func serve(app *App, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func TestWiring_Routes(t *testing.T) {
	app := newApp(t, nil, 0)

	rec := serve(app, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = serve(app, http.MethodPost, "/api/rooms", `{"name":"Loft","type":"double","price_per_night":120}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = serve(app, http.MethodGet, "/api/rooms", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"name":"Loft"`)

	rec = serve(app, http.MethodPost, "/graphql", `{"query":"{ rooms { name availability } }"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"rooms":[{"name":"Loft","availability":true}]}}`, rec.Body.String())

	rec = serve(app, http.MethodDelete, "/api/bookings/unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(app, http.MethodOptions, "/graphql", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestWiring_RateLimitsAPIButNotHealth(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	app := newApp(t, rdb, 1)

	assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/api/customers", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(app, http.MethodGet, "/api/customers", "").Code)

	// Distinct booking ids share the route's bucket.
	assert.Equal(t, http.StatusNotFound, serve(app, http.MethodDelete, "/api/bookings/first", "").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(app, http.MethodDelete, "/api/bookings/second", "").Code)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, serve(app, http.MethodGet, "/health", "").Code)
	}
}
