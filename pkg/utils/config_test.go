package utils

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "hotel-booking", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.False(t, cfg.App.Debug)
	assert.Equal(t, StoreDriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, int32(10), cfg.Database.MaxConns)
	assert.Equal(t, "hotel", cfg.Mongo.Name)
	assert.Empty(t, cfg.RabbitMQ.URL)
	assert.Equal(t, "hotel.bookings", cfg.RabbitMQ.Exchange)
	assert.Empty(t, cfg.Redis.Addr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 60, cfg.RateLimit.Capacity)
	assert.Equal(t, time.Second, cfg.RateLimit.RefillInterval)
}

func TestLoadConfig_EnvFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	env := "PORT=9090\nSTORE_DRIVER=memory\nDB_NAME=hotel_test\nREDIS_ADDR=localhost:6379\n"
	require.NoError(t, os.WriteFile(".env", []byte(env), 0o600))

	t.Setenv("PORT", "7070")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "500ms")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.App.Port)
	assert.Equal(t, StoreDriverMemory, cfg.Store.Driver)
	assert.Equal(t, "hotel_test", cfg.Database.Name)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 500*time.Millisecond, cfg.RateLimit.RefillInterval)
}
