package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cup-order-bot/internal/config"
)

func TestPoolConfigFrom(t *testing.T) {
	cfg := &config.DatabaseConfig{
		Host:            "localhost",
		Port:            5432,
		User:            "cuporder",
		Password:        "secret",
		Name:            "cuporder",
		PoolSize:        12,
		MaxConnLifetime: 2 * time.Hour,
	}

	pc, err := poolConfigFrom(cfg)
	require.NoError(t, err)

	assert.Equal(t, int32(12), pc.MaxConns)
	assert.Equal(t, int32(3), pc.MinConns)
	assert.Equal(t, 10*time.Second, pc.ConnConfig.ConnectTimeout)
	assert.Equal(t, 2*time.Hour, pc.MaxConnLifetime)
	assert.Equal(t, 30*time.Minute, pc.MaxConnIdleTime)
	assert.Equal(t, "cuporder", pc.ConnConfig.Database)
}

func TestPoolConfigFrom_SmallPool(t *testing.T) {
	pc, err := poolConfigFrom(&config.DatabaseConfig{Host: "localhost", Port: 5432, User: "u", Name: "n", PoolSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int32(1), pc.MinConns)
}
