package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "Asia/Jakarta", cfg.StoreTimezone)
	assert.False(t, cfg.RabbitMQEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", ":9090")
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("RABBITMQ_ENABLED", "true")
	t.Setenv("STORE_TIMEZONE", "UTC")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.StorageDriver)
	assert.True(t, cfg.RabbitMQEnabled)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestLoad_RejectsBadValues(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("STORAGE_DRIVER", "sqlite")
	t.Setenv("STORE_TIMEZONE", "Mars/Olympus")
	_, err = Load()
	assert.Error(t, err)
}
